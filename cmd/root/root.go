package root

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swsched/swsched/cmd/check"
	"github.com/swsched/swsched/cmd/dimacs"
	"github.com/swsched/swsched/cmd/solve"
	"github.com/swsched/swsched/internal/logger"
)

func NewRootCmd() *cobra.Command {
	var (
		level  string
		format string
		zl     *zap.Logger
	)

	rootCmd := &cobra.Command{
		Use:   "swsched",
		Short: "swsched builds timetables for swing dance courses",
		Long: `swsched assigns courses to time slots, rooms and instructors so that
every hard rule holds and the weighted preference penalties are as small
as possible. Configuration is read from YAML with SWSCHED_ environment
overrides; preferences can come from YAML or CSV.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			zl, err = logger.New(logger.Options{Level: level, Format: logger.Format(format)})
			if err != nil {
				return err
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), logger.Logr(zl)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if zl != nil {
				_ = zl.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&format, "log-format", string(logger.FormatConsole), "log format: console or json")

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(check.NewCheckCommand())
	rootCmd.AddCommand(dimacs.NewDimacsCommand())

	return rootCmd
}
