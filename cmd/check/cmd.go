package check

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/swsched/swsched/internal/check"
	"github.com/swsched/swsched/internal/input"
	"github.com/swsched/swsched/internal/report"
)

type options struct {
	config    string
	prefs     string
	timetable string
}

func NewCheckCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Checks a timetable CSV against the hard rules",
		Long: `Checks a timetable CSV, as written by "solve --format csv" or edited by
hand, against every hard rule of the configuration. Each broken rule is
printed on its own line and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "timetable configuration (YAML)")
	cmd.Flags().StringVarP(&o.prefs, "prefs", "p", "", "preference records (CSV or YAML), overrides preferences_file")
	cmd.Flags().StringVar(&o.timetable, "timetable", "", "timetable CSV to check")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("timetable")
	return cmd
}

func (o *options) run(cmd *cobra.Command) error {
	log := logr.FromContextOrDiscard(cmd.Context())
	cfg, err := input.Load(o.config, input.WithPreferences(o.prefs), input.WithLogger(log))
	if err != nil {
		return err
	}

	f, err := os.Open(o.timetable)
	if err != nil {
		return fmt.Errorf("error opening timetable (%s): %w", o.timetable, err)
	}
	defer f.Close()
	tt, err := report.ReadCSV(f, cfg)
	if err != nil {
		return err
	}

	violations := check.Check(cfg, tt)
	out := cmd.OutOrStdout()
	for _, v := range violations {
		fmt.Fprintln(out, v)
	}
	if len(violations) > 0 {
		return fmt.Errorf("timetable breaks %d hard rules", len(violations))
	}
	log.Info("timetable satisfies every hard rule", "entries", len(tt.Entries))
	fmt.Fprintln(out, "ok")
	return nil
}
