package solve

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/swsched/swsched/internal/input"
	"github.com/swsched/swsched/internal/metrics"
	"github.com/swsched/swsched/internal/report"
	"github.com/swsched/swsched/pkg/swsched/solver"
)

type options struct {
	config     string
	prefs      string
	timeLimit  time.Duration
	format     string
	out        string
	metricsOut string
	trace      bool
}

func NewSolveCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Builds the best timetable found within the time limit",
		Long: `Builds the best timetable found within the time limit and prints it
with the penalty breakdown. For instance:

  swsched solve --config swing.yaml --prefs preferences.csv --time-limit 1m

An infeasible configuration is reported with the hard rule families that
conflict, and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "timetable configuration (YAML)")
	cmd.Flags().StringVarP(&o.prefs, "prefs", "p", "", "preference records (CSV or YAML), overrides preferences_file")
	cmd.Flags().DurationVarP(&o.timeLimit, "time-limit", "t", 30*time.Second, "search budget, 0 for none")
	cmd.Flags().StringVarP(&o.format, "format", "f", string(report.FormatText), "output format: text, csv or pdf")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&o.metricsOut, "metrics-out", "", "write Prometheus text metrics to this file")
	cmd.Flags().BoolVar(&o.trace, "trace", false, "print one line per improving timetable to stderr")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func (o *options) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logr.FromContextOrDiscard(ctx)

	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}
	cfg, err := input.Load(o.config, input.WithPreferences(o.prefs), input.WithLogger(log))
	if err != nil {
		return err
	}

	collector := metrics.New()
	opts := []solver.Option{
		solver.WithTimeLimit(o.timeLimit),
		solver.WithLogger(log),
		solver.WithObserver(collector),
	}
	if o.trace {
		opts = append(opts, solver.WithTraceWriter(cmd.ErrOrStderr()))
	}

	solution, err := solver.New(opts...).Solve(ctx, cfg)
	if err != nil {
		return err
	}
	if o.metricsOut != "" {
		if err := collector.WriteFile(o.metricsOut); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	if !solution.HasTimetable() {
		return solution.Error()
	}

	r := &report.Report{
		Config:    cfg,
		Timetable: solution.Timetable,
		Penalties: solution.Penalties,
		Status:    string(solution.Status),
		Objective: solution.Objective,
	}
	return write(cmd.OutOrStdout(), o.out, format, r)
}

func write(stdout io.Writer, path string, format report.Format, r *report.Report) error {
	if path == "" {
		return report.Write(stdout, format, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.Write(f, format, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
