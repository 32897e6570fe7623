package dimacs

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/swsched/swsched/internal/input"
	"github.com/swsched/swsched/pkg/swsched/solver"
)

type options struct {
	config string
	prefs  string
	out    string
}

func NewDimacsCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "dimacs",
		Short: "Writes the hard rules of a configuration in DIMACS format",
		Long: `Compiles the configuration and writes its hard rules as CNF in DIMACS
format, for auditing with an external SAT solver. The CNF is
satisfiable iff a timetable exists:
c
c <rules> hard rules over <inputs> decision variables
p cnf <number of variables> <number of clauses>
1 -2 0
...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "timetable configuration (YAML)")
	cmd.Flags().StringVarP(&o.prefs, "prefs", "p", "", "preference records (CSV or YAML), overrides preferences_file")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func (o *options) run(cmd *cobra.Command) error {
	log := logr.FromContextOrDiscard(cmd.Context())
	cfg, err := input.Load(o.config, input.WithPreferences(o.prefs), input.WithLogger(log))
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", o.out, err)
		}
		defer f.Close()
		w = f
	}

	stats, err := solver.WriteDimacs(cfg, w)
	if err != nil {
		return err
	}
	log.Info("wrote dimacs", "variables", stats.Variables, "clauses", stats.Clauses, "rules", stats.Rules)
	return nil
}
