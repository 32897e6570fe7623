package solver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"

	"github.com/swsched/swsched/internal/check"
	"github.com/swsched/swsched/internal/compiler"
	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

// Status is the outcome of a solve.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
	StatusUnknown    Status = "unknown"
)

func statusOf(s sat.Status) Status {
	switch s {
	case sat.StatusOptimal:
		return StatusOptimal
	case sat.StatusFeasible:
		return StatusFeasible
	case sat.StatusInfeasible:
		return StatusInfeasible
	}
	return StatusUnknown
}

// Solution is returned by the Solver when the search ran. A search that
// ran can still end without a timetable, in which case Error explains why.
type Solution struct {
	RunID     RunID
	Status    Status
	Objective int
	Timetable swsched.Timetable
	Penalties []swsched.Penalty
	// Values holds every primary and channelled variable by key.
	Values    map[swsched.Key]int
	Solutions int
	Elapsed   time.Duration

	err error
}

// Error returns swsched.NotSatisfiable for infeasible configurations and
// wraps swsched.ErrNoSolution when the budget ran out first.
func (s *Solution) Error() error {
	return s.err
}

// HasTimetable reports whether the solution carries an assignment.
func (s *Solution) HasTimetable() bool {
	return s.Status == StatusOptimal || s.Status == StatusFeasible
}

// Observer receives progress of a solve, for metrics or reporting.
type Observer interface {
	ObserveSolution(run RunID, objective int, elapsed time.Duration)
	ObserveResult(run RunID, s *Solution)
}

type Solver struct {
	timeLimit time.Duration
	log       logr.Logger
	trace     io.Writer
	observers []Observer
	ids       RunIDProvider
}

type Option func(s *Solver)

func WithTimeLimit(d time.Duration) Option {
	return func(s *Solver) {
		s.timeLimit = d
	}
}

func WithLogger(l logr.Logger) Option {
	return func(s *Solver) {
		s.log = l
	}
}

// WithTraceWriter writes one trace record per search iteration to w.
func WithTraceWriter(w io.Writer) Option {
	return func(s *Solver) {
		s.trace = w
	}
}

func WithObserver(o Observer) Option {
	return func(s *Solver) {
		s.observers = append(s.observers, o)
	}
}

func WithRunIDProvider(p RunIDProvider) Option {
	return func(s *Solver) {
		s.ids = p
	}
}

func New(options ...Option) *Solver {
	s := &Solver{log: logr.Discard(), ids: NewUUIDRunIDProvider()}
	for _, option := range options {
		option(s)
	}
	return s
}

// Solve compiles cfg, searches for the best timetable within the budget
// and re-checks the result against every hard rule. Configuration errors
// are returned as errors; an infeasible configuration is reported
// through Solution.Error.
func (s *Solver) Solve(ctx context.Context, cfg *swsched.Config) (*Solution, error) {
	run := s.ids.NextRunID()
	log := s.log.WithValues("run", run)

	compiled, err := compiler.Compile(cfg, compiler.WithLogger(log))
	if err != nil {
		return nil, err
	}

	began := time.Now()
	options := []sat.Option{
		sat.WithTimeLimit(s.timeLimit),
		sat.WithLogger(log),
		sat.WithSolutionCallback(func(objective int, _ *sat.Assignment) {
			elapsed := time.Since(began)
			for _, o := range s.observers {
				o.ObserveSolution(run, objective, elapsed)
			}
		}),
	}
	if s.trace != nil {
		options = append(options, sat.WithTracer(sat.LoggingTracer{Writer: s.trace}))
	}
	engine, err := sat.NewSolver(options...)
	if err != nil {
		return nil, err
	}

	res, err := engine.Solve(ctx, compiled.Model)
	if err != nil {
		return nil, err
	}

	solution := &Solution{
		RunID:     run,
		Status:    statusOf(res.Status),
		Objective: res.Objective,
		Solutions: res.Solutions,
		Elapsed:   res.Elapsed,
	}
	switch {
	case res.Status.HasSolution():
		solution.Timetable = compiled.Timetable(res.Assignment)
		solution.Penalties = compiled.Breakdown(res.Assignment)
		solution.Values = compiled.Values(res.Assignment)
		if vs := check.Check(cfg, solution.Timetable); len(vs) > 0 {
			return nil, fmt.Errorf("unexpected internal error: solution breaks %d hard rules, first: %s", len(vs), vs[0])
		}
	case res.Status == sat.StatusInfeasible:
		solution.err = swsched.NotSatisfiable(res.Conflicts)
	default:
		solution.err = fmt.Errorf("search stopped after %s: %w", res.Elapsed.Round(time.Millisecond), swsched.ErrNoSolution)
	}

	log.Info("solve finished", "status", solution.Status, "objective", solution.Objective, "solutions", solution.Solutions, "elapsed", solution.Elapsed)
	for _, o := range s.observers {
		o.ObserveResult(run, solution)
	}
	return solution, nil
}

// ModelStats is the size of the compiled hard model.
type ModelStats struct {
	Variables int
	Clauses   int
	Rules     int
}

// WriteDimacs compiles cfg and writes its hard rules as DIMACS CNF.
func WriteDimacs(cfg *swsched.Config, w io.Writer) (ModelStats, error) {
	compiled, err := compiler.Compile(cfg)
	if err != nil {
		return ModelStats{}, err
	}
	if err := compiled.Model.WriteDimacs(w); err != nil {
		return ModelStats{}, err
	}
	st := compiled.Model.Stats()
	return ModelStats{Variables: st.Vars, Clauses: st.Clauses, Rules: st.Rules}, nil
}
