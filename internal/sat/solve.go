package sat

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/go-logr/logr"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

const pollInterval = time.Millisecond

type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	}
	return "unknown"
}

// HasSolution reports whether a Result with this status carries an
// assignment.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// SolutionCallback is invoked on the solving goroutine for every
// improving solution, with strictly decreasing objective values.
type SolutionCallback func(objective int, a *Assignment)

type Result struct {
	Status     Status
	Objective  int
	Assignment *Assignment
	// Conflicts lists the labels of the hard rules involved in an
	// infeasibility proof.
	Conflicts []string
	Solutions int
	Elapsed   time.Duration
}

type Solver struct {
	limit      time.Duration
	tracer     Tracer
	log        logr.Logger
	onSolution SolutionCallback
}

type Option func(s *Solver) error

// WithTimeLimit bounds the whole search. Zero means no limit beyond the
// caller's context.
func WithTimeLimit(d time.Duration) Option {
	return func(s *Solver) error {
		s.limit = d
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

func WithLogger(l logr.Logger) Option {
	return func(s *Solver) error {
		s.log = l
		return nil
	}
}

func WithSolutionCallback(cb SolutionCallback) Option {
	return func(s *Solver) error {
		s.onSolution = cb
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.log.GetSink() == nil {
			s.log = logr.Discard()
		}
		return nil
	},
}

func NewSolver(options ...Option) (*Solver, error) {
	s := &Solver{}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Solve searches for a model of m and, if m has an objective, walks the
// objective down one strict bound at a time until the bound becomes
// unsatisfiable, the budget runs out or ctx is done.
func (s *Solver) Solve(ctx context.Context, m *Model) (Result, error) {
	if err := m.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	var deadline time.Time
	if s.limit > 0 {
		deadline = start.Add(s.limit)
	}

	g := gini.New()
	rec := &recorder{dst: g}
	m.c.ToCnf(rec)
	// the constant node is always defined, even in an empty circuit
	rec.Add(m.c.T)
	rec.Add(z.LitNull)
	marks := make([]int8, m.c.Len())
	for i := range marks {
		marks[i] = 1
	}

	obj := m.objective
	assumptions := m.assumptions(nil)
	res := Result{Status: StatusUnknown}
	log := s.log.WithValues("rules", len(assumptions), "nodes", m.c.Len())
	log.V(1).Info("starting search", "limit", s.limit)

	for iteration := 1; ; iteration++ {
		var budget time.Duration
		if !deadline.IsZero() {
			if budget = time.Until(deadline); budget <= 0 {
				break
			}
		}
		if ctx.Err() != nil {
			break
		}

		g.Assume(assumptions...)
		outcome := run(ctx, g, budget)
		pos := position{iteration: iteration, elapsed: time.Since(start)}

		if outcome == satisfiable {
			a := snapshot(g, m.c)
			value := 0
			if obj != nil {
				value = obj.Value(a)
			}
			res.Assignment, res.Objective = a, value
			res.Solutions++
			res.Status = StatusFeasible
			if obj == nil || value <= obj.Min() {
				res.Status = StatusOptimal
			}
			pos.status, pos.objective, pos.solutions = res.Status, value, res.Solutions
			s.tracer.Trace(pos)
			log.V(1).Info("improving solution", "iteration", iteration, "objective", value)
			if s.onSolution != nil {
				s.onSolution(value, a)
			}
			if res.Status == StatusOptimal {
				break
			}
			bound := obj.Leq(value - 1)
			marks, _ = m.c.CnfSince(rec, marks, bound)
			rec.Add(bound)
			rec.Add(z.LitNull)
			continue
		}

		if outcome == unsatisfiable {
			if res.Solutions == 0 {
				res.Status = StatusInfeasible
				res.Conflicts = m.conflicts(g.Why(nil))
			} else {
				res.Status = StatusOptimal
			}
			pos.status, pos.objective, pos.solutions, pos.conflicts = res.Status, res.Objective, res.Solutions, res.Conflicts
			s.tracer.Trace(pos)
		}
		break
	}

	res.Elapsed = time.Since(start)
	log.V(1).Info("search finished", "status", res.Status, "objective", res.Objective, "solutions", res.Solutions, "elapsed", res.Elapsed)
	return res, nil
}

// run solves on gini's own goroutine and waits for it, stopping the
// search when the budget expires or ctx is done.
func run(ctx context.Context, g *gini.Gini, budget time.Duration) int {
	gs := g.GoSolve()
	var expired <-chan time.Time
	if budget > 0 {
		t := time.NewTimer(budget)
		defer t.Stop()
		expired = t.C
	}
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	for {
		if res, done := gs.Test(); done {
			return res
		}
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-expired:
			return gs.Stop()
		case <-poll.C:
		}
	}
}

// Assignment is a snapshot of one model. Circuit nodes that were never
// handed to the solver are evaluated from their inputs.
type Assignment struct {
	vals []bool
	c    *logic.C
}

func snapshot(g *gini.Gini, c *logic.C) *Assignment {
	maxVar := g.MaxVar()
	vals := make([]bool, maxVar+1)
	for v := z.Var(1); v <= maxVar; v++ {
		vals[v] = g.Value(v.Pos())
	}
	return &Assignment{vals: vals, c: c}
}

// Bool returns the value of l.
func (a *Assignment) Bool(l z.Lit) bool {
	v := a.value(l.Var())
	if !l.IsPos() {
		return !v
	}
	return v
}

func (a *Assignment) value(v z.Var) bool {
	if int(v) < len(a.vals) {
		return a.vals[v]
	}
	if int(v) >= a.c.Len() {
		return false
	}
	x, y := a.c.Ins(v.Pos())
	if x == z.LitNull {
		return false
	}
	return a.Bool(x) && a.Bool(y)
}

// Int returns the value of x.
func (a *Assignment) Int(x Int) int {
	return x.Value(a)
}

// Linear evaluates e.
func (a *Assignment) Linear(e Linear) int {
	v := e.Const
	for _, t := range e.Terms {
		if a.Bool(t.Lit) {
			v += t.Coef
		}
	}
	return v
}
