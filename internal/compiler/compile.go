// Package compiler turns a scheduling Config into a constraint model:
// primary placement and teaching variables, their channelled views, the
// hard rules and the weighted penalty objective.
package compiler

import (
	"github.com/go-logr/logr"

	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

// Compiled is the model built for one Config. It lives for a single
// compile and solve.
type Compiled struct {
	Config *swsched.Config
	Model  *sat.Model

	vars      *variables
	terms     []*Term
	objective sat.Linear
}

type builder struct {
	cfg   *swsched.Config
	m     *sat.Model
	vars  *variables
	terms []*Term
	log   logr.Logger
}

type Option func(b *builder)

func WithLogger(l logr.Logger) Option {
	return func(b *builder) {
		b.log = l
	}
}

// Compile validates cfg and builds its model. Configuration errors are
// returned before any constraint is emitted.
func Compile(cfg *swsched.Config, options ...Option) (*Compiled, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &builder{cfg: cfg, m: sat.NewModel(), log: logr.Discard()}
	for _, option := range options {
		option(b)
	}

	b.vars = declare(b.m, cfg)
	b.structural()
	b.staffing()
	b.exclusivity()
	b.exclusions()
	b.pins()
	b.availability()
	b.caps()
	b.groups()
	b.penalties()
	obj := b.objective()
	b.m.Minimize(obj)

	if err := b.m.Err(); err != nil {
		return nil, err
	}
	c := &Compiled{Config: cfg, Model: b.m, vars: b.vars, terms: b.terms, objective: obj}
	b.log.V(1).Info("compiled model", "config", cfg.String(), "inputs", b.m.Inputs(), "rules", b.m.Rules(), "nodes", b.m.Nodes(), "objective", c.Describe())
	return c, nil
}

// Terms returns the penalty terms in reporting order.
func (c *Compiled) Terms() []*Term {
	return c.terms
}
