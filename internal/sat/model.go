package sat

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Model is a constraint model compiled onto a single combinational
// circuit. Boolean structure, integer encodings and linear counters all
// become circuit nodes; hard rules are labelled roots that are assumed
// on every solve, so that an unsatisfiable model can report which rules
// were involved.
type Model struct {
	c *logic.C

	rules  []rule
	labels map[z.Lit][]string

	inputs int
	errs   inconsistentModel

	objective *Sum
}

type rule struct {
	label string
	lit   z.Lit
}

type inconsistentModel []error

func (e inconsistentModel) Error() string {
	s := make([]string, len(e))
	for i, err := range e {
		s[i] = err.Error()
	}
	return fmt.Sprintf("%d errors encountered while building the model: %s", len(s), strings.Join(s, ", "))
}

func NewModel() *Model {
	return &Model{
		c:      logic.NewC(),
		labels: make(map[z.Lit][]string),
	}
}

// Bool returns a fresh decision variable.
func (m *Model) Bool() z.Lit {
	m.inputs++
	return m.c.Lit()
}

func (m *Model) True() z.Lit  { return m.c.T }
func (m *Model) False() z.Lit { return m.c.F }

// Const returns the literal for a fixed truth value.
func (m *Model) Const(b bool) z.Lit {
	if b {
		return m.c.T
	}
	return m.c.F
}

func (m *Model) And(ms ...z.Lit) z.Lit { return m.c.Ands(ms...) }
func (m *Model) Or(ms ...z.Lit) z.Lit  { return m.c.Ors(ms...) }

func (m *Model) Implies(a, b z.Lit) z.Lit { return m.c.Implies(a, b) }
func (m *Model) Xor(a, b z.Lit) z.Lit     { return m.c.Xor(a, b) }

// Equiv returns a literal that holds iff a and b have the same value.
func (m *Model) Equiv(a, b z.Lit) z.Lit { return m.c.Xor(a, b).Not() }

func (m *Model) Choice(i, t, e z.Lit) z.Lit { return m.c.Choice(i, t, e) }

// Assert adds a hard rule. Rules that share a label are reported together
// when they take part in a conflict.
func (m *Model) Assert(label string, l z.Lit) {
	if l == m.c.T {
		return
	}
	m.rules = append(m.rules, rule{label: label, lit: l})
	m.labels[l] = append(m.labels[l], label)
}

// AssertIf adds the hard rule "enforce implies l".
func (m *Model) AssertIf(label string, enforce, l z.Lit) {
	m.Assert(label, m.c.Implies(enforce, l))
}

// Fix asserts that x holds the value v.
func (m *Model) Fix(label string, l z.Lit, v bool) {
	if v {
		m.Assert(label, l)
		return
	}
	m.Assert(label, l.Not())
}

// Minimize declares the objective. A model without an objective is a
// pure satisfiability problem.
func (m *Model) Minimize(obj Linear) {
	m.objective = m.Sum(obj)
}

// Rules returns the number of asserted hard rules.
func (m *Model) Rules() int {
	return len(m.rules)
}

// Inputs returns the number of decision variables.
func (m *Model) Inputs() int {
	return m.inputs
}

// Nodes returns the size of the underlying circuit.
func (m *Model) Nodes() int {
	return m.c.Len()
}

// Err reports inconsistencies encountered while building the model, for
// example an integer with an empty domain.
func (m *Model) Err() error {
	if len(m.errs) == 0 {
		return nil
	}
	return m.errs
}

func (m *Model) errorf(format string, args ...any) {
	m.errs = append(m.errs, fmt.Errorf(format, args...))
}

// conflicts maps failed assumptions back to rule labels, without
// duplicates and in the order the rules were asserted.
func (m *Model) conflicts(why []z.Lit) []string {
	failed := make(map[string]struct{})
	for _, l := range why {
		for _, label := range m.labels[l] {
			failed[label] = struct{}{}
		}
	}
	out := make([]string, 0, len(failed))
	for _, r := range m.rules {
		if _, ok := failed[r.label]; ok {
			out = append(out, r.label)
			delete(failed, r.label)
		}
	}
	return out
}

func (m *Model) assumptions(dst []z.Lit) []z.Lit {
	dst = dst[:0]
	for _, r := range m.rules {
		dst = append(dst, r.lit)
	}
	return dst
}
