package sat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// recorder sits between the circuit and the solver. It tracks the
// largest variable handed to the solver and optionally keeps the clauses
// for export.
type recorder struct {
	dst     inter.Adder
	max     z.Var
	keep    bool
	clauses [][]z.Lit
	cur     []z.Lit
}

func (r *recorder) Add(m z.Lit) {
	if r.dst != nil {
		r.dst.Add(m)
	}
	if m == z.LitNull {
		if r.keep {
			r.clauses = append(r.clauses, r.cur)
		}
		r.cur = nil
		return
	}
	if v := m.Var(); v > r.max {
		r.max = v
	}
	if r.keep {
		r.cur = append(r.cur, m)
	}
}

// WriteDimacs writes the hard part of the model in DIMACS CNF. Every rule
// becomes a unit clause, so the output is satisfiable iff the model is.
func (m *Model) WriteDimacs(w io.Writer) error {
	r := m.cnf()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "c %d hard rules over %d decision variables\n", len(m.rules), m.inputs)
	fmt.Fprintf(bw, "p cnf %d %d\n", r.max, len(r.clauses))
	for _, cl := range r.clauses {
		for _, l := range cl {
			fmt.Fprintf(bw, "%d ", l.Dimacs())
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}

// Stats summarises the CNF size of the model.
type Stats struct {
	Inputs  int
	Nodes   int
	Rules   int
	Vars    int
	Clauses int
}

func (m *Model) Stats() Stats {
	r := m.cnf()
	return Stats{
		Inputs:  m.inputs,
		Nodes:   m.c.Len(),
		Rules:   len(m.rules),
		Vars:    int(r.max),
		Clauses: len(r.clauses),
	}
}

func (m *Model) cnf() *recorder {
	r := &recorder{keep: true}
	m.c.ToCnf(r)
	for _, rl := range m.rules {
		r.Add(rl.lit)
		r.Add(z.LitNull)
	}
	return r
}
