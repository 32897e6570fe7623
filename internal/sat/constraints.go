package sat

import (
	"github.com/go-air/gini/z"
)

// pairwiseLimit is the largest set encoded with pairwise exclusion
// instead of a sorting network.
const pairwiseLimit = 6

// AtMostOneLit returns a literal equivalent to "at most one of ls holds".
func (m *Model) AtMostOneLit(ls ...z.Lit) z.Lit {
	ls = m.prune(ls)
	switch {
	case len(ls) <= 1:
		return m.c.T
	case len(ls) <= pairwiseLimit:
		var pairs []z.Lit
		for i := range ls {
			for j := i + 1; j < len(ls); j++ {
				pairs = append(pairs, m.c.And(ls[i], ls[j]).Not())
			}
		}
		return m.c.Ands(pairs...)
	}
	return m.c.CardSort(ls).Leq(1)
}

// AtMostLit returns a literal equivalent to "at most k of ls hold".
func (m *Model) AtMostLit(k int, ls ...z.Lit) z.Lit {
	if k == 1 {
		return m.AtMostOneLit(ls...)
	}
	return m.Sum(Lits(ls...)).Leq(k)
}

// ExactlyOneLit returns a literal equivalent to "exactly one of ls holds".
func (m *Model) ExactlyOneLit(ls ...z.Lit) z.Lit {
	return m.c.And(m.c.Ors(ls...), m.AtMostOneLit(ls...))
}

func (m *Model) AtMostOne(label string, ls ...z.Lit) {
	m.Assert(label, m.AtMostOneLit(ls...))
}

func (m *Model) AtMost(label string, k int, ls ...z.Lit) {
	m.Assert(label, m.AtMostLit(k, ls...))
}

func (m *Model) ExactlyOne(label string, ls ...z.Lit) {
	m.Assert(label, m.ExactlyOneLit(ls...))
}

// Exactly asserts that exactly k of ls hold.
func (m *Model) Exactly(label string, k int, ls ...z.Lit) {
	if k == 1 {
		m.ExactlyOne(label, ls...)
		return
	}
	m.Assert(label, m.Sum(Lits(ls...)).Eq(k))
}

// AllDifferent asserts that no two of xs take the same value.
func (m *Model) AllDifferent(label string, xs ...Int) {
	if len(xs) < 2 {
		return
	}
	lo, hi := xs[0].Lo(), xs[0].Hi()
	for _, x := range xs[1:] {
		lo, hi = min(lo, x.Lo()), max(hi, x.Hi())
	}
	for v := lo; v <= hi; v++ {
		ls := make([]z.Lit, 0, len(xs))
		for _, x := range xs {
			ls = append(ls, x.Eq(v))
		}
		m.AtMostOne(label, ls...)
	}
}

// AllowedLit returns a literal that holds iff the values of xs form one
// of the tuples.
func (m *Model) AllowedLit(xs []Int, tuples [][]int) z.Lit {
	alts := make([]z.Lit, 0, len(tuples))
	for _, t := range tuples {
		if len(t) != len(xs) {
			m.errorf("tuple of arity %d for %d variables", len(t), len(xs))
			continue
		}
		conj := make([]z.Lit, len(xs))
		for i, x := range xs {
			conj[i] = x.Eq(t[i])
		}
		alts = append(alts, m.c.Ands(conj...))
	}
	return m.c.Ors(alts...)
}

// AllowedAssignments restricts xs to the listed tuples.
func (m *Model) AllowedAssignments(label string, xs []Int, tuples [][]int) {
	m.Assert(label, m.AllowedLit(xs, tuples))
}

// prune drops literals that are constantly false.
func (m *Model) prune(ls []z.Lit) []z.Lit {
	out := make([]z.Lit, 0, len(ls))
	for _, l := range ls {
		if l != m.c.F {
			out = append(out, l)
		}
	}
	return out
}
