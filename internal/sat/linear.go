package sat

import (
	"math/bits"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// unaryLimit bounds the total weight that is counted with a sorting
// network. Heavier sums use a binary adder.
const unaryLimit = 256

// Term is coefficient * lit, where the literal counts as 0 or 1.
type Term struct {
	Coef int
	Lit  z.Lit
}

// Linear is an integer expression Const + sum(Terms).
type Linear struct {
	Const int
	Terms []Term
}

// Lits builds the expression counting the true literals in ls.
func Lits(ls ...z.Lit) Linear {
	terms := make([]Term, len(ls))
	for i, l := range ls {
		terms[i] = Term{Coef: 1, Lit: l}
	}
	return Linear{Terms: terms}
}

// Plus returns e + o.
func (e Linear) Plus(o Linear) Linear {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return Linear{Const: e.Const + o.Const, Terms: terms}
}

// Scale returns k * e.
func (e Linear) Scale(k int) Linear {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Coef: k * t.Coef, Lit: t.Lit}
	}
	return Linear{Const: k * e.Const, Terms: terms}
}

// AddTerm appends coef * l.
func (e *Linear) AddTerm(coef int, l z.Lit) {
	e.Terms = append(e.Terms, Term{Coef: coef, Lit: l})
}

// Sum is a circuit that counts a Linear expression. Comparisons against
// constants return literals that are exact equivalences, so they can be
// asserted, used as enforcement conditions or read back as reified
// booleans.
type Sum struct {
	c      *logic.C
	offset int
	terms  []Term
	total  int

	card *logic.CardSort
	bits []z.Lit
}

// Sum builds the counting circuit for e.
func (m *Model) Sum(e Linear) *Sum {
	s := &Sum{c: m.c, offset: e.Const}
	for _, t := range e.Terms {
		switch {
		case t.Coef == 0 || t.Lit == m.c.F:
			continue
		case t.Lit == m.c.T:
			s.offset += t.Coef
			continue
		case t.Coef < 0:
			// a*l == a + |a|*(not l)
			s.offset += t.Coef
			s.terms = append(s.terms, Term{Coef: -t.Coef, Lit: t.Lit.Not()})
		default:
			s.terms = append(s.terms, t)
		}
		s.total += s.terms[len(s.terms)-1].Coef
	}
	switch {
	case len(s.terms) == 0:
	case s.total <= unaryLimit:
		ms := make([]z.Lit, 0, s.total)
		for _, t := range s.terms {
			for i := 0; i < t.Coef; i++ {
				ms = append(ms, t.Lit)
			}
		}
		s.card = m.c.CardSort(ms)
	default:
		s.bits = s.adder()
	}
	return s
}

// Min and Max bound the values the sum can take.
func (s *Sum) Min() int { return s.offset }
func (s *Sum) Max() int { return s.offset + s.total }

// Leq returns a literal equivalent to sum <= k.
func (s *Sum) Leq(k int) z.Lit {
	k -= s.offset
	switch {
	case k < 0:
		return s.c.F
	case k >= s.total:
		return s.c.T
	case s.card != nil:
		return s.card.Leq(k)
	}
	return s.leqBits(k)
}

// Geq returns a literal equivalent to sum >= k.
func (s *Sum) Geq(k int) z.Lit {
	return s.Leq(k - 1).Not()
}

// Eq returns a literal equivalent to sum == k.
func (s *Sum) Eq(k int) z.Lit {
	k -= s.offset
	switch {
	case k < 0 || k > s.total:
		return s.c.F
	case s.total == 0:
		return s.c.T
	case s.card != nil:
		return s.c.And(s.card.Geq(k), s.card.Leq(k))
	}
	return s.eqBits(k)
}

// Value evaluates the sum under an assignment.
func (s *Sum) Value(a *Assignment) int {
	v := s.offset
	for _, t := range s.terms {
		if a.Bool(t.Lit) {
			v += t.Coef
		}
	}
	return v
}

// adder compresses weighted literals column by column into a binary
// number, using full adders while a column holds three or more bits.
func (s *Sum) adder() []z.Lit {
	width := bits.Len(uint(s.total))
	cols := make([][]z.Lit, width+1)
	for _, t := range s.terms {
		for j := 0; j < width; j++ {
			if t.Coef&(1<<j) != 0 {
				cols[j] = append(cols[j], t.Lit)
			}
		}
	}
	out := make([]z.Lit, width)
	for j := 0; j < width; j++ {
		col := cols[j]
		for len(col) > 1 {
			if len(col) == 2 {
				sum, carry := s.halfAdd(col[0], col[1])
				cols[j+1] = append(cols[j+1], carry)
				col = append(col[:0], sum)
				break
			}
			sum, carry := s.fullAdd(col[0], col[1], col[2])
			cols[j+1] = append(cols[j+1], carry)
			col = append(col[3:], sum)
		}
		if len(col) == 1 {
			out[j] = col[0]
		} else {
			out[j] = s.c.F
		}
	}
	return out
}

func (s *Sum) halfAdd(a, b z.Lit) (z.Lit, z.Lit) {
	return s.c.Xor(a, b), s.c.And(a, b)
}

func (s *Sum) fullAdd(a, b, c z.Lit) (z.Lit, z.Lit) {
	ab := s.c.Xor(a, b)
	return s.c.Xor(ab, c), s.c.Or(s.c.And(a, b), s.c.And(c, ab))
}

// leqBits compares the binary sum against constant k, least
// significant bit first.
func (s *Sum) leqBits(k int) z.Lit {
	r := s.c.T
	for i, b := range s.bits {
		if k&(1<<i) != 0 {
			r = s.c.Or(b.Not(), r)
		} else {
			r = s.c.And(b.Not(), r)
		}
	}
	return r
}

func (s *Sum) eqBits(k int) z.Lit {
	r := s.c.T
	for i, b := range s.bits {
		if k&(1<<i) != 0 {
			r = s.c.And(r, b)
		} else {
			r = s.c.And(r, b.Not())
		}
	}
	return r
}

// ReifyEquals returns a literal equivalent to e == k.
func (m *Model) ReifyEquals(e Linear, k int) z.Lit {
	return m.Sum(e).Eq(k)
}

// ReifyLeq returns a literal equivalent to e <= k.
func (m *Model) ReifyLeq(e Linear, k int) z.Lit {
	return m.Sum(e).Leq(k)
}

// ReifyGeq returns a literal equivalent to e >= k.
func (m *Model) ReifyGeq(e Linear, k int) z.Lit {
	return m.Sum(e).Geq(k)
}
