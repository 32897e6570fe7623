package sat

import (
	"github.com/go-air/gini/z"
)

// Int is a bounded integer in one-hot form: eq[i] holds iff the value is
// lo+i. Exactly one of the eq literals is true in every model, either
// because the model asserts it (NewInt) or because the integer is derived
// from another one whose literals already partition the assignments.
type Int struct {
	lo int
	eq []z.Lit
	f  z.Lit
}

// NewInt returns a fresh integer over [lo, hi].
func (m *Model) NewInt(label string, lo, hi int) Int {
	if hi < lo {
		m.errorf("%s: empty domain [%d, %d]", label, lo, hi)
		hi = lo
	}
	eq := make([]z.Lit, hi-lo+1)
	for i := range eq {
		eq[i] = m.Bool()
	}
	if len(eq) == 1 {
		eq[0] = m.c.T
	}
	x := Int{lo: lo, eq: eq, f: m.c.F}
	m.ExactlyOne(label, eq...)
	return x
}

// IntConst returns the constant v.
func (m *Model) IntConst(v int) Int {
	return Int{lo: v, eq: []z.Lit{m.c.T}, f: m.c.F}
}

// IntFromIndicators wraps literals already known to be mutually
// exclusive and exhaustive: ind[i] holds iff the value is lo+i.
func (m *Model) IntFromIndicators(lo int, ind []z.Lit) Int {
	eq := make([]z.Lit, len(ind))
	copy(eq, ind)
	if len(eq) == 0 {
		m.errorf("integer with no indicator literals")
		eq = []z.Lit{m.c.T}
	}
	return Int{lo: lo, eq: eq, f: m.c.F}
}

func (x Int) Lo() int { return x.lo }
func (x Int) Hi() int { return x.lo + len(x.eq) - 1 }

// Eq returns a literal equivalent to x == v.
func (x Int) Eq(v int) z.Lit {
	i := v - x.lo
	if i < 0 || i >= len(x.eq) {
		return x.f
	}
	return x.eq[i]
}

// Linear returns x as a linear expression over its indicator literals.
func (x Int) Linear() Linear {
	e := Linear{Const: x.lo}
	for i, l := range x.eq {
		if i > 0 {
			e.AddTerm(i, l)
		}
	}
	return e
}

// Value reads x back from an assignment.
func (x Int) Value(a *Assignment) int {
	for i, l := range x.eq {
		if a.Bool(l) {
			return x.lo + i
		}
	}
	return x.lo
}

// Leq returns a literal equivalent to x <= v.
func (m *Model) Leq(x Int, v int) z.Lit {
	var ls []z.Lit
	for w := x.lo; w <= v && w <= x.Hi(); w++ {
		ls = append(ls, x.Eq(w))
	}
	return m.c.Ors(ls...)
}

// Geq returns a literal equivalent to x >= v.
func (m *Model) Geq(x Int, v int) z.Lit {
	return m.Leq(x, v-1).Not()
}

// IntEqual returns a literal equivalent to x == y.
func (m *Model) IntEqual(x, y Int) z.Lit {
	var ls []z.Lit
	for v := max(x.lo, y.lo); v <= min(x.Hi(), y.Hi()); v++ {
		ls = append(ls, m.c.And(x.Eq(v), y.Eq(v)))
	}
	return m.c.Ors(ls...)
}

// MapInt returns f(x). No fresh variables are introduced: each value of
// the result is the disjunction of the values of x that map onto it.
func (m *Model) MapInt(x Int, f func(int) int) Int {
	img := make(map[int][]z.Lit)
	lo, hi := 0, 0
	for i, l := range x.eq {
		w := f(x.lo + i)
		if i == 0 || w < lo {
			lo = w
		}
		if i == 0 || w > hi {
			hi = w
		}
		img[w] = append(img[w], l)
	}
	return m.fromImage(lo, hi, img)
}

// Map2 returns f(x, y) over the product of both domains.
func (m *Model) Map2(x, y Int, f func(a, b int) int) Int {
	img := make(map[int][]z.Lit)
	lo, hi := 0, 0
	first := true
	for i, lx := range x.eq {
		for j, ly := range y.eq {
			w := f(x.lo+i, y.lo+j)
			if first || w < lo {
				lo = w
			}
			if first || w > hi {
				hi = w
			}
			first = false
			img[w] = append(img[w], m.c.And(lx, ly))
		}
	}
	return m.fromImage(lo, hi, img)
}

func (m *Model) fromImage(lo, hi int, img map[int][]z.Lit) Int {
	eq := make([]z.Lit, hi-lo+1)
	for w := lo; w <= hi; w++ {
		eq[w-lo] = m.c.Ors(img[w]...)
	}
	return Int{lo: lo, eq: eq, f: m.c.F}
}

// Div returns x / k, truncated toward zero.
func (m *Model) Div(x Int, k int) Int {
	if k == 0 {
		m.errorf("division by zero")
		return x
	}
	return m.MapInt(x, func(v int) int { return v / k })
}

// Mod returns x % k.
func (m *Model) Mod(x Int, k int) Int {
	if k == 0 {
		m.errorf("modulo by zero")
		return x
	}
	return m.MapInt(x, func(v int) int { return v % k })
}

func (m *Model) Abs(x Int) Int {
	return m.MapInt(x, func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	})
}

func (m *Model) Square(x Int) Int {
	return m.MapInt(x, func(v int) int { return v * v })
}

func (m *Model) Mul(x, y Int) Int {
	return m.Map2(x, y, func(a, b int) int { return a * b })
}

func (m *Model) Max(x, y Int) Int {
	return m.Map2(x, y, func(a, b int) int { return max(a, b) })
}

func (m *Model) Min(x, y Int) Int {
	return m.Map2(x, y, func(a, b int) int { return min(a, b) })
}

func (m *Model) Add(x, y Int) Int {
	return m.Map2(x, y, func(a, b int) int { return a + b })
}

// Count returns the number of true literals in ls as an integer.
func (m *Model) Count(ls ...z.Lit) Int {
	if len(ls) == 0 {
		return m.IntConst(0)
	}
	cs := m.c.CardSort(ls)
	eq := make([]z.Lit, len(ls)+1)
	for v := range eq {
		eq[v] = m.c.And(cs.Geq(v), cs.Leq(v))
	}
	return Int{lo: 0, eq: eq, f: m.c.F}
}
