package sat

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntOperations(t *testing.T) {
	type tc struct {
		Name  string
		Value int
		Apply func(m *Model, x Int) Int
		Want  int
		Lo    int
		Hi    int
	}

	for _, tt := range []tc{
		{Name: "div", Value: 7, Apply: func(m *Model, x Int) Int { return m.Div(x, 3) }, Want: 2, Lo: 0, Hi: 2},
		{Name: "mod", Value: 7, Apply: func(m *Model, x Int) Int { return m.Mod(x, 3) }, Want: 1, Lo: 0, Hi: 2},
		{Name: "square", Value: 5, Apply: func(m *Model, x Int) Int { return m.Square(x) }, Want: 25, Lo: 0, Hi: 64},
		{
			Name:  "abs of shifted",
			Value: 2,
			Apply: func(m *Model, x Int) Int { return m.Abs(m.MapInt(x, func(v int) int { return v - 6 })) },
			Want:  4,
			Lo:    0,
			Hi:    6,
		},
		{
			Name:  "max with constant",
			Value: 1,
			Apply: func(m *Model, x Int) Int { return m.Max(x, m.IntConst(3)) },
			Want:  3,
			Lo:    3,
			Hi:    8,
		},
		{
			Name:  "min with constant",
			Value: 1,
			Apply: func(m *Model, x Int) Int { return m.Min(x, m.IntConst(3)) },
			Want:  1,
			Lo:    0,
			Hi:    3,
		},
		{
			Name:  "clipped excess squared",
			Value: 5,
			Apply: func(m *Model, x Int) Int {
				excess := m.Max(m.MapInt(x, func(v int) int { return v - 2 }), m.IntConst(0))
				return m.Mul(excess, excess)
			},
			Want: 9,
			Lo:   0,
			Hi:   36,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			m := NewModel()
			x := m.NewInt("x", 0, 8)
			m.Assert("fix", x.Eq(tt.Value))
			y := tt.Apply(m, x)
			assert.Equal(t, tt.Lo, y.Lo())
			assert.Equal(t, tt.Hi, y.Hi())

			res := solve(t, m)
			require.True(t, res.Status.HasSolution())
			assert.Equal(t, tt.Value, res.Assignment.Int(x))
			assert.Equal(t, tt.Want, res.Assignment.Int(y))
			assert.Equal(t, tt.Want, res.Assignment.Linear(y.Linear()))
		})
	}
}

func TestIntComparisons(t *testing.T) {
	m := NewModel()
	x := m.NewInt("x", -2, 4)
	y := m.NewInt("y", 0, 9)
	m.Assert("x is 3", x.Eq(3))
	m.Assert("y equals x", m.IntEqual(x, y))
	le2, ge3, le10 := m.Leq(x, 2), m.Geq(x, 3), m.Leq(x, 10)

	res := solve(t, m)
	require.True(t, res.Status.HasSolution())
	a := res.Assignment
	assert.Equal(t, 3, a.Int(y))
	assert.False(t, a.Bool(le2))
	assert.True(t, a.Bool(ge3))
	assert.True(t, a.Bool(le10))
	assert.Equal(t, m.False(), x.Eq(5))
}

func TestCount(t *testing.T) {
	m := NewModel()
	a, b, c, d := m.Bool(), m.Bool(), m.Bool(), m.Bool()
	m.Assert("a", a)
	m.Assert("c", c)
	m.Assert("not b", b.Not())
	m.Assert("not d", d.Not())
	n := m.Count(a, b, c, d)
	assert.Equal(t, 0, n.Lo())
	assert.Equal(t, 4, n.Hi())

	res := solve(t, m)
	require.True(t, res.Status.HasSolution())
	assert.Equal(t, 2, res.Assignment.Int(n))
	assert.Equal(t, 0, res.Assignment.Int(m.Count()))
}

func TestIntFromIndicators(t *testing.T) {
	m := NewModel()
	a, b, c := m.Bool(), m.Bool(), m.Bool()
	m.ExactlyOne("one", a, b, c)
	m.Assert("b", b)
	x := m.IntFromIndicators(10, []z.Lit{a, b, c})
	assert.Equal(t, 10, x.Lo())
	assert.Equal(t, 12, x.Hi())

	res := solve(t, m)
	require.True(t, res.Status.HasSolution())
	assert.Equal(t, 11, res.Assignment.Int(x))
}
