package sat

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardinality(t *testing.T) {
	type tc struct {
		Name   string
		Size   int
		Build  func(m *Model, ls []z.Lit)
		Status Status
		Count  int
	}

	for _, tt := range []tc{
		{
			Name: "at most one pairwise",
			Size: 3,
			Build: func(m *Model, ls []z.Lit) {
				m.AtMostOne("amo", ls...)
				m.Assert("first", ls[0])
				m.Assert("second", ls[1])
			},
			Status: StatusInfeasible,
		},
		{
			Name: "at most one sorting network",
			Size: 10,
			Build: func(m *Model, ls []z.Lit) {
				m.AtMostOne("amo", ls...)
				m.Assert("fifth", ls[4])
			},
			Status: StatusOptimal,
			Count:  1,
		},
		{
			Name: "exactly one",
			Size: 8,
			Build: func(m *Model, ls []z.Lit) {
				m.ExactlyOne("eo", ls...)
			},
			Status: StatusOptimal,
			Count:  1,
		},
		{
			Name: "exactly three",
			Size: 5,
			Build: func(m *Model, ls []z.Lit) {
				m.Exactly("three", 3, ls...)
			},
			Status: StatusOptimal,
			Count:  3,
		},
		{
			Name: "at most two of five forced three",
			Size: 5,
			Build: func(m *Model, ls []z.Lit) {
				m.AtMost("two", 2, ls...)
				m.Assert("a", ls[0])
				m.Assert("b", ls[1])
				m.Assert("c", ls[2])
			},
			Status: StatusInfeasible,
		},
		{
			Name: "exactly one of none",
			Size: 0,
			Build: func(m *Model, ls []z.Lit) {
				m.ExactlyOne("eo", ls...)
			},
			Status: StatusInfeasible,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			m := NewModel()
			ls := make([]z.Lit, tt.Size)
			for i := range ls {
				ls[i] = m.Bool()
			}
			tt.Build(m, ls)
			res := solve(t, m)
			require.Equal(t, tt.Status, res.Status)
			if !res.Status.HasSolution() {
				return
			}
			n := 0
			for _, l := range ls {
				if res.Assignment.Bool(l) {
					n++
				}
			}
			assert.Equal(t, tt.Count, n)
		})
	}
}

func TestAllDifferent(t *testing.T) {
	m := NewModel()
	xs := []Int{m.NewInt("a", 0, 2), m.NewInt("b", 0, 2), m.NewInt("c", 0, 2)}
	m.AllDifferent("distinct", xs...)
	m.Assert("a is 1", xs[0].Eq(1))
	m.Assert("b is not 0", xs[1].Eq(0).Not())

	res := solve(t, m)
	require.True(t, res.Status.HasSolution())
	assert.Equal(t, []int{1, 2, 0}, []int{res.Assignment.Int(xs[0]), res.Assignment.Int(xs[1]), res.Assignment.Int(xs[2])})
}

func TestAllDifferentPigeonhole(t *testing.T) {
	m := NewModel()
	var xs []Int
	for i := 0; i < 4; i++ {
		xs = append(xs, m.NewInt("x", 0, 2))
	}
	m.AllDifferent("distinct", xs...)

	res := solve(t, m)
	assert.Equal(t, StatusInfeasible, res.Status)
	assert.Contains(t, res.Conflicts, "distinct")
}

func TestAllowedAssignments(t *testing.T) {
	m := NewModel()
	x, y := m.NewInt("x", 0, 3), m.NewInt("y", 0, 3)
	m.AllowedAssignments("adjacent", []Int{x, y}, [][]int{{0, 1}, {1, 2}, {2, 3}})
	m.Assert("y is 2", y.Eq(2))

	res := solve(t, m)
	require.True(t, res.Status.HasSolution())
	assert.Equal(t, 1, res.Assignment.Int(x))

	m = NewModel()
	x = m.NewInt("x", 0, 1)
	m.AllowedAssignments("none", []Int{x}, nil)
	res = solve(t, m)
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestAllowedArityMismatch(t *testing.T) {
	m := NewModel()
	x := m.NewInt("x", 0, 1)
	m.AllowedLit([]Int{x}, [][]int{{0, 1}})
	assert.Error(t, m.Err())
}
