package sat

import (
	"context"
	"math/rand"
	"testing"
)

// benchmarkModel places n items into n+1 bins with random pairwise
// conflicts and minimises a random per-bin cost.
func benchmarkModel(n int) *Model {
	const (
		seed      = 9
		pConflict = .2
		maxCost   = 40
	)
	r := rand.New(rand.NewSource(seed))
	m := NewModel()
	items := make([]Int, n)
	for i := range items {
		items[i] = m.NewInt("item", 0, n)
	}
	m.AllDifferent("bins", items...)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() < pConflict {
				adj := make([][]int, 0, 2*n)
				for a := 0; a <= n; a++ {
					for b := 0; b <= n; b++ {
						if a-b > 1 || b-a > 1 {
							adj = append(adj, []int{a, b})
						}
					}
				}
				m.AllowedAssignments("apart", []Int{items[i], items[j]}, adj)
			}
		}
	}
	var obj Linear
	for _, it := range items {
		for v := 0; v <= n; v++ {
			obj.AddTerm(r.Intn(maxCost), it.Eq(v))
		}
	}
	m.Minimize(obj)
	return m
}

func BenchmarkSolve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		m := benchmarkModel(8)
		s, err := NewSolver()
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Solve(context.Background(), m); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchmarkModel(12)
	}
}
