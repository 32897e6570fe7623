package compiler

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

func (b *builder) groups() {
	for _, g := range b.cfg.Groups {
		days := lo.Map(g.Courses, func(c int, _ int) sat.Int { return b.vars.courseDay[c] })
		times := lo.Map(g.Courses, func(c int, _ int) sat.Int { return b.vars.courseTime[c] })

		switch g.Relation {
		case swsched.AllDifferent:
			b.m.AllDifferent(fmt.Sprintf("group %q uses distinct days", g.Name), days...)
			b.m.AllDifferent(fmt.Sprintf("group %q uses distinct times", g.Name), times...)
		case swsched.DifferentDay:
			b.m.AllDifferent(fmt.Sprintf("group %q uses distinct days", g.Name), days...)
		case swsched.SameDaySequenced:
			b.sequenced(g, times)
		}
	}
}

// sequenced keeps a group on one day in one venue, in a contiguous block
// of times.
func (b *builder) sequenced(g swsched.Group, times []sat.Int) {
	first := g.Courses[0]
	for _, c := range g.Courses[1:] {
		b.m.Assert(fmt.Sprintf("group %q shares a day", g.Name), b.m.IntEqual(b.vars.courseDay[first], b.vars.courseDay[c]))
		b.m.Assert(fmt.Sprintf("group %q shares a venue", g.Name), b.m.IntEqual(b.vars.courseVenue[first], b.vars.courseVenue[c]))
	}
	if len(g.Courses) < 2 {
		return
	}
	b.m.AllowedAssignments(fmt.Sprintf("group %q runs back to back", g.Name), times, contiguousBlocks(len(g.Courses), b.cfg.TimesPerDay()))
}

// contiguousBlocks lists every assignment of k distinct times drawn from
// a window of k consecutive times out of n.
func contiguousBlocks(k, n int) [][]int {
	var out [][]int
	for start := 0; start+k <= n; start++ {
		window := lo.Range(k)
		for i := range window {
			window[i] += start
		}
		out = append(out, permutations(window)...)
	}
	return out
}

func permutations(xs []int) [][]int {
	if len(xs) <= 1 {
		return [][]int{append([]int(nil), xs...)}
	}
	var out [][]int
	for i := range xs {
		rest := make([]int, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]int{xs[i]}, p...))
		}
	}
	return out
}
