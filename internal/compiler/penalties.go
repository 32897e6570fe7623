package compiler

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/z"
	"github.com/samber/lo"

	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

// Item is one unit of a penalty term together with what caused it.
type Item struct {
	Expr  sat.Linear
	Cause string
}

// Term is a named, weighted group of penalty items.
type Term struct {
	Name   string
	Weight int
	Items  []Item
}

func (t *Term) add(e sat.Linear, format string, args ...any) {
	t.Items = append(t.Items, Item{Expr: e, Cause: fmt.Sprintf(format, args...)})
}

func (t *Term) lit(l z.Lit, format string, args ...any) {
	t.add(sat.Lits(l), format, args...)
}

// Linear is the unweighted sum of the term's items.
func (t *Term) Linear() sat.Linear {
	var e sat.Linear
	for _, it := range t.Items {
		e = e.Plus(it.Expr)
	}
	return e
}

type penalty func(b *builder, t *Term)

// penalties lists the terms in reporting order.
var penalties = []struct {
	name  string
	build penalty
}{
	{swsched.TermUtilization, (*builder).utilization},
	{swsched.TermDaysWorked, (*builder).daysWorked},
	{swsched.TermSplitDay, (*builder).splitDay},
	{swsched.TermSlotDiscouraged, slotTier(swsched.Discouraged)},
	{swsched.TermSlotNeutral, slotTier(swsched.Neutral)},
	{swsched.TermCourseDiscouraged, courseTier(swsched.Discouraged)},
	{swsched.TermCourseNeutral, courseTier(swsched.Neutral)},
	{swsched.TermVenueBalance, (*builder).venueBalance},
	{swsched.TermAttendance, (*builder).attendance},
	{swsched.TermCoteach, (*builder).coteach},
	{swsched.TermPlaceholder, (*builder).placeholder},
}

func (b *builder) penalties() {
	for _, p := range penalties {
		w := b.cfg.Weights.Of(p.name)
		if w == 0 {
			continue
		}
		t := &Term{Name: p.name, Weight: w}
		p.build(b, t)
		b.terms = append(b.terms, t)
	}
}

func (b *builder) real() []int {
	return b.cfg.RealPeople()
}

// utilization: (load - ideal)^2 for people with an ideal course count.
func (b *builder) utilization(t *Term) {
	for _, id := range b.real() {
		p := b.cfg.People[id]
		if p.Ideal == swsched.NoLimit {
			continue
		}
		diff := b.m.Abs(b.m.MapInt(b.vars.load[id], func(n int) int { return n - p.Ideal }))
		t.add(b.m.Square(diff).Linear(), "%s teaches away from the ideal of %d courses", p.Name, p.Ideal)
	}
}

// daysWorked: squared excess of days worked over the fewest days the
// load fits in.
func (b *builder) daysWorked(t *Term) {
	nt := b.cfg.TimesPerDay()
	for _, id := range b.real() {
		p := b.cfg.People[id]
		days := b.m.Count(b.vars.occupiedDay[id]...)
		need := b.m.Div(b.m.MapInt(b.vars.load[id], func(n int) int { return n + nt - 1 }), nt)
		excess := b.m.Max(b.m.Map2(days, need, func(a, n int) int { return a - n }), b.m.IntConst(0))
		t.add(b.m.Mul(excess, excess).Linear(), "%s works on more days than needed", p.Name)
	}
}

// splitDay: an unoccupied time between two occupied times on one day.
func (b *builder) splitDay(t *Term) {
	nt := b.cfg.TimesPerDay()
	for _, id := range b.real() {
		p := b.cfg.People[id]
		for d, day := range b.cfg.Days {
			occ := lo.Map(slotsOf(b.cfg, d), func(s int, _ int) z.Lit { return b.vars.occupied[id][s] })
			var gaps []z.Lit
			for i := 0; i < nt; i++ {
				for j := i + 1; j < nt; j++ {
					for k := j + 1; k < nt; k++ {
						gaps = append(gaps, b.m.And(occ[i], occ[j].Not(), occ[k]))
					}
				}
			}
			if len(gaps) > 0 {
				t.lit(b.m.Or(gaps...), "%s has a gap on %s", p.Name, day)
			}
		}
	}
}

// mixes reports whether the levels contain the given tier next to a
// better one, the condition under which that tier is penalised.
func mixes(levels []swsched.Level, tier swsched.Level) bool {
	if !lo.Contains(levels, tier) {
		return false
	}
	switch tier {
	case swsched.Discouraged:
		return lo.Contains(levels, swsched.Neutral) || lo.Contains(levels, swsched.Preferred)
	case swsched.Neutral:
		return lo.Contains(levels, swsched.Preferred)
	}
	return false
}

func slotTier(tier swsched.Level) penalty {
	return func(b *builder, t *Term) {
		for _, id := range b.real() {
			p := b.cfg.People[id]
			if !mixes(p.Availability, tier) {
				continue
			}
			for s, l := range p.Availability {
				if l == tier {
					t.lit(b.vars.occupied[id][s], "%s teaches at %s slot %s", p.Name, tier, b.cfg.SlotName(s))
				}
			}
		}
	}
}

func courseTier(tier swsched.Level) penalty {
	return func(b *builder, t *Term) {
		for _, id := range b.real() {
			p := b.cfg.People[id]
			eligible := lo.Filter(b.cfg.Courses, func(c swsched.Course, _ int) bool { return c.IsEligible(id) })
			levels := lo.Map(eligible, func(c swsched.Course, _ int) swsched.Level { return p.CourseLevel(c.ID) })
			if !mixes(levels, tier) {
				continue
			}
			for _, c := range eligible {
				if p.CourseLevel(c.ID) == tier {
					t.lit(b.vars.teaches[id][c.ID], "%s teaches %s course %s", p.Name, tier, c.Name)
				}
			}
		}
	}
}

// venueBalance: unused capacity of the preferred venue.
func (b *builder) venueBalance(t *Term) {
	v := b.cfg.PreferredVenue
	if v == swsched.NoLimit {
		return
	}
	e := sat.Linear{Const: len(b.cfg.RoomsIn(v)) * b.cfg.NumSlots()}
	for c := range b.cfg.Courses {
		e.AddTerm(-1, b.vars.inVenue[c][v])
	}
	t.add(e, "unused capacity in %s", b.cfg.Venues[v].Name)
}

// attendance: a course someone wants to attend runs while they teach
// another one.
func (b *builder) attendance(t *Term) {
	for _, id := range b.real() {
		p := b.cfg.People[id]
		for _, c := range p.Attend {
			for s := 0; s < b.cfg.NumSlots(); s++ {
				var others []z.Lit
				for o := range b.cfg.Courses {
					if o != c && b.vars.busy[id][s][o] != b.m.False() {
						others = append(others, b.vars.busy[id][s][o])
					}
				}
				if len(others) == 0 {
					continue
				}
				clash := b.m.And(b.vars.activeAt[c].Eq(s), b.m.Or(others...))
				t.lit(clash, "%s cannot attend %s at %s", p.Name, b.cfg.Courses[c].Name, b.cfg.SlotName(s))
			}
		}
	}
}

// coteach: someone teaches but shares no course with a requested partner.
func (b *builder) coteach(t *Term) {
	for _, id := range b.real() {
		p := b.cfg.People[id]
		if len(p.CoteachWith) == 0 {
			continue
		}
		together := make([]z.Lit, 0, len(b.cfg.Courses))
		for c := range b.cfg.Courses {
			partners := lo.Map(p.CoteachWith, func(q int, _ int) z.Lit { return b.vars.teaches[q][c] })
			together = append(together, b.m.And(b.vars.teaches[id][c], b.m.Or(partners...)))
		}
		lonely := b.m.And(b.m.Or(b.vars.teaches[id]...), b.m.Or(together...).Not())
		names := lo.Map(p.CoteachWith, func(q int, _ int) string { return b.cfg.People[q].Name })
		t.lit(lonely, "%s teaches without any of %s", p.Name, strings.Join(names, ", "))
	}
}

// placeholder: every course a placeholder stands in on.
func (b *builder) placeholder(t *Term) {
	for id, p := range b.cfg.People {
		if !p.IsPlaceholder() {
			continue
		}
		for _, c := range b.cfg.Courses {
			if c.IsEligible(id) {
				t.lit(b.vars.teaches[id][c.ID], "%s stands in on %s", p.Name, c.Name)
			}
		}
	}
}
