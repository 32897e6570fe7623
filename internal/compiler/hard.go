package compiler

import (
	"fmt"

	"github.com/go-air/gini/z"
	"github.com/samber/lo"

	"github.com/swsched/swsched/pkg/swsched"
)

// structural: each course sits in exactly one (slot, room), each
// (slot, room) hosts at most one course.
func (b *builder) structural() {
	for c, course := range b.cfg.Courses {
		var ls []z.Lit
		for _, row := range b.vars.placement[c] {
			ls = append(ls, row...)
		}
		b.m.ExactlyOne(fmt.Sprintf("course %q is placed exactly once", course.Name), ls...)
	}
	for s := 0; s < b.cfg.NumSlots(); s++ {
		for r, room := range b.cfg.Rooms {
			ls := make([]z.Lit, len(b.cfg.Courses))
			for c := range b.cfg.Courses {
				ls[c] = b.vars.placement[c][s][r]
			}
			b.m.AtMostOne(fmt.Sprintf("room %q hosts one course at %s", room.Name, b.cfg.SlotName(s)), ls...)
		}
	}
}

// staffing enforces the category cardinality and the allow-lists.
func (b *builder) staffing() {
	leads := b.peopleWith(func(p swsched.Person) bool { return p.Role == swsched.Lead })
	follows := b.peopleWith(func(p swsched.Person) bool { return p.Role == swsched.Follow })

	for c, course := range b.cfg.Courses {
		for t, p := range b.cfg.People {
			if !course.IsEligible(t) {
				b.m.Assert(fmt.Sprintf("course %q allow-list excludes %s", course.Name, p.Name), b.vars.teaches[t][c].Not())
			}
		}

		col := func(ids []int) []z.Lit {
			return lo.Map(ids, func(t int, _ int) z.Lit { return b.vars.teaches[t][c] })
		}
		switch course.Category {
		case swsched.Regular:
			b.m.ExactlyOne(fmt.Sprintf("course %q has one lead instructor", course.Name), col(leads)...)
			b.m.ExactlyOne(fmt.Sprintf("course %q has one follow instructor", course.Name), col(follows)...)
		case swsched.Solo:
			b.m.ExactlyOne(fmt.Sprintf("course %q has one instructor", course.Name), col(lo.Range(len(b.cfg.People)))...)
		case swsched.Open:
			for t := range b.cfg.People {
				b.m.Assert(fmt.Sprintf("course %q is open and untaught", course.Name), b.vars.teaches[t][c].Not())
			}
		}
	}
}

// exclusivity keeps real people in one course per slot and one venue per
// day. Placeholders are exempt.
func (b *builder) exclusivity() {
	for t, p := range b.cfg.People {
		if p.IsPlaceholder() {
			continue
		}
		for s := 0; s < b.cfg.NumSlots(); s++ {
			b.m.AtMostOne(fmt.Sprintf("%s teaches one course at a time", p.Name), b.vars.busy[t][s]...)
		}
		for d := range b.cfg.Days {
			ls := make([]z.Lit, len(b.cfg.Venues))
			for v := range b.cfg.Venues {
				ls[v] = b.vars.venueOccupied[t][v][d]
			}
			b.m.AtMostOne(fmt.Sprintf("%s stays in one venue per day", p.Name), ls...)
		}
	}
}

// exclusions forbids configured pairs from sharing a course.
func (b *builder) exclusions() {
	for _, pair := range b.cfg.Exclusions {
		label := fmt.Sprintf("%s and %s never teach together", b.cfg.People[pair.A].Name, b.cfg.People[pair.B].Name)
		for c := range b.cfg.Courses {
			b.m.Assert(label, b.m.And(b.vars.teaches[pair.A][c], b.vars.teaches[pair.B][c]).Not())
		}
	}
}

// pins applies slot pins and room or venue restrictions.
func (b *builder) pins() {
	for c, course := range b.cfg.Courses {
		if course.PinSlot != swsched.NoLimit {
			b.m.Assert(fmt.Sprintf("course %q is pinned to %s", course.Name, b.cfg.SlotName(course.PinSlot)), b.vars.activeAt[c].Eq(course.PinSlot))
		}
		allowed := b.cfg.AllowedRooms(course)
		if len(allowed) == len(b.cfg.Rooms) {
			continue
		}
		label := fmt.Sprintf("course %q room and venue restrictions", course.Name)
		for r := range b.cfg.Rooms {
			if lo.Contains(allowed, r) {
				continue
			}
			for s := 0; s < b.cfg.NumSlots(); s++ {
				b.m.Assert(label, b.vars.placement[c][s][r].Not())
			}
		}
	}
}

// availability turns forbidden slots and explicit bans into hard rules.
func (b *builder) availability() {
	for t, p := range b.cfg.People {
		for s := 0; s < b.cfg.NumSlots(); s++ {
			if !b.cfg.Banned(t, s) {
				continue
			}
			b.m.Assert(fmt.Sprintf("%s is unavailable at %s", p.Name, b.cfg.SlotName(s)), b.m.Or(b.vars.busy[t][s]...).Not())
		}
	}
}

// caps applies the community tier limits and personal maximums.
func (b *builder) caps() {
	limit := b.cfg.Limits.CommunityMaxCourses
	community := b.peopleWith(func(p swsched.Person) bool {
		return !p.IsPlaceholder() && p.Tier == swsched.Community
	})

	for _, t := range community {
		p := b.cfg.People[t]
		if limit != swsched.NoLimit {
			b.m.AtMost(fmt.Sprintf("%s is capped at %d courses as community instructor", p.Name, limit), limit, b.vars.teaches[t]...)
		}
	}
	for c, course := range b.cfg.Courses {
		col := lo.Map(community, func(t int, _ int) z.Lit { return b.vars.teaches[t][c] })
		switch course.Category {
		case swsched.Regular:
			b.m.AtMostOne(fmt.Sprintf("course %q has at most one community instructor", course.Name), col...)
		case swsched.Solo:
			for _, l := range col {
				b.m.Assert(fmt.Sprintf("course %q takes no community instructor", course.Name), l.Not())
			}
		}
	}

	for t, p := range b.cfg.People {
		if p.Max != swsched.NoLimit {
			b.m.AtMost(fmt.Sprintf("%s teaches at most %d courses", p.Name, p.Max), p.Max, b.vars.teaches[t]...)
		}
	}
}

func (b *builder) peopleWith(pred func(p swsched.Person) bool) []int {
	return lo.FilterMap(b.cfg.People, func(p swsched.Person, _ int) (int, bool) {
		return p.ID, pred(p)
	})
}
