// Package check re-validates a timetable against the hard rules of a
// Config, independently of the constraint model that produced it.
package check

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/swsched/swsched/pkg/swsched"
)

// Violation is one broken hard rule.
type Violation struct {
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s", v.Rule, v.Message)
}

// Rule names reported in violations.
const (
	RulePlacement   = "placement"
	RuleRoom        = "room"
	RuleStaffing    = "staffing"
	RuleEligibility = "eligibility"
	RuleExclusivity = "exclusivity"
	RuleVenue       = "venue"
	RuleExclusion   = "exclusion"
	RulePin         = "pin"
	RuleAvailable   = "availability"
	RuleCap         = "cap"
	RuleGroup       = "group"
)

type checker struct {
	cfg *swsched.Config
	tt  swsched.Timetable
	out []Violation
}

func (c *checker) fail(rule, format string, args ...any) {
	c.out = append(c.out, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// Check returns every hard rule the timetable breaks. An empty result
// means the timetable is admissible.
func Check(cfg *swsched.Config, tt swsched.Timetable) []Violation {
	c := &checker{cfg: cfg, tt: tt}
	if !c.placement() {
		return c.out
	}
	c.rooms()
	c.staffing()
	c.exclusivity()
	c.exclusions()
	c.pins()
	c.availability()
	c.caps()
	c.groups()
	return c.out
}

// placement checks that every course appears exactly once on the grid.
// Later checks assume it holds.
func (c *checker) placement() bool {
	ok := true
	counts := lo.CountValuesBy(c.tt.Entries, func(e swsched.Entry) int { return e.Course })
	for _, course := range c.cfg.Courses {
		if n := counts[course.ID]; n != 1 {
			c.fail(RulePlacement, "course %q is placed %d times", course.Name, n)
			ok = false
		}
	}
	for _, e := range c.tt.Entries {
		switch {
		case e.Course < 0 || e.Course >= len(c.cfg.Courses):
			c.fail(RulePlacement, "unknown course %d", e.Course)
			ok = false
		case e.Slot < 0 || e.Slot >= c.cfg.NumSlots():
			c.fail(RulePlacement, "course %q is outside the grid", c.cfg.Courses[e.Course].Name)
			ok = false
		case e.Room < 0 || e.Room >= len(c.cfg.Rooms):
			c.fail(RulePlacement, "course %q has no room", c.cfg.Courses[e.Course].Name)
			ok = false
		}
		for _, t := range e.Instructors {
			if t < 0 || t >= len(c.cfg.People) {
				c.fail(RulePlacement, "unknown person %d", t)
				ok = false
			}
		}
	}
	return ok
}

func (c *checker) rooms() {
	type key struct{ slot, room int }
	seen := make(map[key]int)
	for _, e := range c.tt.Entries {
		k := key{e.Slot, e.Room}
		if prev, ok := seen[k]; ok {
			c.fail(RuleRoom, "room %q hosts %q and %q at %s", c.cfg.Rooms[e.Room].Name, c.cfg.Courses[prev].Name, c.cfg.Courses[e.Course].Name, c.cfg.SlotName(e.Slot))
			continue
		}
		seen[k] = e.Course
	}
}

func (c *checker) staffing() {
	for _, e := range c.tt.Entries {
		course := c.cfg.Courses[e.Course]
		people := lo.Map(e.Instructors, func(t int, _ int) swsched.Person { return c.cfg.People[t] })
		leads := lo.CountBy(people, func(p swsched.Person) bool { return p.Role == swsched.Lead })
		follows := len(people) - leads

		switch course.Category {
		case swsched.Regular:
			if leads != 1 || follows != 1 {
				c.fail(RuleStaffing, "course %q has %d lead and %d follow instructors", course.Name, leads, follows)
			}
		case swsched.Solo:
			if len(people) != 1 {
				c.fail(RuleStaffing, "course %q has %d instructors", course.Name, len(people))
			}
		case swsched.Open:
			if len(people) != 0 {
				c.fail(RuleStaffing, "open course %q has %d instructors", course.Name, len(people))
			}
		}
		for _, t := range e.Instructors {
			if !course.IsEligible(t) {
				c.fail(RuleEligibility, "%s is not on the allow-list of %q", c.cfg.People[t].Name, course.Name)
			}
		}
	}
}

// exclusivity: one course per slot and one venue per day for real people.
func (c *checker) exclusivity() {
	type slotKey struct{ person, slot int }
	type dayKey struct{ person, day int }
	slots := make(map[slotKey][]int)
	venues := make(map[dayKey][]int)
	for _, e := range c.tt.Entries {
		for _, t := range e.Instructors {
			if c.cfg.People[t].IsPlaceholder() {
				continue
			}
			slots[slotKey{t, e.Slot}] = append(slots[slotKey{t, e.Slot}], e.Course)
			dk := dayKey{t, c.cfg.Slot(e.Slot).Day}
			venues[dk] = append(venues[dk], c.cfg.Rooms[e.Room].Venue)
		}
	}
	for _, k := range sortedKeys(slots, func(a, b slotKey) bool { return a.person < b.person || (a.person == b.person && a.slot < b.slot) }) {
		if courses := slots[k]; len(courses) > 1 {
			c.fail(RuleExclusivity, "%s teaches %d courses at %s", c.cfg.People[k.person].Name, len(courses), c.cfg.SlotName(k.slot))
		}
	}
	for _, k := range sortedKeys(venues, func(a, b dayKey) bool { return a.person < b.person || (a.person == b.person && a.day < b.day) }) {
		if vs := lo.Uniq(venues[k]); len(vs) > 1 {
			c.fail(RuleVenue, "%s teaches in %d venues on %s", c.cfg.People[k.person].Name, len(vs), c.cfg.Days[k.day])
		}
	}
}

func (c *checker) exclusions() {
	for _, e := range c.tt.Entries {
		for _, p := range c.cfg.Exclusions {
			if lo.Contains(e.Instructors, p.A) && lo.Contains(e.Instructors, p.B) {
				c.fail(RuleExclusion, "%s and %s teach %q together", c.cfg.People[p.A].Name, c.cfg.People[p.B].Name, c.cfg.Courses[e.Course].Name)
			}
		}
	}
}

func (c *checker) pins() {
	for _, e := range c.tt.Entries {
		course := c.cfg.Courses[e.Course]
		if course.PinSlot != swsched.NoLimit && e.Slot != course.PinSlot {
			c.fail(RulePin, "course %q is pinned to %s but held at %s", course.Name, c.cfg.SlotName(course.PinSlot), c.cfg.SlotName(e.Slot))
		}
		if !lo.Contains(c.cfg.AllowedRooms(course), e.Room) {
			c.fail(RulePin, "course %q may not use room %q", course.Name, c.cfg.Rooms[e.Room].Name)
		}
	}
}

func (c *checker) availability() {
	for _, e := range c.tt.Entries {
		for _, t := range e.Instructors {
			if c.cfg.Banned(t, e.Slot) {
				c.fail(RuleAvailable, "%s is unavailable at %s", c.cfg.People[t].Name, c.cfg.SlotName(e.Slot))
			}
		}
	}
}

func (c *checker) caps() {
	load := make(map[int]int)
	for _, e := range c.tt.Entries {
		course := c.cfg.Courses[e.Course]
		community := lo.CountBy(e.Instructors, func(t int) bool {
			p := c.cfg.People[t]
			return !p.IsPlaceholder() && p.Tier == swsched.Community
		})
		if course.Category == swsched.Regular && community > 1 {
			c.fail(RuleCap, "course %q has %d community instructors", course.Name, community)
		}
		if course.Category == swsched.Solo && community > 0 {
			c.fail(RuleCap, "solo course %q has a community instructor", course.Name)
		}
		for _, t := range e.Instructors {
			load[t]++
		}
	}
	limit := c.cfg.Limits.CommunityMaxCourses
	for _, p := range c.cfg.People {
		n := load[p.ID]
		if !p.IsPlaceholder() && p.Tier == swsched.Community && limit != swsched.NoLimit && n > limit {
			c.fail(RuleCap, "community instructor %s teaches %d courses, limit %d", p.Name, n, limit)
		}
		if p.Max != swsched.NoLimit && n > p.Max {
			c.fail(RuleCap, "%s teaches %d courses, maximum %d", p.Name, n, p.Max)
		}
	}
}

func (c *checker) groups() {
	for _, g := range c.cfg.Groups {
		entries := lo.FilterMap(g.Courses, func(ci int, _ int) (swsched.Entry, bool) {
			return c.tt.EntryFor(ci)
		})
		days := lo.Map(entries, func(e swsched.Entry, _ int) int { return c.cfg.Slot(e.Slot).Day })
		times := lo.Map(entries, func(e swsched.Entry, _ int) int { return c.cfg.Slot(e.Slot).Time })
		venues := lo.Map(entries, func(e swsched.Entry, _ int) int { return c.cfg.Rooms[e.Room].Venue })

		switch g.Relation {
		case swsched.AllDifferent:
			if len(lo.Uniq(days)) != len(days) || len(lo.Uniq(times)) != len(times) {
				c.fail(RuleGroup, "group %q repeats a day or a time", g.Name)
			}
		case swsched.DifferentDay:
			if len(lo.Uniq(days)) != len(days) {
				c.fail(RuleGroup, "group %q repeats a day", g.Name)
			}
		case swsched.SameDaySequenced:
			if len(lo.Uniq(days)) > 1 {
				c.fail(RuleGroup, "group %q spans several days", g.Name)
			}
			if len(lo.Uniq(venues)) > 1 {
				c.fail(RuleGroup, "group %q spans several venues", g.Name)
			}
			if len(times) > 0 && (len(lo.Uniq(times)) != len(times) || lo.Max(times)-lo.Min(times) != len(times)-1) {
				c.fail(RuleGroup, "group %q is not a contiguous block of times", g.Name)
			}
		}
	}
}

func sortedKeys[K comparable, V any](m map[K]V, less func(a, b K) bool) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
