package swsched

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Validate rejects configurations that reference unknown ids or pin a
// course against its own restrictions. The compiler never emits
// self-contradictory constraints because it refuses to run on a Config
// that fails here.
func (c *Config) Validate() error {
	var errs []error
	add := func(err *ConfigError) {
		errs = append(errs, err)
	}

	if len(c.Days) == 0 {
		add(Errorf("days", "", "at least one day is required"))
	}
	if len(c.Times) == 0 {
		add(Errorf("times", "", "at least one time of day is required"))
	}
	if len(c.Rooms) == 0 {
		add(Errorf("rooms", "", "at least one room is required"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	slots := c.NumSlots()

	for i, r := range c.Rooms {
		if r.ID != i {
			add(Errorf("rooms", r.Name, "id %d out of order", r.ID))
		}
		if !c.validVenue(r.Venue) {
			add(Errorf("rooms", r.Name, "unknown venue %d", r.Venue))
		}
	}
	if c.PreferredVenue != NoLimit && !c.validVenue(c.PreferredVenue) {
		add(Errorf("preferred_venue", "", "unknown venue %d", c.PreferredVenue))
	}

	for i, p := range c.People {
		if p.ID != i {
			add(Errorf("people", p.Name, "id %d out of order", p.ID))
		}
		if !p.IsPlaceholder() && len(p.Availability) != slots {
			add(Errorf("preferences.slots", p.Name, "expected %d slot preferences, got %d", slots, len(p.Availability)))
		}
		if p.Ideal != NoLimit && p.Max != NoLimit && p.Ideal > p.Max {
			add(Errorf("preferences", p.Name, "ideal course count %d exceeds maximum %d", p.Ideal, p.Max))
		}
		for _, a := range p.Attend {
			if !c.validCourse(a) {
				add(Errorf("preferences.attend", p.Name, "unknown course %d", a))
			}
		}
		for _, q := range p.CoteachWith {
			if !c.validPerson(q) {
				add(Errorf("preferences.coteach", p.Name, "unknown person %d", q))
			}
		}
		for course := range p.CoursePrefs {
			if !c.validCourse(course) {
				add(Errorf("preferences.courses", p.Name, "unknown course %d", course))
			}
		}
	}

	for i, cs := range c.Courses {
		if cs.ID != i {
			add(Errorf("courses", cs.Name, "id %d out of order", cs.ID))
		}
		for _, e := range cs.Eligible {
			if !c.validPerson(e) {
				add(Errorf("courses.teachers", cs.Name, "unknown person %d", e))
			}
		}
		for _, err := range c.validateCoursePins(cs) {
			add(err)
		}
	}

	for _, g := range c.Groups {
		for _, err := range c.validateGroup(g) {
			add(err)
		}
	}

	for _, p := range c.Exclusions {
		if !c.validPerson(p.A) || !c.validPerson(p.B) {
			add(Errorf("exclusions", "", "unknown person in pair (%d, %d)", p.A, p.B))
		} else if p.A == p.B {
			add(Errorf("exclusions", c.People[p.A].Name, "a person cannot be excluded from teaching with themselves"))
		}
	}
	for _, b := range c.SlotBans {
		if !c.validPerson(b.Person) {
			add(Errorf("forbidden", "", "unknown person %d", b.Person))
		}
		if b.Slot < 0 || b.Slot >= slots {
			add(Errorf("forbidden", "", "slot %d outside the %d-slot grid", b.Slot, slots))
		}
	}

	if c.Limits.CommunityMaxCourses < 0 && c.Limits.CommunityMaxCourses != NoLimit {
		add(Errorf("limits.community_max_courses", "", "must be %d (no limit) or a non-negative count", NoLimit))
	}

	return errors.Join(errs...)
}

func (c *Config) validateCoursePins(cs Course) []*ConfigError {
	var errs []*ConfigError
	if cs.PinSlot != NoLimit && (cs.PinSlot < 0 || cs.PinSlot >= c.NumSlots()) {
		errs = append(errs, Errorf("courses.pin_slot", cs.Name, "slot %d outside the %d-slot grid", cs.PinSlot, c.NumSlots()))
	}
	for _, r := range cs.ForbidRooms {
		if !c.validRoom(r) {
			errs = append(errs, Errorf("courses.forbid_rooms", cs.Name, "unknown room %d", r))
		}
	}
	for _, v := range cs.ForbidVenues {
		if !c.validVenue(v) {
			errs = append(errs, Errorf("courses.forbid_venues", cs.Name, "unknown venue %d", v))
		}
	}
	if cs.PinVenue != NoLimit {
		if !c.validVenue(cs.PinVenue) {
			errs = append(errs, Errorf("courses.pin_venue", cs.Name, "unknown venue %d", cs.PinVenue))
		} else if lo.Contains(cs.ForbidVenues, cs.PinVenue) {
			errs = append(errs, Errorf("courses.pin_venue", cs.Name, "venue %s is both pinned and forbidden", c.Venues[cs.PinVenue].Name))
		}
	}
	if cs.PinRoom != NoLimit {
		switch {
		case !c.validRoom(cs.PinRoom):
			errs = append(errs, Errorf("courses.pin_room", cs.Name, "unknown room %d", cs.PinRoom))
		case lo.Contains(cs.ForbidRooms, cs.PinRoom):
			errs = append(errs, Errorf("courses.pin_room", cs.Name, "room %s is both pinned and forbidden", c.Rooms[cs.PinRoom].Name))
		case lo.Contains(cs.ForbidVenues, c.Rooms[cs.PinRoom].Venue):
			errs = append(errs, Errorf("courses.pin_room", cs.Name, "room %s lies in forbidden venue %s", c.Rooms[cs.PinRoom].Name, c.Venues[c.Rooms[cs.PinRoom].Venue].Name))
		case cs.PinVenue != NoLimit && c.Rooms[cs.PinRoom].Venue != cs.PinVenue:
			errs = append(errs, Errorf("courses.pin_room", cs.Name, "room %s is not in pinned venue %s", c.Rooms[cs.PinRoom].Name, c.Venues[cs.PinVenue].Name))
		}
	}
	if len(errs) == 0 && len(c.AllowedRooms(cs)) == 0 {
		errs = append(errs, Errorf("courses", cs.Name, "every room is excluded by the course's room and venue restrictions"))
	}
	return errs
}

func (c *Config) validateGroup(g Group) []*ConfigError {
	var errs []*ConfigError
	if len(g.Courses) == 0 {
		return []*ConfigError{Errorf("groups", g.Name, "group has no courses")}
	}
	if len(lo.Uniq(g.Courses)) != len(g.Courses) {
		errs = append(errs, Errorf("groups", g.Name, "a course is listed more than once"))
	}
	for _, cs := range g.Courses {
		if !c.validCourse(cs) {
			errs = append(errs, Errorf("groups", g.Name, "unknown course %d", cs))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	n := len(g.Courses)
	switch g.Relation {
	case AllDifferent:
		if n > len(c.Days) || n > len(c.Times) {
			errs = append(errs, Errorf("groups", g.Name, "%d courses cannot use distinct days and times on a %dx%d grid", n, len(c.Days), len(c.Times)))
		}
	case DifferentDay:
		if n > len(c.Days) {
			errs = append(errs, Errorf("groups", g.Name, "%d courses cannot use distinct days out of %d", n, len(c.Days)))
		}
	case SameDaySequenced:
		if n > len(c.Times) {
			errs = append(errs, Errorf("groups", g.Name, "%d courses do not fit in a day of %d times", n, len(c.Times)))
		}
	}

	pinnedDays := lo.FilterMap(g.Courses, func(cs int, _ int) (int, bool) {
		pin := c.Courses[cs].PinSlot
		return c.Slot(pin).Day, pin != NoLimit
	})
	switch g.Relation {
	case AllDifferent, DifferentDay:
		if len(lo.Uniq(pinnedDays)) != len(pinnedDays) {
			errs = append(errs, Errorf("groups", g.Name, "two pinned courses share a day"))
		}
	case SameDaySequenced:
		if len(lo.Uniq(pinnedDays)) > 1 {
			errs = append(errs, Errorf("groups", g.Name, "pinned courses fall on different days"))
		}
	}
	return errs
}

// AllowedRooms returns the rooms a course may be placed in after applying
// its pins and exclusions.
func (c *Config) AllowedRooms(cs Course) []int {
	return lo.FilterMap(c.Rooms, func(r Room, _ int) (int, bool) {
		switch {
		case cs.PinRoom != NoLimit && r.ID != cs.PinRoom:
			return 0, false
		case cs.PinVenue != NoLimit && r.Venue != cs.PinVenue:
			return 0, false
		case lo.Contains(cs.ForbidRooms, r.ID), lo.Contains(cs.ForbidVenues, r.Venue):
			return 0, false
		}
		return r.ID, true
	})
}

func (c *Config) validVenue(v int) bool  { return v >= 0 && v < len(c.Venues) }
func (c *Config) validRoom(r int) bool   { return r >= 0 && r < len(c.Rooms) }
func (c *Config) validPerson(p int) bool { return p >= 0 && p < len(c.People) }
func (c *Config) validCourse(i int) bool { return i >= 0 && i < len(c.Courses) }

// String summarises the grid for log lines.
func (c *Config) String() string {
	return fmt.Sprintf("%d days x %d times, %d rooms, %d people, %d courses", len(c.Days), len(c.Times), len(c.Rooms), len(c.People), len(c.Courses))
}
