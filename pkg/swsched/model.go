package swsched

import (
	"fmt"

	"github.com/samber/lo"
)

// Slot is one (day, time-of-day) teaching period.
type Slot struct {
	Index int
	Day   int
	Time  int
}

type Venue struct {
	ID   int
	Name string
}

type Room struct {
	ID    int
	Name  string
	Venue int
}

// Person is an instructor or a placeholder standing in for a missing one.
// Availability has one entry per slot; placeholders carry none.
type Person struct {
	ID   int
	Name string
	Kind PersonKind
	Role Role
	Tier Tier

	Availability []Level
	// CoursePrefs holds sparse per-course overrides; absent courses are Neutral.
	CoursePrefs map[int]Level
	Ideal       int
	Max         int

	Attend      []int
	CoteachWith []int
}

func (p Person) IsPlaceholder() bool {
	return p.Kind == Placeholder
}

// SlotLevel returns the person's preference for slot s.
func (p Person) SlotLevel(s int) Level {
	if s < 0 || s >= len(p.Availability) {
		return Neutral
	}
	return p.Availability[s]
}

// CourseLevel returns the person's teaching preference for course c.
func (p Person) CourseLevel(c int) Level {
	if l, ok := p.CoursePrefs[c]; ok {
		return l
	}
	return Neutral
}

type Course struct {
	ID       int
	Name     string
	Category Category
	// Eligible is the resolved allow-list of person ids, sorted.
	Eligible []int

	PinSlot      int
	PinRoom      int
	PinVenue     int
	ForbidRooms  []int
	ForbidVenues []int
}

func (c Course) IsEligible(person int) bool {
	return lo.Contains(c.Eligible, person)
}

// Group binds courses with a relational constraint.
type Group struct {
	Name     string
	Relation Relation
	Courses  []int
}

// Pair is an unordered pair of person ids that must never co-teach.
type Pair struct {
	A, B int
}

// SlotBan forbids a person from teaching in a slot.
type SlotBan struct {
	Person int
	Slot   int
}

type Limits struct {
	// CommunityMaxCourses caps the number of courses any community-tier
	// person teaches.
	CommunityMaxCourses int
}

// Config is the immutable description of one scheduling round. It is
// built once by the input layer and shared by pointer; nothing in the
// compiler or solver mutates it.
type Config struct {
	Days    []string
	Times   []string
	Venues  []Venue
	Rooms   []Room
	People  []Person
	Courses []Course
	Groups  []Group

	Exclusions []Pair
	SlotBans   []SlotBan

	// PreferredVenue is the venue whose unused capacity is penalised, or NoLimit.
	PreferredVenue int

	Weights Weights
	Limits  Limits
}

// TimesPerDay returns T.
func (c *Config) TimesPerDay() int {
	return len(c.Times)
}

// NumSlots returns S = days * times.
func (c *Config) NumSlots() int {
	return len(c.Days) * len(c.Times)
}

func (c *Config) Slot(index int) Slot {
	t := c.TimesPerDay()
	return Slot{Index: index, Day: index / t, Time: index % t}
}

func (c *Config) SlotIndex(day, time int) int {
	return day*c.TimesPerDay() + time
}

func (c *Config) SlotName(index int) string {
	s := c.Slot(index)
	return fmt.Sprintf("%s %s", c.Days[s.Day], c.Times[s.Time])
}

// RoomsIn returns the ids of the rooms belonging to venue v.
func (c *Config) RoomsIn(v int) []int {
	return lo.FilterMap(c.Rooms, func(r Room, _ int) (int, bool) {
		return r.ID, r.Venue == v
	})
}

// RealPeople returns the ids of all non-placeholder people.
func (c *Config) RealPeople() []int {
	return lo.FilterMap(c.People, func(p Person, _ int) (int, bool) {
		return p.ID, !p.IsPlaceholder()
	})
}

// PersonByName looks a person up by name.
func (c *Config) PersonByName(name string) (Person, bool) {
	return lo.Find(c.People, func(p Person) bool { return p.Name == name })
}

// CourseByName looks a course up by name.
func (c *Config) CourseByName(name string) (Course, bool) {
	return lo.Find(c.Courses, func(cs Course) bool { return cs.Name == name })
}

// RoomByName looks a room up by name.
func (c *Config) RoomByName(name string) (Room, bool) {
	return lo.Find(c.Rooms, func(r Room) bool { return r.Name == name })
}

// Excluded reports whether a and b must not teach together.
func (c *Config) Excluded(a, b int) bool {
	return lo.SomeBy(c.Exclusions, func(p Pair) bool {
		return (p.A == a && p.B == b) || (p.A == b && p.B == a)
	})
}

// Banned reports whether person p may not teach in slot s, either by an
// explicit ban or a forbidden availability entry.
func (c *Config) Banned(p, s int) bool {
	person := c.People[p]
	if !person.IsPlaceholder() && person.SlotLevel(s) == Forbidden {
		return true
	}
	return lo.Contains(c.SlotBans, SlotBan{Person: p, Slot: s})
}

// Entry is one line of a timetable.
type Entry struct {
	Course      int
	Slot        int
	Room        int
	Instructors []int
}

// Timetable is the externally meaningful result of a solve.
type Timetable struct {
	Entries []Entry
}

// EntryFor returns the entry for course c.
func (t Timetable) EntryFor(c int) (Entry, bool) {
	return lo.Find(t.Entries, func(e Entry) bool { return e.Course == c })
}

// Penalty is the diagnostic breakdown of one objective term.
type Penalty struct {
	Name     string
	Weight   int
	Raw      int64
	Weighted int64
	Causes   []string
}
