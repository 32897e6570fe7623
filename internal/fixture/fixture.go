// Package fixture builds small configurations for tests.
package fixture

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/swsched/swsched/pkg/swsched"
)

type Builder struct {
	cfg *swsched.Config
}

// Grid starts a configuration of days x times slots with one venue,
// "main", holding the given rooms.
func Grid(days, times int, rooms ...string) *Builder {
	cfg := &swsched.Config{
		PreferredVenue: swsched.NoLimit,
		Weights:        swsched.DefaultWeights(),
		Limits:         swsched.Limits{CommunityMaxCourses: swsched.NoLimit},
	}
	for d := 0; d < days; d++ {
		cfg.Days = append(cfg.Days, fmt.Sprintf("day%d", d+1))
	}
	for t := 0; t < times; t++ {
		cfg.Times = append(cfg.Times, fmt.Sprintf("t%d", t+1))
	}
	b := &Builder{cfg: cfg}
	return b.Venue("main", rooms...)
}

func (b *Builder) Venue(name string, rooms ...string) *Builder {
	v := len(b.cfg.Venues)
	b.cfg.Venues = append(b.cfg.Venues, swsched.Venue{ID: v, Name: name})
	for _, r := range rooms {
		b.cfg.Rooms = append(b.cfg.Rooms, swsched.Room{ID: len(b.cfg.Rooms), Name: r, Venue: v})
	}
	return b
}

type PersonOption func(p *swsched.Person)

func Ideal(n int) PersonOption {
	return func(p *swsched.Person) { p.Ideal = n }
}

func Max(n int) PersonOption {
	return func(p *swsched.Person) { p.Max = n }
}

func Community() PersonOption {
	return func(p *swsched.Person) { p.Tier = swsched.Community }
}

// Slots sets availability from the compact f/d/n/p form.
func Slots(levels string) PersonOption {
	return func(p *swsched.Person) {
		p.Availability = lo.Map([]rune(levels), func(r rune, _ int) swsched.Level {
			l, _ := swsched.LevelFromRune(r)
			return l
		})
	}
}

func Prefers(course int, l swsched.Level) PersonOption {
	return func(p *swsched.Person) {
		if p.CoursePrefs == nil {
			p.CoursePrefs = make(map[int]swsched.Level)
		}
		p.CoursePrefs[course] = l
	}
}

func Attends(courses ...int) PersonOption {
	return func(p *swsched.Person) { p.Attend = append(p.Attend, courses...) }
}

func CoteachesWith(people ...int) PersonOption {
	return func(p *swsched.Person) { p.CoteachWith = append(p.CoteachWith, people...) }
}

// Person adds a real person who is neutral about every slot.
func (b *Builder) Person(name string, role swsched.Role, options ...PersonOption) *Builder {
	p := swsched.Person{
		ID:           len(b.cfg.People),
		Name:         name,
		Role:         role,
		Availability: lo.Times(b.cfg.NumSlots(), func(int) swsched.Level { return swsched.Neutral }),
		Ideal:        swsched.NoLimit,
		Max:          swsched.NoLimit,
	}
	for _, option := range options {
		option(&p)
	}
	b.cfg.People = append(b.cfg.People, p)
	return b
}

func (b *Builder) Placeholder(name string, role swsched.Role) *Builder {
	b.cfg.People = append(b.cfg.People, swsched.Person{
		ID:    len(b.cfg.People),
		Name:  name,
		Kind:  swsched.Placeholder,
		Role:  role,
		Ideal: swsched.NoLimit,
		Max:   swsched.NoLimit,
	})
	return b
}

type CourseOption func(c *swsched.Course)

func PinSlot(s int) CourseOption {
	return func(c *swsched.Course) { c.PinSlot = s }
}

func PinRoom(r int) CourseOption {
	return func(c *swsched.Course) { c.PinRoom = r }
}

func PinVenue(v int) CourseOption {
	return func(c *swsched.Course) { c.PinVenue = v }
}

func ForbidRooms(rs ...int) CourseOption {
	return func(c *swsched.Course) { c.ForbidRooms = append(c.ForbidRooms, rs...) }
}

// Course adds a course taught by the named people. Names must already be
// known to the builder.
func (b *Builder) Course(name string, category swsched.Category, teachers []string, options ...CourseOption) *Builder {
	c := swsched.Course{
		ID:       len(b.cfg.Courses),
		Name:     name,
		Category: category,
		Eligible: lo.Map(teachers, func(n string, _ int) int {
			p, ok := b.cfg.PersonByName(n)
			if !ok {
				panic(fmt.Sprintf("fixture: unknown person %q", n))
			}
			return p.ID
		}),
		PinSlot:  swsched.NoLimit,
		PinRoom:  swsched.NoLimit,
		PinVenue: swsched.NoLimit,
	}
	for _, option := range options {
		option(&c)
	}
	b.cfg.Courses = append(b.cfg.Courses, c)
	return b
}

func (b *Builder) Group(name string, relation swsched.Relation, courses ...int) *Builder {
	b.cfg.Groups = append(b.cfg.Groups, swsched.Group{Name: name, Relation: relation, Courses: courses})
	return b
}

func (b *Builder) Exclude(a, c int) *Builder {
	b.cfg.Exclusions = append(b.cfg.Exclusions, swsched.Pair{A: a, B: c})
	return b
}

func (b *Builder) Ban(person, slot int) *Builder {
	b.cfg.SlotBans = append(b.cfg.SlotBans, swsched.SlotBan{Person: person, Slot: slot})
	return b
}

// Only keeps the named penalty terms, with their default weights.
func (b *Builder) Only(terms ...string) *Builder {
	def := swsched.DefaultWeights()
	w := swsched.Weights{}
	for _, t := range terms {
		w.Set(t, def.Of(t))
	}
	b.cfg.Weights = w
	return b
}

func (b *Builder) Weights(w swsched.Weights) *Builder {
	b.cfg.Weights = w
	return b
}

func (b *Builder) PreferVenue(v int) *Builder {
	b.cfg.PreferredVenue = v
	return b
}

func (b *Builder) CommunityLimit(n int) *Builder {
	b.cfg.Limits.CommunityMaxCourses = n
	return b
}

func (b *Builder) Build() *swsched.Config {
	return b.cfg
}
