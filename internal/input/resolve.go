package input

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/swsched/swsched/pkg/swsched"
)

// names maps names to dense ids. Lookups ignore case, since map keys read
// from YAML are lowercased.
type names map[string]int

func index(ns []string) (names, []string) {
	out := make(names, len(ns))
	var dups []string
	for i, n := range ns {
		k := strings.ToLower(strings.TrimSpace(n))
		if _, ok := out[k]; ok {
			dups = append(dups, n)
			continue
		}
		out[k] = i
	}
	return out, dups
}

func (n names) get(name string) (int, bool) {
	id, ok := n[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// resolver accumulates unknown-name errors so a file reports all of them
// at once.
type resolver struct {
	f    *File
	cfg  *swsched.Config
	errs []error

	venues, rooms, people, courses names
	prefs                          map[int]Preference
}

func (r *resolver) fail(field, name, format string, args ...any) {
	r.errs = append(r.errs, swsched.Errorf(field, name, format, args...))
}

func (r *resolver) lookup(n names, field, owner, what, name string) (int, bool) {
	id, ok := n.get(name)
	if !ok {
		r.fail(field, owner, "unknown %s %q", what, name)
	}
	return id, ok
}

func (r *resolver) lookupAll(n names, field, owner, what string, ns []string) []int {
	return lo.FilterMap(ns, func(name string, _ int) (int, bool) {
		return r.lookup(n, field, owner, what, name)
	})
}

func resolve(f *File) (*swsched.Config, error) {
	r := &resolver{
		f: f,
		cfg: &swsched.Config{
			Days:           append([]string(nil), f.Days...),
			Times:          append([]string(nil), f.Times...),
			PreferredVenue: swsched.NoLimit,
			Weights:        f.Weights,
			Limits:         swsched.Limits{CommunityMaxCourses: f.Limits.CommunityMaxCourses},
		},
		prefs: make(map[int]Preference),
	}
	r.grid()
	r.staff()
	r.preferences()
	r.courseList()
	r.allowLists()
	r.groupList()
	r.exclusionList()
	r.bans()
	r.personalWishes()
	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}
	return r.cfg, nil
}

func (r *resolver) grid() {
	var venueNames, roomNames []string
	for vi, v := range r.f.Venues {
		venueNames = append(venueNames, v.Name)
		r.cfg.Venues = append(r.cfg.Venues, swsched.Venue{ID: vi, Name: v.Name})
		for _, room := range v.Rooms {
			roomNames = append(roomNames, room)
			r.cfg.Rooms = append(r.cfg.Rooms, swsched.Room{ID: len(r.cfg.Rooms), Name: room, Venue: vi})
		}
	}
	var dups []string
	if r.venues, dups = index(venueNames); len(dups) > 0 {
		r.fail("venues", dups[0], "duplicate venue")
	}
	if r.rooms, dups = index(roomNames); len(dups) > 0 {
		r.fail("venues.rooms", dups[0], "duplicate room")
	}
	if r.f.PreferredVenue != "" {
		if v, ok := r.lookup(r.venues, "preferred_venue", "", "venue", r.f.PreferredVenue); ok {
			r.cfg.PreferredVenue = v
		}
	}
}

func (r *resolver) staff() {
	var dups []string
	if r.people, dups = index(lo.Map(r.f.People, func(p PersonSpec, _ int) string { return p.Name })); len(dups) > 0 {
		r.fail("people", dups[0], "duplicate person")
	}
	slots := r.cfg.NumSlots()
	for i, spec := range r.f.People {
		p := swsched.Person{
			ID:    i,
			Name:  spec.Name,
			Role:  spec.Role,
			Tier:  spec.Tier,
			Ideal: swsched.NoLimit,
			Max:   swsched.NoLimit,
		}
		if spec.Placeholder {
			p.Kind = swsched.Placeholder
		} else {
			p.Availability = lo.Times(slots, func(int) swsched.Level { return swsched.Neutral })
		}
		r.cfg.People = append(r.cfg.People, p)
	}
}

func (r *resolver) preferences() {
	for _, pref := range r.f.Preferences {
		id, ok := r.lookup(r.people, "preferences", pref.Name, "person", pref.Name)
		if !ok {
			continue
		}
		if _, dup := r.prefs[id]; dup {
			r.fail("preferences", pref.Name, "preferences given twice")
			continue
		}
		if r.cfg.People[id].IsPlaceholder() {
			r.fail("preferences", pref.Name, "placeholders take no preferences")
			continue
		}
		r.prefs[id] = pref

		p := &r.cfg.People[id]
		if pref.Ideal != nil {
			p.Ideal = *pref.Ideal
		}
		if pref.Max != nil {
			p.Max = *pref.Max
		}
		if pref.Slots != "" {
			levels, err := ParseSlots(pref.Slots)
			if err != nil {
				r.fail("preferences.slots", pref.Name, "%v", err)
				continue
			}
			p.Availability = levels
		}
	}
}

func (r *resolver) courseList() {
	var dups []string
	if r.courses, dups = index(lo.Map(r.f.Courses, func(c CourseSpec, _ int) string { return c.Name })); len(dups) > 0 {
		r.fail("courses", dups[0], "duplicate course")
	}
	for i, spec := range r.f.Courses {
		c := swsched.Course{
			ID:       i,
			Name:     spec.Name,
			Category: spec.Category,
			PinSlot:  swsched.NoLimit,
			PinRoom:  swsched.NoLimit,
			PinVenue: swsched.NoLimit,
		}
		if spec.Slot != "" {
			if s, ok := r.slot(spec.Slot); ok {
				c.PinSlot = s
			} else {
				r.fail("courses.slot", spec.Name, "unknown slot %q", spec.Slot)
			}
		}
		if spec.Room != "" {
			if room, ok := r.lookup(r.rooms, "courses.room", spec.Name, "room", spec.Room); ok {
				c.PinRoom = room
			}
		}
		if spec.Venue != "" {
			if v, ok := r.lookup(r.venues, "courses.venue", spec.Name, "venue", spec.Venue); ok {
				c.PinVenue = v
			}
		}
		c.ForbidRooms = r.lookupAll(r.rooms, "courses.forbid_rooms", spec.Name, "room", spec.ForbidRooms)
		c.ForbidVenues = r.lookupAll(r.venues, "courses.forbid_venues", spec.Name, "venue", spec.ForbidVenues)
		r.cfg.Courses = append(r.cfg.Courses, c)
	}
}

// allowLists derives who may teach each course: the listed teachers or
// every real person, minus opt-outs and anyone who forbade the course,
// plus the placeholders that cover it. Open courses have no staff.
func (r *resolver) allowLists() {
	standIns := make(map[int][]int)
	for id, spec := range r.f.People {
		if !spec.Placeholder {
			continue
		}
		if len(spec.Courses) == 0 {
			for c := range r.cfg.Courses {
				standIns[c] = append(standIns[c], id)
			}
			continue
		}
		for _, c := range r.lookupAll(r.courses, "people.courses", spec.Name, "course", spec.Courses) {
			standIns[c] = append(standIns[c], id)
		}
	}

	for i, spec := range r.f.Courses {
		c := &r.cfg.Courses[i]
		if c.Category == swsched.Open {
			if len(spec.Teachers) > 0 {
				r.fail("courses.teachers", spec.Name, "open courses take no teachers")
			}
			continue
		}
		eligible := r.cfg.RealPeople()
		if len(spec.Teachers) > 0 {
			eligible = r.lookupAll(r.people, "courses.teachers", spec.Name, "person", spec.Teachers)
		}
		excluded := r.lookupAll(r.people, "courses.exclude", spec.Name, "person", spec.Exclude)
		eligible = lo.Filter(eligible, func(t int, _ int) bool {
			return !lo.Contains(excluded, t) && r.courseLevel(t, spec.Name) != swsched.Forbidden
		})
		eligible = append(eligible, standIns[i]...)
		sort.Ints(eligible)
		c.Eligible = lo.Uniq(eligible)
	}
}

func (r *resolver) courseLevel(person int, course string) swsched.Level {
	for name, l := range r.prefs[person].Courses {
		if strings.EqualFold(name, course) {
			return l
		}
	}
	return swsched.Neutral
}

func (r *resolver) groupList() {
	for _, g := range r.f.Groups {
		r.cfg.Groups = append(r.cfg.Groups, swsched.Group{
			Name:     g.Name,
			Relation: g.Kind,
			Courses:  r.lookupAll(r.courses, "groups.courses", g.Name, "course", g.Courses),
		})
	}
}

func (r *resolver) exclusionList() {
	seen := make(map[swsched.Pair]bool)
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		p := swsched.Pair{A: a, B: b}
		if !seen[p] {
			seen[p] = true
			r.cfg.Exclusions = append(r.cfg.Exclusions, p)
		}
	}
	for _, pair := range r.f.Exclusions {
		ids := r.lookupAll(r.people, "exclusions", strings.Join(pair, ", "), "person", pair)
		if len(ids) == 2 {
			add(ids[0], ids[1])
		}
	}
	for id := range r.cfg.People {
		pref, ok := r.prefs[id]
		if !ok {
			continue
		}
		for _, other := range r.lookupAll(r.people, "preferences.avoid", pref.Name, "person", pref.Avoid) {
			add(id, other)
		}
	}
}

func (r *resolver) bans() {
	for _, b := range r.f.Forbidden {
		p, ok := r.lookup(r.people, "forbidden", b.Person, "person", b.Person)
		if !ok {
			continue
		}
		s, ok := r.slot(b.Slot)
		if !ok {
			r.fail("forbidden", b.Person, "unknown slot %q", b.Slot)
			continue
		}
		r.cfg.SlotBans = append(r.cfg.SlotBans, swsched.SlotBan{Person: p, Slot: s})
	}
}

func (r *resolver) personalWishes() {
	for id, pref := range r.prefs {
		p := &r.cfg.People[id]
		p.Attend = r.lookupAll(r.courses, "preferences.attend", pref.Name, "course", pref.Attend)
		p.CoteachWith = r.lookupAll(r.people, "preferences.coteach", pref.Name, "person", pref.Coteach)
		for _, name := range sortedNames(pref.Courses) {
			if c, ok := r.lookup(r.courses, "preferences.courses", pref.Name, "course", name); ok {
				if p.CoursePrefs == nil {
					p.CoursePrefs = make(map[int]swsched.Level)
				}
				p.CoursePrefs[c] = pref.Courses[name]
			}
		}
	}
}

// slot parses "<day> <time>" against the configured names.
func (r *resolver) slot(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for d, day := range r.cfg.Days {
		rest, ok := cutPrefixFold(name, day)
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		for t, tm := range r.cfg.Times {
			if strings.EqualFold(rest, tm) {
				return r.cfg.SlotIndex(d, t), true
			}
		}
	}
	return 0, false
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// ParseSlots reads a slot preference string. Either one character per
// slot ("ppnndf") or whitespace or comma separated level names.
func ParseSlots(s string) ([]swsched.Level, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == ',' })
	if len(fields) == 1 {
		var l swsched.Level
		if len(fields[0]) > 1 && l.UnmarshalText([]byte(fields[0])) == nil {
			return []swsched.Level{l}, nil
		}
		fields = strings.Split(fields[0], "")
	}
	out := make([]swsched.Level, len(fields))
	for i, f := range fields {
		if err := out[i].UnmarshalText([]byte(f)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sortedNames[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
