package swsched

import (
	"fmt"
	"strings"
)

// NoLimit marks an unset ideal or maximum course count, or an unset pin.
const NoLimit = -1

// Role is the instructor category a regular course draws one person from.
type Role int

const (
	Lead Role = iota
	Follow
)

var roleNames = []string{"lead", "follow"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r *Role) UnmarshalText(text []byte) error {
	i, err := parseEnum("role", string(text), roleNames)
	if err != nil {
		return err
	}
	*r = Role(i)
	return nil
}

// Tier separates the core instructor pool from community volunteers.
type Tier int

const (
	Core Tier = iota
	Community
)

var tierNames = []string{"core", "community"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

func (t *Tier) UnmarshalText(text []byte) error {
	i, err := parseEnum("tier", string(text), tierNames)
	if err != nil {
		return err
	}
	*t = Tier(i)
	return nil
}

// Category determines how many instructors a course needs.
type Category int

const (
	// Regular courses need exactly one Lead and one Follow.
	Regular Category = iota
	// Solo courses need exactly one instructor of either role.
	Solo
	// Open courses are unstaffed sessions.
	Open
)

var categoryNames = []string{"regular", "solo", "open"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c *Category) UnmarshalText(text []byte) error {
	i, err := parseEnum("category", string(text), categoryNames)
	if err != nil {
		return err
	}
	*c = Category(i)
	return nil
}

// Level is the ordered preference scale used for slots and courses.
type Level int

const (
	Forbidden Level = iota
	Discouraged
	Neutral
	Preferred
)

var levelNames = []string{"forbidden", "discouraged", "neutral", "preferred"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l *Level) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if len(s) == 1 {
		if lv, ok := LevelFromRune(rune(s[0])); ok {
			*l = lv
			return nil
		}
	}
	i, err := parseEnum("preference level", s, levelNames)
	if err != nil {
		return err
	}
	*l = Level(i)
	return nil
}

// LevelFromRune decodes the compact one-character form used in slot
// preference strings: f/d/n/p or 0-3.
func LevelFromRune(r rune) (Level, bool) {
	switch r {
	case 'f', 'F', '0', 'x', 'X':
		return Forbidden, true
	case 'd', 'D', '1':
		return Discouraged, true
	case 'n', 'N', '2':
		return Neutral, true
	case 'p', 'P', '3':
		return Preferred, true
	}
	return 0, false
}

// PersonKind tags a Person as a real instructor or a placeholder that
// absorbs otherwise unfillable roles.
type PersonKind int

const (
	Real PersonKind = iota
	Placeholder
)

func (k PersonKind) String() string {
	if k == Placeholder {
		return "placeholder"
	}
	return "real"
}

// Relation is the kind of constraint tying a group of courses together.
type Relation int

const (
	// AllDifferent courses use pairwise distinct days and distinct times.
	AllDifferent Relation = iota
	// DifferentDay courses use pairwise distinct days; times may repeat.
	DifferentDay
	// SameDaySequenced courses share a day and a venue and occupy a
	// contiguous block of times.
	SameDaySequenced
)

var relationNames = []string{"all_different", "different_day", "same_day_sequenced"}

func (r Relation) String() string {
	if int(r) < len(relationNames) {
		return relationNames[r]
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

func (r *Relation) UnmarshalText(text []byte) error {
	s := strings.ReplaceAll(strings.ReplaceAll(string(text), "-", "_"), " ", "_")
	i, err := parseEnum("group kind", s, relationNames)
	if err != nil {
		return err
	}
	*r = Relation(i)
	return nil
}

func parseEnum(what, s string, names []string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (want one of %s)", what, s, strings.Join(names, ", "))
}
