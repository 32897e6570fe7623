// Package input loads a timetable configuration file and the instructors'
// preference records, and resolves them into a swsched.Config.
package input

import (
	"github.com/swsched/swsched/pkg/swsched"
)

// DefaultCommunityMaxCourses is the cap applied to community instructors
// when the file leaves limits.community_max_courses unset.
const DefaultCommunityMaxCourses = 2

// File mirrors the configuration file. Everything is referenced by name.
type File struct {
	Days           []string     `mapstructure:"days" validate:"required,min=1,unique,dive,required"`
	Times          []string     `mapstructure:"times" validate:"required,min=1,unique,dive,required"`
	Venues         []VenueSpec  `mapstructure:"venues" validate:"required,min=1,dive"`
	PreferredVenue string       `mapstructure:"preferred_venue"`
	People         []PersonSpec `mapstructure:"people" validate:"dive"`
	Courses        []CourseSpec `mapstructure:"courses" validate:"required,min=1,dive"`
	Groups         []GroupSpec  `mapstructure:"groups" validate:"dive"`
	Exclusions     [][]string   `mapstructure:"exclusions" validate:"dive,len=2,dive,required"`
	Forbidden      []BanSpec    `mapstructure:"forbidden" validate:"dive"`

	Weights swsched.Weights `mapstructure:"weights"`
	Limits  LimitsSpec      `mapstructure:"limits"`

	Preferences     []Preference `mapstructure:"preferences" validate:"dive"`
	PreferencesFile string       `mapstructure:"preferences_file"`
}

type VenueSpec struct {
	Name  string   `mapstructure:"name" validate:"required"`
	Rooms []string `mapstructure:"rooms" validate:"required,min=1,unique,dive,required"`
}

type PersonSpec struct {
	Name        string       `mapstructure:"name" validate:"required"`
	Role        swsched.Role `mapstructure:"role"`
	Tier        swsched.Tier `mapstructure:"tier"`
	Placeholder bool         `mapstructure:"placeholder"`
	// Courses limits the courses a placeholder may stand in on. Empty
	// means every staffed course.
	Courses []string `mapstructure:"courses"`
}

type CourseSpec struct {
	Name     string           `mapstructure:"name" validate:"required"`
	Category swsched.Category `mapstructure:"category"`
	// Teachers replaces the default allow-list of every real person.
	Teachers []string `mapstructure:"teachers"`
	// Exclude removes people from the allow-list.
	Exclude []string `mapstructure:"exclude"`

	Slot         string   `mapstructure:"slot"`
	Room         string   `mapstructure:"room"`
	Venue        string   `mapstructure:"venue"`
	ForbidRooms  []string `mapstructure:"forbid_rooms"`
	ForbidVenues []string `mapstructure:"forbid_venues"`
}

type GroupSpec struct {
	Name    string           `mapstructure:"name" validate:"required"`
	Kind    swsched.Relation `mapstructure:"kind"`
	Courses []string         `mapstructure:"courses" validate:"required,min=1,dive,required"`
}

type BanSpec struct {
	Person string `mapstructure:"person" validate:"required"`
	Slot   string `mapstructure:"slot" validate:"required"`
}

type LimitsSpec struct {
	CommunityMaxCourses int `mapstructure:"community_max_courses" validate:"gte=-1"`
}

// Preference is one instructor's wishes. Ideal and Max are unset when nil.
type Preference struct {
	Name    string                   `mapstructure:"name" validate:"required"`
	Ideal   *int                     `mapstructure:"ideal" validate:"omitempty,gte=0"`
	Max     *int                     `mapstructure:"max" validate:"omitempty,gte=0"`
	Slots   string                   `mapstructure:"slots"`
	Courses map[string]swsched.Level `mapstructure:"courses"`
	Attend  []string                 `mapstructure:"attend"`
	Coteach []string                 `mapstructure:"coteach"`
	Avoid   []string                 `mapstructure:"avoid"`
}
