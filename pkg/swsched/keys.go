package swsched

import "fmt"

// Kind names a family of compiled variables.
type Kind string

const (
	KindPlacement       Kind = "placement"
	KindTeaches         Kind = "teaches"
	KindActiveAt        Kind = "active_at"
	KindCourseDay       Kind = "course_day"
	KindCourseTime      Kind = "course_time"
	KindCourseVenue     Kind = "course_venue"
	KindTeacherBusy     Kind = "teacher_busy"
	KindOccupied        Kind = "teacher_occupied"
	KindOccupiedDay     Kind = "teacher_occupied_day"
	KindVenueOccupied   Kind = "venue_occupied"
	KindLoad            Kind = "load"
	KindDaysWorked      Kind = "days_worked"
	KindObjective       Kind = "objective"
	unusedIndex              = -1
)

// Key addresses one extracted variable value by kind and up to three
// dense indices. Unused indices are -1.
type Key struct {
	Kind    Kind
	A, B, C int
}

func Key1(k Kind, a int) Key       { return Key{Kind: k, A: a, B: unusedIndex, C: unusedIndex} }
func Key2(k Kind, a, b int) Key    { return Key{Kind: k, A: a, B: b, C: unusedIndex} }
func Key3(k Kind, a, b, c int) Key { return Key{Kind: k, A: a, B: b, C: c} }

func (k Key) String() string {
	switch {
	case k.B == unusedIndex:
		return fmt.Sprintf("%s[%d]", k.Kind, k.A)
	case k.C == unusedIndex:
		return fmt.Sprintf("%s[%d,%d]", k.Kind, k.A, k.B)
	}
	return fmt.Sprintf("%s[%d,%d,%d]", k.Kind, k.A, k.B, k.C)
}
