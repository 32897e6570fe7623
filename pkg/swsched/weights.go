package swsched

// Names of the penalty terms. They double as keys in the weights section of
// a configuration file and in penalty breakdowns.
const (
	TermUtilization       = "utilization"
	TermDaysWorked        = "days_worked"
	TermSplitDay          = "split_day"
	TermSlotDiscouraged   = "slot_discouraged"
	TermSlotNeutral       = "slot_neutral"
	TermCourseDiscouraged = "course_discouraged"
	TermCourseNeutral     = "course_neutral"
	TermVenueBalance      = "venue_balance"
	TermAttendance        = "attendance"
	TermCoteach           = "coteach"
	TermPlaceholder       = "placeholder"
)

// Weights scales each penalty term. A zero weight removes the term from
// the compiled model altogether.
type Weights struct {
	Utilization       int `mapstructure:"utilization" validate:"gte=0"`
	DaysWorked        int `mapstructure:"days_worked" validate:"gte=0"`
	SplitDay          int `mapstructure:"split_day" validate:"gte=0"`
	SlotDiscouraged   int `mapstructure:"slot_discouraged" validate:"gte=0"`
	SlotNeutral       int `mapstructure:"slot_neutral" validate:"gte=0"`
	CourseDiscouraged int `mapstructure:"course_discouraged" validate:"gte=0"`
	CourseNeutral     int `mapstructure:"course_neutral" validate:"gte=0"`
	VenueBalance      int `mapstructure:"venue_balance" validate:"gte=0"`
	Attendance        int `mapstructure:"attendance" validate:"gte=0"`
	Coteach           int `mapstructure:"coteach" validate:"gte=0"`
	Placeholder       int `mapstructure:"placeholder" validate:"gte=0"`
}

// DefaultWeights returns the weights used when a configuration does not
// override them.
func DefaultWeights() Weights {
	return Weights{
		Utilization:       10,
		DaysWorked:        20,
		SplitDay:          30,
		SlotDiscouraged:   15,
		SlotNeutral:       5,
		CourseDiscouraged: 15,
		CourseNeutral:     5,
		VenueBalance:      1,
		Attendance:        25,
		Coteach:           10,
		Placeholder:       10000,
	}
}

// Of returns the weight of the named term, or 0 for unknown names.
func (w Weights) Of(name string) int {
	switch name {
	case TermUtilization:
		return w.Utilization
	case TermDaysWorked:
		return w.DaysWorked
	case TermSplitDay:
		return w.SplitDay
	case TermSlotDiscouraged:
		return w.SlotDiscouraged
	case TermSlotNeutral:
		return w.SlotNeutral
	case TermCourseDiscouraged:
		return w.CourseDiscouraged
	case TermCourseNeutral:
		return w.CourseNeutral
	case TermVenueBalance:
		return w.VenueBalance
	case TermAttendance:
		return w.Attendance
	case TermCoteach:
		return w.Coteach
	case TermPlaceholder:
		return w.Placeholder
	}
	return 0
}

// Set changes the weight of the named term. It reports false for unknown
// names.
func (w *Weights) Set(name string, weight int) bool {
	switch name {
	case TermUtilization:
		w.Utilization = weight
	case TermDaysWorked:
		w.DaysWorked = weight
	case TermSplitDay:
		w.SplitDay = weight
	case TermSlotDiscouraged:
		w.SlotDiscouraged = weight
	case TermSlotNeutral:
		w.SlotNeutral = weight
	case TermCourseDiscouraged:
		w.CourseDiscouraged = weight
	case TermCourseNeutral:
		w.CourseNeutral = weight
	case TermVenueBalance:
		w.VenueBalance = weight
	case TermAttendance:
		w.Attendance = weight
	case TermCoteach:
		w.Coteach = weight
	case TermPlaceholder:
		w.Placeholder = weight
	default:
		return false
	}
	return true
}

// Terms lists the penalty term names in reporting order.
func Terms() []string {
	return []string{
		TermUtilization, TermDaysWorked, TermSplitDay,
		TermSlotDiscouraged, TermSlotNeutral,
		TermCourseDiscouraged, TermCourseNeutral,
		TermVenueBalance, TermAttendance, TermCoteach, TermPlaceholder,
	}
}
