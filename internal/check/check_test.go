package check

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/swsched/swsched/internal/fixture"
	"github.com/swsched/swsched/pkg/swsched"
)

func config() *swsched.Config {
	return fixture.Grid(2, 3, "big", "small").
		Venue("annex", "hall").
		Person("anna", swsched.Lead, fixture.Slots("nnnnnf")).
		Person("ben", swsched.Lead, fixture.Community()).
		Person("cleo", swsched.Follow, fixture.Max(1)).
		Person("dora", swsched.Follow).
		Placeholder("missing", swsched.Follow).
		Course("lindy", swsched.Regular, []string{"anna", "ben", "cleo", "dora", "missing"}).
		Course("balboa", swsched.Regular, []string{"anna", "ben", "cleo", "dora"}, fixture.PinSlot(1)).
		Course("jazz", swsched.Solo, []string{"anna", "ben", "cleo"}, fixture.ForbidRooms(2)).
		Course("practice", swsched.Open, nil).
		Group("track", swsched.SameDaySequenced, 0, 1).
		Exclude(1, 3).
		CommunityLimit(1).
		Build()
}

func valid() swsched.Timetable {
	return swsched.Timetable{Entries: []swsched.Entry{
		{Course: 0, Slot: 0, Room: 0, Instructors: []int{0, 2}},
		{Course: 1, Slot: 1, Room: 0, Instructors: []int{0, 3}},
		{Course: 2, Slot: 3, Room: 1, Instructors: []int{0}},
		{Course: 3, Slot: 5, Room: 2},
	}}
}

func rules(vs []Violation) []string {
	return lo.Uniq(lo.Map(vs, func(v Violation, _ int) string { return v.Rule }))
}

func TestCheckAcceptsValidTimetable(t *testing.T) {
	assert.Empty(t, Check(config(), valid()))
}

func TestCheck(t *testing.T) {
	type tc struct {
		Name   string
		Modify func(tt *swsched.Timetable)
		Rules  []string
	}
	for _, tt := range []tc{
		{
			Name:   "missing course",
			Modify: func(tt *swsched.Timetable) { tt.Entries = tt.Entries[:3] },
			Rules:  []string{RulePlacement},
		},
		{
			Name:   "duplicate course",
			Modify: func(tt *swsched.Timetable) { tt.Entries = append(tt.Entries, tt.Entries[3]) },
			Rules:  []string{RulePlacement},
		},
		{
			Name:   "room clash",
			Modify: func(tt *swsched.Timetable) { tt.Entries[3].Slot, tt.Entries[3].Room = 3, 1 },
			Rules:  []string{RuleRoom},
		},
		{
			Name:   "two leads",
			Modify: func(tt *swsched.Timetable) { tt.Entries[0].Instructors = []int{0, 1} },
			Rules:  []string{RuleStaffing},
		},
		{
			Name:   "taught open course",
			Modify: func(tt *swsched.Timetable) { tt.Entries[3].Instructors = []int{3} },
			Rules:  []string{RuleStaffing, RuleEligibility},
		},
		{
			Name:   "double booked",
			Modify: func(tt *swsched.Timetable) { tt.Entries[2].Slot = 1 },
			Rules:  []string{RuleExclusivity},
		},
		{
			Name:   "personal maximum",
			Modify: func(tt *swsched.Timetable) { tt.Entries[2].Instructors = []int{2} },
			Rules:  []string{RuleCap},
		},
		{
			Name: "two venues in a day",
			Modify: func(tt *swsched.Timetable) {
				tt.Entries[3].Instructors = nil
				tt.Entries[2].Slot, tt.Entries[2].Room, tt.Entries[2].Instructors = 2, 2, []int{0}
			},
			Rules: []string{RuleVenue, RulePin},
		},
		{
			Name:   "excluded pair",
			Modify: func(tt *swsched.Timetable) { tt.Entries[1].Instructors = []int{1, 3} },
			Rules:  []string{RuleExclusion},
		},
		{
			Name:   "moved pinned course",
			Modify: func(tt *swsched.Timetable) { tt.Entries[1].Slot, tt.Entries[0].Slot = 2, 1 },
			Rules:  []string{RulePin},
		},
		{
			Name:   "forbidden slot",
			Modify: func(tt *swsched.Timetable) { tt.Entries[2].Slot, tt.Entries[2].Instructors = 5, []int{0} },
			Rules:  []string{RuleAvailable},
		},
		{
			Name:   "community solo",
			Modify: func(tt *swsched.Timetable) { tt.Entries[2].Instructors = []int{1} },
			Rules:  []string{RuleCap},
		},
		{
			Name: "broken sequence",
			Modify: func(tt *swsched.Timetable) {
				tt.Entries[0].Slot = 4
			},
			Rules: []string{RuleGroup},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			timetable := valid()
			tt.Modify(&timetable)
			assert.ElementsMatch(t, tt.Rules, rules(Check(config(), timetable)))
		})
	}
}

func TestCheckAcceptsPlaceholders(t *testing.T) {
	timetable := valid()
	timetable.Entries[0].Instructors = []int{1, 4}
	assert.Empty(t, Check(config(), timetable))
}
