package compiler

import (
	"sort"

	"github.com/swsched/swsched/internal/sat"
	"github.com/swsched/swsched/pkg/swsched"
)

// Values reads every primary and channelled variable back from an
// assignment.
func (c *Compiled) Values(a *sat.Assignment) map[swsched.Key]int {
	var (
		v   = c.vars
		cfg = c.Config
		out = make(map[swsched.Key]int)
	)
	for ci := range cfg.Courses {
		for s, row := range v.placement[ci] {
			for r, l := range row {
				out[swsched.Key3(swsched.KindPlacement, ci, s, r)] = asInt(a.Bool(l))
			}
		}
		out[swsched.Key1(swsched.KindActiveAt, ci)] = a.Int(v.activeAt[ci])
		out[swsched.Key1(swsched.KindCourseDay, ci)] = a.Int(v.courseDay[ci])
		out[swsched.Key1(swsched.KindCourseTime, ci)] = a.Int(v.courseTime[ci])
		out[swsched.Key1(swsched.KindCourseVenue, ci)] = a.Int(v.courseVenue[ci])
	}
	for t := range cfg.People {
		for ci := range cfg.Courses {
			out[swsched.Key2(swsched.KindTeaches, t, ci)] = asInt(a.Bool(v.teaches[t][ci]))
		}
		for s := range v.busy[t] {
			for ci, l := range v.busy[t][s] {
				out[swsched.Key3(swsched.KindTeacherBusy, t, s, ci)] = asInt(a.Bool(l))
			}
			out[swsched.Key2(swsched.KindOccupied, t, s)] = asInt(a.Bool(v.occupied[t][s]))
		}
		days := 0
		for d, l := range v.occupiedDay[t] {
			on := asInt(a.Bool(l))
			days += on
			out[swsched.Key2(swsched.KindOccupiedDay, t, d)] = on
		}
		out[swsched.Key1(swsched.KindDaysWorked, t)] = days
		for ven := range v.venueOccupied[t] {
			for d, l := range v.venueOccupied[t][ven] {
				out[swsched.Key3(swsched.KindVenueOccupied, t, ven, d)] = asInt(a.Bool(l))
			}
		}
		out[swsched.Key1(swsched.KindLoad, t)] = a.Int(v.load[t])
	}
	out[swsched.Key1(swsched.KindObjective, 0)] = a.Linear(c.objective)
	return out
}

// Timetable builds the timetable described by an assignment, ordered by
// slot and room.
func (c *Compiled) Timetable(a *sat.Assignment) swsched.Timetable {
	var tt swsched.Timetable
	for ci, course := range c.Config.Courses {
		e := swsched.Entry{Course: ci, Slot: a.Int(c.vars.activeAt[ci]), Room: swsched.NoLimit}
		for r := range c.Config.Rooms {
			if a.Bool(c.vars.placement[ci][e.Slot][r]) {
				e.Room = r
				break
			}
		}
		for t := range c.Config.People {
			if course.IsEligible(t) && a.Bool(c.vars.teaches[t][ci]) {
				e.Instructors = append(e.Instructors, t)
			}
		}
		tt.Entries = append(tt.Entries, e)
	}
	sort.SliceStable(tt.Entries, func(i, j int) bool {
		x, y := tt.Entries[i], tt.Entries[j]
		if x.Slot != y.Slot {
			return x.Slot < y.Slot
		}
		return x.Room < y.Room
	})
	return tt
}

func asInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
