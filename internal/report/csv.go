package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/swsched/swsched/pkg/swsched"
)

// WriteCSV writes the timetable rows with a header line.
func WriteCSV(w io.Writer, r *Report) error {
	rows := r.Rows()
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing timetable csv: %w", err)
	}
	return nil
}

// ReadCSV reads a timetable written by WriteCSV and resolves its names
// against cfg. The category and venue columns are informational.
func ReadCSV(r io.Reader, cfg *swsched.Config) (swsched.Timetable, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return swsched.Timetable{}, fmt.Errorf("reading timetable csv: %w", err)
	}

	var tt swsched.Timetable
	for i, row := range rows {
		line := fmt.Sprintf("timetable line %d", i+2)
		course, ok := cfg.CourseByName(row.Course)
		if !ok {
			return tt, swsched.Errorf(line, row.Course, "unknown course")
		}
		slot, ok := slotByName(cfg, row.Day, row.Time)
		if !ok {
			return tt, swsched.Errorf(line, row.Day+" "+row.Time, "unknown slot")
		}
		room, ok := cfg.RoomByName(row.Room)
		if !ok {
			return tt, swsched.Errorf(line, row.Room, "unknown room")
		}
		e := swsched.Entry{Course: course.ID, Slot: slot, Room: room.ID}
		for _, name := range strings.Split(row.Instructors, ";") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			p, ok := cfg.PersonByName(name)
			if !ok {
				return tt, swsched.Errorf(line, name, "unknown person")
			}
			e.Instructors = append(e.Instructors, p.ID)
		}
		tt.Entries = append(tt.Entries, e)
	}
	return tt, nil
}

func slotByName(cfg *swsched.Config, day, time string) (int, bool) {
	for d, dn := range cfg.Days {
		if dn != day {
			continue
		}
		for t, tn := range cfg.Times {
			if tn == time {
				return cfg.SlotIndex(d, t), true
			}
		}
	}
	return 0, false
}
