// Package report renders a solved timetable and its penalty breakdown as
// text, CSV or PDF, and reads timetable CSV back for re-checking.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/swsched/swsched/pkg/swsched"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, csv or pdf)", s)
}

// Report is everything a rendered timetable shows.
type Report struct {
	Config    *swsched.Config
	Timetable swsched.Timetable
	Penalties []swsched.Penalty
	Status    string
	Objective int
}

// Row is one timetable line with every id replaced by its name.
type Row struct {
	Day         string `csv:"day"`
	Time        string `csv:"time"`
	Venue       string `csv:"venue"`
	Room        string `csv:"room"`
	Course      string `csv:"course"`
	Category    string `csv:"category"`
	Instructors string `csv:"instructors"`
}

// Rows lists the timetable in slot and room order.
func (r *Report) Rows() []Row {
	cfg := r.Config
	return lo.Map(r.Timetable.Entries, func(e swsched.Entry, _ int) Row {
		slot := cfg.Slot(e.Slot)
		room := cfg.Rooms[e.Room]
		course := cfg.Courses[e.Course]
		return Row{
			Day:         cfg.Days[slot.Day],
			Time:        cfg.Times[slot.Time],
			Venue:       cfg.Venues[room.Venue].Name,
			Room:        room.Name,
			Course:      course.Name,
			Category:    course.Category.String(),
			Instructors: strings.Join(lo.Map(e.Instructors, func(t int, _ int) string { return cfg.People[t].Name }), instructorSep),
		}
	})
}

const instructorSep = "; "

// Write renders the report in the given format.
func Write(w io.Writer, f Format, r *Report) error {
	switch f {
	case FormatText:
		return WriteText(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	}
	return fmt.Errorf("unknown report format %q", f)
}
