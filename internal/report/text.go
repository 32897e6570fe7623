package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText writes aligned timetable and penalty tables.
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if r.Status != "" {
		fmt.Fprintf(tw, "status: %s, objective: %d\n\n", r.Status, r.Objective)
	}
	fmt.Fprintln(tw, "DAY\tTIME\tVENUE\tROOM\tCOURSE\tINSTRUCTORS")
	for _, row := range r.Rows() {
		instructors := row.Instructors
		if instructors == "" {
			instructors = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", row.Day, row.Time, row.Venue, row.Room, row.Course, instructors)
	}

	if len(r.Penalties) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "PENALTY\tWEIGHT\tRAW\tWEIGHTED\tCAUSES")
		for _, p := range r.Penalties {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", p.Name, p.Weight, p.Raw, p.Weighted, strings.Join(p.Causes, "; "))
		}
	}
	return tw.Flush()
}
