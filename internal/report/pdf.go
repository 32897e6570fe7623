package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const pageWidth = 277.0

// WritePDF renders the timetable and the penalty breakdown as landscape
// A4 tables.
func WritePDF(w io.Writer, r *Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetTitle("Timetable", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "TIMETABLE", "", 1, "C", false, 0, "")
	if r.Status != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("status %s, objective %d", r.Status, r.Objective), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	rows := r.Rows()
	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = []string{row.Day, row.Time, row.Venue, row.Room, row.Course, row.Instructors}
	}
	table(pdf, []string{"Day", "Time", "Venue", "Room", "Course", "Instructors"}, []float64{1, 1, 1, 1, 1.5, 2.5}, body)

	if len(r.Penalties) > 0 {
		pdf.Ln(8)
		body = body[:0]
		for _, p := range r.Penalties {
			body = append(body, []string{
				p.Name,
				strconv.Itoa(p.Weight),
				strconv.FormatInt(p.Raw, 10),
				strconv.FormatInt(p.Weighted, 10),
				strings.Join(p.Causes, "; "),
			})
		}
		table(pdf, []string{"Penalty", "Weight", "Raw", "Weighted", "Causes"}, []float64{1.5, 0.7, 0.7, 0.8, 4.3}, body)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// table draws a bordered table. Widths are relative and scaled to the page.
func table(pdf *gofpdf.Fpdf, headers []string, widths []float64, rows [][]string) {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	cols := make([]float64, len(widths))
	for i, w := range widths {
		cols[i] = pageWidth * w / total
	}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(cols[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, row := range rows {
		for i, cell := range row {
			text := tr(cell)
			if limit := int(cols[i] / 1.9); len(text) > limit && limit > 3 {
				text = text[:limit-3] + "..."
			}
			pdf.CellFormat(cols[i], 7, text, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
