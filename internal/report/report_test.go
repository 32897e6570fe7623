package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swsched/swsched/internal/fixture"
	"github.com/swsched/swsched/pkg/swsched"
)

func sample() *Report {
	cfg := fixture.Grid(1, 2, "big").
		Venue("annex", "hall").
		Person("Ann", swsched.Lead).
		Person("Bob", swsched.Follow).
		Course("Lindy", swsched.Regular, []string{"Ann", "Bob"}).
		Course("Practice", swsched.Open, nil).
		Build()
	return &Report{
		Config: cfg,
		Timetable: swsched.Timetable{Entries: []swsched.Entry{
			{Course: 0, Slot: 0, Room: 0, Instructors: []int{0, 1}},
			{Course: 1, Slot: 1, Room: 1},
		}},
		Penalties: []swsched.Penalty{
			{Name: swsched.TermDaysWorked, Weight: 20},
			{Name: swsched.TermSlotNeutral, Weight: 5, Raw: 2, Weighted: 10, Causes: []string{"Ann teaches at neutral slot day1 t1", "Bob teaches at neutral slot day1 t1"}},
		},
		Status:    "optimal",
		Objective: 10,
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	_, err = ParseFormat("html")
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	assert.Equal(t, []Row{
		{Day: "day1", Time: "t1", Venue: "main", Room: "big", Course: "Lindy", Category: "regular", Instructors: "Ann; Bob"},
		{Day: "day1", Time: "t2", Venue: "annex", Room: "hall", Course: "Practice", Category: "open"},
	}, sample().Rows())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sample()))
	out := buf.String()

	assert.Contains(t, out, "status: optimal, objective: 10")
	assert.Regexp(t, `day1\s+t1\s+main\s+big\s+Lindy\s+Ann; Bob`, out)
	assert.Regexp(t, `day1\s+t2\s+annex\s+hall\s+Practice\s+-`, out)
	assert.Regexp(t, `slot_neutral\s+5\s+2\s+10\s+Ann teaches`, out)
}

func TestCSVRoundTrip(t *testing.T) {
	r := sample()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, r))
	assert.True(t, strings.HasPrefix(buf.String(), "day,time,venue,room,course,category,instructors\n"))

	tt, err := ReadCSV(&buf, r.Config)
	require.NoError(t, err)
	assert.Equal(t, r.Timetable, tt)
}

func TestReadCSVUnknownNames(t *testing.T) {
	type tc struct {
		Name string
		Line string
		Want string
	}
	for _, tt := range []tc{
		{Name: "course", Line: "day1,t1,main,big,Balboa,regular,Ann", Want: "Balboa"},
		{Name: "slot", Line: "day9,t1,main,big,Lindy,regular,Ann", Want: "day9 t1"},
		{Name: "room", Line: "day1,t1,main,attic,Lindy,regular,Ann", Want: "attic"},
		{Name: "person", Line: "day1,t1,main,big,Lindy,regular,Ann; Zed", Want: "Zed"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			in := "day,time,venue,room,course,category,instructors\n" + tt.Line + "\n"
			_, err := ReadCSV(strings.NewReader(in), sample().Config)
			var ce *swsched.ConfigError
			require.True(t, errors.As(err, &ce), "%v", err)
			assert.Equal(t, tt.Want, ce.Name)
			assert.Equal(t, "timetable line 2", ce.Field)
		})
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
