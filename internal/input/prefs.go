package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/viper"

	"github.com/swsched/swsched/pkg/swsched"
)

// PreferenceRecord is one row of a preference CSV. List cells are
// separated by semicolons; course preferences are written as
// "course=level".
type PreferenceRecord struct {
	Name    string `csv:"name"`
	Ideal   string `csv:"ideal"`
	Max     string `csv:"max"`
	Slots   string `csv:"slots"`
	Courses string `csv:"courses"`
	Attend  string `csv:"attend"`
	Coteach string `csv:"coteach"`
	Avoid   string `csv:"avoid"`
}

// Preference converts the record, reporting malformed cells by name.
func (r PreferenceRecord) Preference() (Preference, error) {
	p := Preference{
		Name:    strings.TrimSpace(r.Name),
		Slots:   strings.TrimSpace(r.Slots),
		Attend:  splitList(r.Attend),
		Coteach: splitList(r.Coteach),
		Avoid:   splitList(r.Avoid),
	}
	var err error
	if p.Ideal, err = optionalCount(r.Ideal); err != nil {
		return p, swsched.Errorf("preferences.ideal", p.Name, "%v", err)
	}
	if p.Max, err = optionalCount(r.Max); err != nil {
		return p, swsched.Errorf("preferences.max", p.Name, "%v", err)
	}
	for _, item := range splitList(r.Courses) {
		course, level, ok := strings.Cut(item, "=")
		if !ok {
			return p, swsched.Errorf("preferences.courses", p.Name, "%q is not course=level", item)
		}
		var l swsched.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return p, swsched.Errorf("preferences.courses", p.Name, "%v", err)
		}
		if p.Courses == nil {
			p.Courses = make(map[string]swsched.Level)
		}
		p.Courses[strings.TrimSpace(course)] = l
	}
	return p, nil
}

// ReadPreferencesCSV reads preference records from CSV with a header row.
func ReadPreferencesCSV(r io.Reader) ([]Preference, error) {
	var records []PreferenceRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	out := make([]Preference, 0, len(records))
	for _, rec := range records {
		p, err := rec.Preference()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ReadPreferencesYAML reads a document with a top level preferences list.
func ReadPreferencesYAML(r io.Reader) ([]Preference, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	var doc struct {
		Preferences []Preference `mapstructure:"preferences"`
	}
	if err := v.Unmarshal(&doc, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	return doc.Preferences, nil
}

// ReadPreferencesFile picks the reader by extension.
func ReadPreferencesFile(path string) ([]Preference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadPreferencesCSV(f)
	case ".yaml", ".yml":
		return ReadPreferencesYAML(f)
	}
	return nil, fmt.Errorf("preferences %s: unsupported format %q", path, filepath.Ext(path))
}

// WritePreferencesCSV writes preferences in the layout ReadPreferencesCSV
// accepts.
func WritePreferencesCSV(w io.Writer, ps []Preference) error {
	records := make([]PreferenceRecord, 0, len(ps))
	for _, p := range ps {
		rec := PreferenceRecord{
			Name:    p.Name,
			Slots:   p.Slots,
			Attend:  strings.Join(p.Attend, ";"),
			Coteach: strings.Join(p.Coteach, ";"),
			Avoid:   strings.Join(p.Avoid, ";"),
		}
		if p.Ideal != nil {
			rec.Ideal = strconv.Itoa(*p.Ideal)
		}
		if p.Max != nil {
			rec.Max = strconv.Itoa(*p.Max)
		}
		courses := make([]string, 0, len(p.Courses))
		for _, name := range sortedNames(p.Courses) {
			courses = append(courses, name+"="+p.Courses[name].String())
		}
		rec.Courses = strings.Join(courses, ";")
		records = append(records, rec)
	}
	return gocsv.Marshal(&records, w)
}

func optionalCount(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a count", s)
	}
	if n < 0 {
		return nil, fmt.Errorf("%d is negative", n)
	}
	return &n, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
