package render

import (
	"strings"
	"time"

	"resume-pdf/internal/dates"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"
)

const Separator = " | "

// Formatter builds the display strings shared by the PDF renderer and the
// HTML preview.
type Formatter struct {
	L *locale.Locale
}

func NewFormatter(l *locale.Locale) Formatter {
	if l == nil {
		l = locale.Default()
	}
	return Formatter{L: l}
}

// Join concatenates the non-empty parts with Separator.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, Separator)
}

// Date shows a parseable date as "mon/YYYY" and anything else verbatim.
func (f Formatter) Date(s string) string {
	if t, ok := dates.Parse(s); ok {
		return dates.FormatMonthYear(t, f.L.Months)
	}
	return strings.TrimSpace(s)
}

// Period describes a date range. An ongoing range with a known start reads
// "‹start› until now"; otherwise whichever bounds are known are shown.
func (f Formatter) Period(start, end string, ongoing bool) string {
	s, e := f.Date(start), f.Date(end)
	p := f.L.Phrases
	switch {
	case ongoing && s != "":
		return s + " " + p.UntilNow
	case s != "" && e != "":
		return s + " " + p.RangeJoiner + " " + e
	case s != "":
		return p.Start + " " + s
	case e != "":
		return p.End + " " + e
	}
	return ""
}

func (f Formatter) Contact(r model.Resume) string {
	license := ""
	switch {
	case r.License != "":
		license = f.L.Phrases.License + " " + r.License
	case r.HasLicense:
		license = f.L.Phrases.HasLicense
	}
	return Join(r.Phone, r.Email, r.City, license)
}

func (f Formatter) Education(e model.Education) string {
	return Join(e.Course, e.School, e.Status, f.Period(e.Start, e.End, f.L.IsInProgress(e.Status)))
}

func (f Formatter) Course(i model.Item) string {
	if i.Course != nil {
		return f.Education(*i.Course)
	}
	return i.Text
}

func (f Formatter) Language(l model.Language) string {
	return Join(l.Name, l.Level)
}

// IsCurrent combines the explicit flag with a "current" status word.
func (f Formatter) IsCurrent(w model.Work) bool {
	return w.Current || f.L.IsCurrent(w.Status)
}

// Role is the line under the company name: title and period.
func (f Formatter) Role(w model.Work) string {
	current := f.IsCurrent(w)
	end := w.End
	if current {
		end = ""
	}
	return Join(w.Role, f.Period(w.Start, end, current))
}

func (f Formatter) Footer(now time.Time) string {
	return f.L.Phrases.GeneratedOn + " " + now.Format(f.L.DateLayout)
}
