// Package preview renders the résumé as a standalone HTML page with the same
// text as the PDF. The chrome engine prints this page.
package preview

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"resume-pdf/internal/model"
	"resume-pdf/internal/render"
)

//go:embed resume.html.tmpl
var pageTemplate string

var tpl = template.Must(template.New("resume").Parse(pageTemplate))

type View struct {
	Lang     string
	Name     string
	Contact  string
	Sections []Section
	Footer   string
}

// Section holds one of three body shapes; only the populated one is drawn.
type Section struct {
	Title      string
	Paragraphs []string
	Glyph      string
	Entries    []string
	Jobs       []Job
}

type Job struct {
	Company          string
	Role             string
	Label            string
	Responsibilities []string
}

// Build assembles the view with the same formatting and section order as
// the PDF renderer.
func Build(f render.Formatter, r model.Resume, now time.Time) View {
	s := f.L.Sections
	v := View{
		Lang:    f.L.Tag,
		Name:    r.Name,
		Contact: f.Contact(r),
		Footer:  f.Footer(now),
	}

	if r.Objective != "" {
		v.Sections = append(v.Sections, Section{Title: s.Objective, Paragraphs: []string{r.Objective}})
	}
	if len(r.Education) > 0 {
		sec := Section{Title: s.Education, Glyph: render.ArrowGlyph}
		for _, e := range r.Education {
			sec.Entries = append(sec.Entries, f.Education(e))
		}
		v.Sections = append(v.Sections, sec)
	}
	if len(r.Skills) > 0 {
		sec := Section{Title: s.Skills, Glyph: render.BulletGlyph}
		for _, it := range r.Skills {
			sec.Entries = append(sec.Entries, it.Text)
		}
		v.Sections = append(v.Sections, sec)
	}
	if len(r.Courses) > 0 {
		sec := Section{Title: s.Courses, Glyph: render.ArrowGlyph}
		for _, it := range r.Courses {
			sec.Entries = append(sec.Entries, f.Course(it))
		}
		v.Sections = append(v.Sections, sec)
	}
	if len(r.Experience) > 0 {
		sec := Section{Title: s.Experience}
		for _, w := range r.Experience {
			j := Job{Company: w.Company, Role: f.Role(w), Responsibilities: w.Responsibilities}
			if len(w.Responsibilities) > 0 {
				j.Label = f.L.Phrases.Responsibilities
			}
			sec.Jobs = append(sec.Jobs, j)
		}
		v.Sections = append(v.Sections, sec)
	}
	if len(r.Languages) > 0 {
		sec := Section{Title: s.Languages}
		for _, l := range r.Languages {
			sec.Paragraphs = append(sec.Paragraphs, f.Language(l))
		}
		v.Sections = append(v.Sections, sec)
	}
	return v
}

// HTML renders the page. Text is escaped by html/template.
func HTML(f render.Formatter, r model.Resume, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, Build(f, r, now)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
