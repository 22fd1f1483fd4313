// Package render lays a résumé out on pages: centered header, the fixed
// sequence of sections, and a footer on the last page.
package render

import (
	"time"

	"resume-pdf/internal/layout"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"
)

// Glyphs in front of list entries. Both exist in Windows-1252 so the core
// PDF fonts can draw them.
const (
	BulletGlyph = "•"
	ArrowGlyph  = "»"
)

// Theme holds the typography and spacing, sizes in points and distances in
// millimetres.
type Theme struct {
	Margin float64
	// Reserve is the space that must remain above the bottom margin before a
	// line is drawn; below it the line goes to a new page.
	Reserve float64

	NameSize, NameAdvance       float64
	ContactSize, ContactAdvance float64
	RuleAdvance                 float64
	SectionSize, SectionAdvance float64
	BodySize, LineAdvance       float64
	SectionGap, EntryGap        float64
	FooterSize                  float64
	Indent                      float64
}

var DefaultTheme = Theme{
	Margin:         20,
	Reserve:        30 / layout.PointsPerMM,
	NameSize:       18,
	NameAdvance:    12,
	ContactSize:    10,
	ContactAdvance: 8,
	RuleAdvance:    8,
	SectionSize:    12,
	SectionAdvance: 6,
	BodySize:       11,
	LineAdvance:    6,
	SectionGap:     4,
	EntryGap:       2,
	FooterSize:     8,
	Indent:         5,
}

type Result struct {
	Pages int
}

// Renderer is stateless; every Render call builds its own cursor, so one
// Renderer can serve concurrent requests as long as each has its own Canvas.
type Renderer struct {
	Format Formatter
	Theme  Theme
}

func New(l *locale.Locale) *Renderer {
	return &Renderer{Format: NewFormatter(l), Theme: DefaultTheme}
}

// Render draws r onto c. now is the generation date printed in the footer.
func (rd *Renderer) Render(c layout.Canvas, r model.Resume, now time.Time) Result {
	t := rd.Theme
	m := layout.Margins{Top: t.Margin, Right: t.Margin, Bottom: t.Margin, Left: t.Margin}
	d := &drawing{
		c:   c,
		cur: layout.NewCursor(c, m, layout.Font{Size: t.BodySize}),
		f:   rd.Format,
		t:   t,
	}

	d.header(r)
	d.sections(r)
	d.footer(now)

	return Result{Pages: d.cur.Pages()}
}

type drawing struct {
	c   layout.Canvas
	cur *layout.Cursor
	f   Formatter
	t   Theme
}

func (d *drawing) font(style string, size float64) layout.Font {
	return layout.Font{Style: style, Size: size}
}

// line draws one pre-wrapped line at x and moves down by advance.
func (d *drawing) line(x float64, s string, f layout.Font, advance float64) {
	d.cur.EnsureSpace(d.t.Reserve)
	d.cur.SetFont(f)
	d.c.Text(x, d.cur.Y(), s)
	d.cur.Advance(advance)
}

func (d *drawing) centered(s string, f layout.Font, advance float64) {
	d.cur.EnsureSpace(d.t.Reserve)
	d.cur.SetFont(f)
	x := (d.cur.PageWidth() - d.c.MeasureString(f, s)) / 2
	d.c.Text(x, d.cur.Y(), s)
	d.cur.Advance(advance)
}

// paragraph wraps text to the area right of indent.
func (d *drawing) paragraph(indent float64, text string, f layout.Font) {
	x := d.cur.Left() + indent
	for _, l := range layout.Wrap(d.c, f, text, d.cur.Right()-x) {
		d.line(x, l, f, d.t.LineAdvance)
	}
}

// listEntry draws glyph at indent and the wrapped text after it; continuation
// lines align with the text, not the glyph.
func (d *drawing) listEntry(indent float64, glyph, text string, f layout.Font) {
	x := d.cur.Left() + indent + d.t.Indent
	for i, l := range layout.Wrap(d.c, f, text, d.cur.Right()-x) {
		d.cur.EnsureSpace(d.t.Reserve)
		d.cur.SetFont(f)
		if i == 0 {
			d.c.Text(d.cur.Left()+indent, d.cur.Y(), glyph)
		}
		d.c.Text(x, d.cur.Y(), l)
		d.cur.Advance(d.t.LineAdvance)
	}
}

func (d *drawing) header(r model.Resume) {
	nf := d.font(layout.Bold, d.t.NameSize)
	for _, l := range layout.Wrap(d.c, nf, r.Name, d.cur.Width()) {
		d.centered(l, nf, d.t.NameAdvance)
	}

	contact := d.f.Contact(r)
	if contact != "" {
		f := d.font(layout.Regular, d.t.ContactSize)
		for _, l := range layout.Wrap(d.c, f, contact, d.cur.Width()) {
			d.centered(l, f, d.t.ContactAdvance)
		}
	}

	d.cur.EnsureSpace(d.t.Reserve)
	d.c.Line(d.cur.Left(), d.cur.Y(), d.cur.Right(), d.cur.Y())
	d.cur.Advance(d.t.RuleAdvance)
}

func (d *drawing) sections(r model.Resume) {
	s := d.f.L.Sections
	body := d.font(layout.Regular, d.t.BodySize)

	if r.Objective != "" {
		d.section(s.Objective, func() {
			d.paragraph(0, r.Objective, body)
		})
	}
	if len(r.Education) > 0 {
		d.section(s.Education, func() {
			for _, e := range r.Education {
				d.listEntry(0, ArrowGlyph, d.f.Education(e), body)
			}
		})
	}
	if len(r.Skills) > 0 {
		d.section(s.Skills, func() {
			for _, it := range r.Skills {
				d.listEntry(0, BulletGlyph, it.Text, body)
			}
		})
	}
	if len(r.Courses) > 0 {
		d.section(s.Courses, func() {
			for _, it := range r.Courses {
				d.listEntry(0, ArrowGlyph, d.f.Course(it), body)
			}
		})
	}
	if len(r.Experience) > 0 {
		d.section(s.Experience, func() {
			for i, w := range r.Experience {
				if i > 0 {
					d.cur.Advance(d.t.EntryGap)
				}
				d.work(w)
			}
		})
	}
	if len(r.Languages) > 0 {
		d.section(s.Languages, func() {
			for _, l := range r.Languages {
				d.paragraph(0, d.f.Language(l), body)
			}
		})
	}
}

func (d *drawing) section(title string, body func()) {
	d.line(d.cur.Left(), title, d.font(layout.Bold, d.t.SectionSize), d.t.SectionAdvance)
	body()
	d.cur.Advance(d.t.SectionGap)
}

func (d *drawing) work(w model.Work) {
	body := d.font(layout.Regular, d.t.BodySize)
	if w.Company != "" {
		d.paragraph(0, w.Company, d.font(layout.BoldItalic, d.t.BodySize))
	}
	if role := d.f.Role(w); role != "" {
		d.paragraph(0, role, body)
	}
	if len(w.Responsibilities) == 0 {
		return
	}
	d.line(d.cur.Left(), d.f.L.Phrases.Responsibilities, d.font(layout.Bold, d.t.BodySize), d.t.LineAdvance)
	for _, resp := range w.Responsibilities {
		d.listEntry(d.t.Indent, BulletGlyph, resp, body)
	}
}

// footer goes on the page the cursor ended on, at a fixed distance from the
// bottom edge.
func (d *drawing) footer(now time.Time) {
	f := d.font(layout.Regular, d.t.FooterSize)
	s := d.f.Footer(now)
	d.cur.SetFont(f)
	x := (d.cur.PageWidth() - d.c.MeasureString(f, s)) / 2
	d.c.Text(x, d.cur.PageHeight()-d.t.Margin/2, s)
}
