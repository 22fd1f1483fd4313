package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"resume-pdf/internal/layout"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"
	"resume-pdf/internal/render"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const coreFamily = "Helvetica"

// FontSet is an optional TrueType family embedded in every document. Bytes
// are loaded once at start-up and only read afterwards.
type FontSet struct {
	Family     string
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

// LoadFontSet reads a regular TTF and an optional bold one. Missing variants
// reuse the regular face.
func LoadFontSet(family, regularPath, boldPath string) (*FontSet, error) {
	if regularPath == "" {
		return nil, nil
	}
	reg, err := os.ReadFile(regularPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", regularPath, err)
	}
	fs := &FontSet{Family: family, Regular: reg, Bold: reg, Italic: reg, BoldItalic: reg}
	if fs.Family == "" {
		fs.Family = "Custom"
	}
	if boldPath != "" {
		b, err := os.ReadFile(boldPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", boldPath, err)
		}
		fs.Bold, fs.BoldItalic = b, b
	}
	return fs, nil
}

// FPDFEngine renders résumés with go-pdf/fpdf through the layout engine.
type FPDFEngine struct {
	fonts *FontSet
}

func NewFPDFEngine(fonts *FontSet) *FPDFEngine { return &FPDFEngine{fonts: fonts} }

func (e *FPDFEngine) Name() string { return "layout" }

func (e *FPDFEngine) Render(ctx context.Context, doc model.Resume, loc *locale.Locale, now time.Time) ([]byte, render.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, render.Result{}, err
	}
	canvas := NewFPDFCanvas(e.fonts)
	pdf := canvas.PDF()
	pdf.SetTitle(doc.Name, true)
	pdf.SetAuthor(doc.Name, true)
	pdf.SetCreator("resume-pdf", true)
	pdf.SetCreationDate(now)

	res := render.New(loc).Render(canvas, doc, now)
	if pdf.Err() {
		return nil, res, fmt.Errorf("fpdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, res, fmt.Errorf("fpdf output: %w", err)
	}
	return buf.Bytes(), res, nil
}

// FPDFCanvas adapts an fpdf document to layout.Canvas. Units are millimetres
// on A4 portrait; automatic page breaks are off because the layout cursor
// decides where pages end.
type FPDFCanvas struct {
	pdf     *fpdf.Fpdf
	family  string
	utf8    bool
	current layout.Font
}

func NewFPDFCanvas(fonts *FontSet) *FPDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetLineWidth(0.3)

	c := &FPDFCanvas{pdf: pdf, family: coreFamily}
	if fonts != nil && len(fonts.Regular) > 0 {
		pdf.AddUTF8FontFromBytes(fonts.Family, layout.Regular, fonts.Regular)
		pdf.AddUTF8FontFromBytes(fonts.Family, layout.Bold, fonts.Bold)
		pdf.AddUTF8FontFromBytes(fonts.Family, layout.Italic, fonts.Italic)
		pdf.AddUTF8FontFromBytes(fonts.Family, layout.BoldItalic, fonts.BoldItalic)
		c.family = fonts.Family
		c.utf8 = true
	}
	return c
}

func (c *FPDFCanvas) PDF() *fpdf.Fpdf { return c.pdf }

func (c *FPDFCanvas) PageSize() (float64, float64) { return c.pdf.GetPageSize() }

func (c *FPDFCanvas) AddPage() { c.pdf.AddPage() }

func (c *FPDFCanvas) SetFont(f layout.Font) {
	c.current = f
	c.pdf.SetFont(c.family, f.Style, f.Size)
}

func (c *FPDFCanvas) MeasureString(f layout.Font, s string) float64 {
	if f != c.current {
		c.pdf.SetFont(c.family, f.Style, f.Size)
		defer c.pdf.SetFont(c.family, c.current.Style, c.current.Size)
	}
	return c.pdf.GetStringWidth(c.encode(s))
}

func (c *FPDFCanvas) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	c.pdf.Text(x, y, c.encode(s))
}

func (c *FPDFCanvas) Line(x1, y1, x2, y2 float64) { c.pdf.Line(x1, y1, x2, y2) }

// encode converts s for the active font. Core fonts take Windows-1252 bytes;
// runes outside that code page become '?'.
func (c *FPDFCanvas) encode(s string) string {
	if c.utf8 {
		return s
	}
	return toWindows1252(s)
}

func toWindows1252(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteByte(byte(r))
			continue
		}
		if ch, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
