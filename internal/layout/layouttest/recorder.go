// Package layouttest provides a recording layout.Canvas for tests.
package layouttest

import (
	"strings"
	"unicode/utf8"

	"resume-pdf/internal/layout"
)

// CharWidth is the width of one rune per point of font size, in mm.
const CharWidth = 0.25

type TextOp struct {
	Page int
	X, Y float64
	Text string
	Font layout.Font
}

type LineOp struct {
	Page           int
	X1, Y1, X2, Y2 float64
}

// Recorder is an A4 canvas that measures every rune as CharWidth*size and
// records what is drawn.
type Recorder struct {
	W, H  float64
	Pages int
	Texts []TextOp
	Lines []LineOp

	font layout.Font
}

func NewRecorder() *Recorder {
	return &Recorder{W: 210, H: 297}
}

func (r *Recorder) MeasureString(f layout.Font, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * CharWidth * f.Size
}

func (r *Recorder) PageSize() (float64, float64) { return r.W, r.H }

func (r *Recorder) AddPage() { r.Pages++ }

func (r *Recorder) SetFont(f layout.Font) { r.font = f }

func (r *Recorder) Text(x, y float64, s string) {
	r.Texts = append(r.Texts, TextOp{Page: r.Pages, X: x, Y: y, Text: s, Font: r.font})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Lines = append(r.Lines, LineOp{Page: r.Pages, X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// Find returns the text operations containing substr.
func (r *Recorder) Find(substr string) []TextOp {
	var out []TextOp
	for _, t := range r.Texts {
		if strings.Contains(t.Text, substr) {
			out = append(out, t)
		}
	}
	return out
}

// Strings returns the drawn strings in order.
func (r *Recorder) Strings() []string {
	out := make([]string, 0, len(r.Texts))
	for _, t := range r.Texts {
		out = append(out, t.Text)
	}
	return out
}
