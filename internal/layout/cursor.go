package layout

// PointsPerMM converts font sizes (points) to page units.
const PointsPerMM = 72.0 / 25.4

// Margins in millimetres.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Cursor is the mutable state of one render: the vertical position on the
// current page and the font last set. It is created per render call and never
// shared.
type Cursor struct {
	canvas  Canvas
	margins Margins
	width   float64
	height  float64
	body    Font

	y     float64
	pages int
	font  Font
}

// NewCursor starts the first page. body is the font restored after each
// break.
func NewCursor(c Canvas, m Margins, body Font) *Cursor {
	w, h := c.PageSize()
	cur := &Cursor{canvas: c, margins: m, width: w, height: h, body: body}
	cur.newPage()
	return cur
}

func (c *Cursor) newPage() {
	c.canvas.AddPage()
	c.pages++
	c.y = c.margins.Top
	c.SetFont(c.body)
}

// Y is the current baseline position.
func (c *Cursor) Y() float64 { return c.y }

func (c *Cursor) Pages() int { return c.pages }

func (c *Cursor) Font() Font { return c.font }

// Left and Right are the x bounds of the writable area.
func (c *Cursor) Left() float64 { return c.margins.Left }

func (c *Cursor) Right() float64 { return c.width - c.margins.Right }

func (c *Cursor) Width() float64 { return c.Right() - c.Left() }

func (c *Cursor) PageWidth() float64 { return c.width }

func (c *Cursor) PageHeight() float64 { return c.height }

func (c *Cursor) Margins() Margins { return c.margins }

func (c *Cursor) SetFont(f Font) {
	c.font = f
	c.canvas.SetFont(f)
}

func (c *Cursor) Advance(mm float64) {
	c.y += mm
}

// EnsureSpace starts a new page when the cursor has dropped below the bottom
// margin plus minRemaining. There is no look-ahead: it is called right before
// each line is drawn. After a break the body font is active, so callers set
// their font after calling it. It reports whether a break happened.
func (c *Cursor) EnsureSpace(minRemaining float64) bool {
	if c.y <= c.height-c.margins.Bottom-minRemaining {
		return false
	}
	c.newPage()
	return true
}
