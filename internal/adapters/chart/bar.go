// Package chart renders the department distribution as a PNG bar chart.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/headcount/internal/domain/aggregate"
)

// Default chart configuration constants.
const (
	defaultWidth  = 1200
	defaultHeight = 700
	defaultDPI    = 96
	defaultTitle  = "Employee Distribution Across Departments"

	marginTop    = 100
	marginBottom = 160
	marginLeft   = 100
	marginRight  = 40

	barFillRatio   = 0.8
	headroom       = 1.1
	targetTicks    = 5
	labelRotation  = -math.Pi / 4
	yLabelRotation = -math.Pi / 2

	titleFontSize  = 15
	axisFontSize   = 13
	tickFontSize   = 11
	valueFontSize  = 10
	legendFontSize = 10

	barStrokeWidth       = 1.2
	highlightStrokeWidth = 2
	legendSwatch         = 16
	legendPadding        = 10
)

var (
	defaultHighlightFill   = drawing.ColorFromHex("FF6B6B")
	defaultHighlightStroke = drawing.ColorFromHex("8B0000")
	gridColor              = drawing.Color{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xB3}
	gridDash               = []float64{6, 4}
)

// Renderer draws bar charts with go-chart's raster renderer.
type Renderer struct {
	width, height   int
	dpi             float64
	title, subtitle string
	highlightFill   drawing.Color
	highlightStroke drawing.Color
	palette         func(n int) []drawing.Color
}

// New creates a Renderer with configuration options.
func New(opts ...Option) *Renderer {
	c := &Renderer{
		width:           defaultWidth,
		height:          defaultHeight,
		dpi:             defaultDPI,
		title:           defaultTitle,
		highlightFill:   defaultHighlightFill,
		highlightStroke: defaultHighlightStroke,
		palette:         HuePalette,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// canvas pairs a go-chart renderer with the font every text call resets to.
type canvas struct {
	gochart.Renderer
	font *truetype.Font
}

// bar is the pixel box of one department.
type bar struct {
	name  string
	count int
	box   gochart.Box
}

// layout is the computed geometry of a chart.
type layout struct {
	plot  gochart.Box
	yMax  float64
	yStep float64
	bars  []bar
}

// Render draws one bar per department in the summary's display order, marks
// highlight in the highlight color and returns the PNG bytes. A highlight
// absent from the summary is an error; the chart is never drawn without it.
func (c *Renderer) Render(ctx context.Context, s aggregate.Summary, highlight string) ([]byte, error) {
	if len(s.Departments) == 0 {
		return nil, ErrNoBars
	}
	hl, err := s.IndexOf(highlight)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHighlightMissing, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("%w: font: %w", ErrRender, err)
	}
	rr, err := gochart.PNG(c.width, c.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	rr.SetDPI(c.dpi)
	r := &canvas{Renderer: rr, font: font}

	lay := c.layout(s)
	colors := c.palette(len(lay.bars))

	c.fillBox(r, gochart.Box{Top: 0, Left: 0, Right: c.width, Bottom: c.height}, drawing.ColorWhite, drawing.ColorWhite, 0)
	c.drawGrid(r, lay)
	for i, b := range lay.bars {
		fill, stroke, width := colors[i%len(colors)], drawing.ColorBlack, barStrokeWidth
		if i == hl {
			fill, stroke, width = c.highlightFill, c.highlightStroke, highlightStrokeWidth
		}
		c.fillBox(r, b.box, fill, stroke, width)
		c.drawValue(r, b)
	}
	c.drawAxes(r, lay)
	c.drawTitle(r)
	c.drawLegend(r, lay, highlight)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (c *Renderer) layout(s aggregate.Summary) layout {
	plot := gochart.Box{
		Top:    marginTop,
		Left:   marginLeft,
		Right:  c.width - marginRight,
		Bottom: c.height - marginBottom,
	}

	maxCount := 0
	for _, d := range s.Departments {
		maxCount = max(maxCount, d.Count)
	}
	step := niceStep(float64(maxCount) * headroom / targetTicks)
	yMax := math.Max(step, math.Ceil(float64(maxCount)*headroom/step)*step)

	slot := float64(plot.Width()) / float64(len(s.Departments))
	bw := slot * barFillRatio
	bars := make([]bar, len(s.Departments))
	for i, d := range s.Departments {
		left := float64(plot.Left) + float64(i)*slot + (slot-bw)/2
		h := float64(d.Count) / yMax * float64(plot.Height())
		bars[i] = bar{
			name:  d.Name,
			count: d.Count,
			box: gochart.Box{
				Top:    plot.Bottom - int(math.Round(h)),
				Left:   int(math.Round(left)),
				Right:  int(math.Round(left + bw)),
				Bottom: plot.Bottom,
			},
		}
	}
	return layout{plot: plot, yMax: yMax, yStep: step, bars: bars}
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten, never below 1.
func niceStep(raw float64) float64 {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func (c *Renderer) yToPixel(lay layout, v float64) int {
	return lay.plot.Bottom - int(math.Round(v/lay.yMax*float64(lay.plot.Height())))
}

func (c *Renderer) fillBox(r *canvas, b gochart.Box, fill, stroke drawing.Color, width float64) {
	defer r.ResetStyle()
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(width)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	if width > 0 {
		r.FillStroke()
		return
	}
	r.Fill()
}

func (c *Renderer) line(r *canvas, x0, y0, x1, y1 int, color drawing.Color, width float64, dash []float64) {
	defer r.ResetStyle()
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	if dash != nil {
		r.SetStrokeDashArray(dash)
	}
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// text writes body with its baseline starting at (x, y). rotation is in
// radians around that point.
func (c *Renderer) text(r *canvas, body string, x, y int, size float64, rotation float64) {
	defer r.ResetStyle()
	r.SetFont(r.font)
	r.SetFontSize(size)
	r.SetFontColor(drawing.ColorBlack)
	if rotation != 0 {
		r.SetTextRotation(rotation)
		defer r.ClearTextRotation()
	}
	r.Text(body, x, y)
}

func (c *Renderer) measure(r *canvas, body string, size float64) gochart.Box {
	defer r.ResetStyle()
	r.SetFont(r.font)
	r.SetFontSize(size)
	return r.MeasureText(body)
}

func (c *Renderer) drawGrid(r *canvas, lay layout) {
	for v := lay.yStep; v <= lay.yMax; v += lay.yStep {
		y := c.yToPixel(lay, v)
		c.line(r, lay.plot.Left, y, lay.plot.Right, y, gridColor, 1, gridDash)
	}
}

func (c *Renderer) drawAxes(r *canvas, lay layout) {
	p := lay.plot
	c.line(r, p.Left, p.Top, p.Left, p.Bottom, drawing.ColorBlack, 1, nil)
	c.line(r, p.Left, p.Bottom, p.Right, p.Bottom, drawing.ColorBlack, 1, nil)

	for v := 0.0; v <= lay.yMax; v += lay.yStep {
		label := strconv.Itoa(int(v))
		tb := c.measure(r, label, tickFontSize)
		y := c.yToPixel(lay, v)
		c.line(r, p.Left-5, y, p.Left, y, drawing.ColorBlack, 1, nil)
		c.text(r, label, p.Left-8-tb.Width(), y+tb.Height()/2, tickFontSize, 0)
	}

	// Department labels end at their tick, rising to the right.
	for _, b := range lay.bars {
		tb := c.measure(r, b.name, tickFontSize)
		cx := (b.box.Left + b.box.Right) / 2
		diag := float64(tb.Width()) * math.Sqrt2 / 2
		c.text(r, b.name, cx-int(diag), p.Bottom+12+int(diag), tickFontSize, labelRotation)
	}

	xl := c.measure(r, "Department", axisFontSize)
	c.text(r, "Department", (p.Left+p.Right-xl.Width())/2, c.height-16, axisFontSize, 0)

	yl := c.measure(r, "Number of Employees", axisFontSize)
	c.text(r, "Number of Employees", 16+yl.Height(), (p.Top+p.Bottom+yl.Width())/2, axisFontSize, yLabelRotation)
}

func (c *Renderer) drawValue(r *canvas, b bar) {
	label := strconv.Itoa(b.count)
	tb := c.measure(r, label, valueFontSize)
	cx := (b.box.Left + b.box.Right) / 2
	c.text(r, label, cx-tb.Width()/2, b.box.Top-4, valueFontSize, 0)
}

func (c *Renderer) drawTitle(r *canvas) {
	tb := c.measure(r, c.title, titleFontSize)
	y := marginTop/2 - 4
	if c.subtitle == "" {
		y = marginTop/2 + tb.Height()/2
	}
	c.text(r, c.title, (c.width-tb.Width())/2, y, titleFontSize, 0)
	if c.subtitle != "" {
		sb := c.measure(r, c.subtitle, titleFontSize)
		c.text(r, c.subtitle, (c.width-sb.Width())/2, y+sb.Height()+8, titleFontSize, 0)
	}
}

func (c *Renderer) drawLegend(r *canvas, lay layout, highlight string) {
	label := highlight + " Department (Highlighted)"
	tb := c.measure(r, label, legendFontSize)

	box := gochart.Box{
		Top:   lay.plot.Top + legendPadding,
		Right: lay.plot.Right - legendPadding,
	}
	box.Left = box.Right - (legendPadding*3 + legendSwatch + tb.Width())
	box.Bottom = box.Top + legendPadding*2 + max(legendSwatch, tb.Height())
	c.fillBox(r, box, drawing.ColorWhite, drawing.Color{R: 0xCC, G: 0xCC, B: 0xCC, A: 255}, 1)

	midY := (box.Top + box.Bottom) / 2
	swatch := gochart.Box{
		Top:    midY - legendSwatch/2,
		Left:   box.Left + legendPadding,
		Right:  box.Left + legendPadding + legendSwatch,
		Bottom: midY + legendSwatch/2,
	}
	c.fillBox(r, swatch, c.highlightFill, c.highlightStroke, highlightStrokeWidth)
	c.text(r, label, swatch.Right+legendPadding, midY+tb.Height()/2, legendFontSize, 0)
}
