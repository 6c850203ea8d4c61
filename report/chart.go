package report

import (
	"image/color"
	"math"

	"github.com/zalepa/crimestats/motive"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	groupedWidth  = 14 * vg.Inch
	groupedHeight = 7 * vg.Inch
	stackedWidth  = 10 * vg.Inch
	stackedHeight = 7 * vg.Inch

	xAxisLabel = "States/U.T."
	yAxisLabel = "No. of Crimes"

	// Fraction of each region's slot covered by bars.
	slotFill = 0.8
	// Rough share of the canvas width left for the data area after axes and
	// legend are drawn; only used to size bars.
	dataShare = 0.85
)

// Options controls chart titles.
type Options struct {
	Title        string
	StackedTitle string
}

// DefaultOptions returns the titles used for the 2013 NCRB report.
func DefaultOptions() Options {
	return Options{
		Title:        "Cyber Crime Statistics-2013",
		StackedTitle: "Cyber Crime Statistics-2013(Stacked)",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.StackedTitle == "" {
		o.StackedTitle = d.StackedTitle
	}
	return o
}

func alpha(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 153}
}

var (
	bronze = color.RGBA{R: 0xCD, G: 0x7F, B: 0x32, A: 255}
	silver = color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 255}
	blue   = color.RGBA{B: 0xFF, A: 255}
	red    = color.RGBA{R: 0xFF, A: 255}
	gold   = color.RGBA{R: 0xFF, G: 0xD7, A: 255}
	yellow = color.RGBA{R: 0xFF, G: 0xFF, A: 255}
	green  = color.RGBA{G: 0x80, A: 255}
	brown  = color.RGBA{R: 0xA5, G: 0x2A, B: 0x2A, A: 255}
)

// Grouped and stacked charts use different colour assignments.
var groupedPalette = map[string]color.RGBA{
	"revenge":     bronze,
	"greed":       silver,
	"extortion":   blue,
	"disrepute":   red,
	"prank":       gold,
	"fraud":       yellow,
	"eve-teasing": green,
	"others":      brown,
}

var stackedPalette = map[string]color.RGBA{
	"revenge":     bronze,
	"greed":       silver,
	"extortion":   gold,
	"disrepute":   blue,
	"prank":       brown,
	"fraud":       red,
	"eve-teasing": yellow,
	"others":      green,
}

func categoryColor(palette map[string]color.RGBA, c motive.Category, i int) color.Color {
	if rgb, ok := palette[c.Slug]; ok {
		return alpha(rgb)
	}
	r, g, b, _ := plotutil.Color(i).RGBA()
	return alpha(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
}

func label(c motive.Category) string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

func newBasePlot(title string, res motive.Result) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.BackgroundColor = color.White
	p.X.Label.Text = xAxisLabel
	p.Y.Label.Text = yAxisLabel
	p.X.Tick.Label.Font.Size = vg.Points(8)
	p.Y.Tick.Label.Font.Size = vg.Points(8)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Tick.Marker = countTicks{}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)
	p.Add(yGrid())

	if res.Len() == 0 {
		p.Title.Text = title + " (no data)"
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p
	}
	p.NominalX(res.Ranking...)
	return p
}

// yGrid draws horizontal grid lines only.
func yGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = nil
	return g
}

// slotWidth estimates the canvas width of one region's slot.
func slotWidth(canvasWidth vg.Length, n int) vg.Length {
	if n == 0 {
		return 0
	}
	return vg.Length(float64(canvasWidth) * dataShare / float64(n))
}

// Grouped draws one bar per category side by side within each region's slot.
func Grouped(res motive.Result, opts Options) (*plot.Plot, error) {
	opts = opts.withDefaults()
	p := newBasePlot(opts.Title, res)
	if res.Len() == 0 {
		return p, nil
	}

	k := len(res.Categories)
	barWidth := slotWidth(groupedWidth, res.Len()) * slotFill / vg.Length(k)
	for j, c := range res.Categories {
		bars, err := plotter.NewBarChart(plotter.Values(res.Series[j]), barWidth)
		if err != nil {
			return nil, err
		}
		bars.Color = categoryColor(groupedPalette, c, j)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(j)-float64(k-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(label(c), bars)
	}
	p.Y.Min = 0
	p.Y.Max = math.Max(res.Max(), 1) * 1.05
	return p, nil
}

// Stacked draws each region's category counts stacked on top of each other.
func Stacked(res motive.Result, opts Options) (*plot.Plot, error) {
	opts = opts.withDefaults()
	p := newBasePlot(opts.StackedTitle, res)
	if res.Len() == 0 {
		return p, nil
	}

	barWidth := slotWidth(stackedWidth, res.Len()) * slotFill
	var below *plotter.BarChart
	for j, c := range res.Categories {
		bars, err := plotter.NewBarChart(plotter.Values(res.Series[j]), barWidth)
		if err != nil {
			return nil, err
		}
		bars.Color = categoryColor(stackedPalette, c, j)
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(label(c), bars)
	}
	p.Y.Min = 0
	p.Y.Max = stackedMax(res) * 1.05
	return p, nil
}

// stackedMax is the tallest stack. It differs from the largest Total when the
// selected categories do not sum to it.
func stackedMax(res motive.Result) float64 {
	var m float64
	for i := 0; i < res.Len(); i++ {
		var sum float64
		for _, s := range res.Series {
			sum += s[i]
		}
		m = math.Max(m, sum)
	}
	if m == 0 {
		return 1
	}
	return m
}

type countTicks struct{}

func (countTicks) Ticks(min, max float64) []plot.Tick {
	t := plot.DefaultTicks{}
	ticks := t.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = FormatCompact(ticks[i].Value)
		}
	}
	return ticks
}
