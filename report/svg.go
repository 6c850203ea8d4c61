package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/zalepa/crimestats/motive"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// hoverBand is a rectangle in SVG user space (origin top-left, points)
// covering one region's slot over the full height of the data area.
type hoverBand struct {
	X, Y, W, H float64
	Region     string
	Tooltip    string
}

// renderedChart is a chart drawn to SVG together with its hover bands.
type renderedChart struct {
	Title  string
	SVG    []byte
	Width  float64
	Height float64
	Bands  []hoverBand
}

// renderSVG draws p onto a w×h SVG canvas and computes one hover band per
// ranked region using the plot's data transforms.
func renderSVG(p *plot.Plot, title string, w, h vg.Length, res motive.Result) (renderedChart, error) {
	c := vgsvg.New(w, h)
	dc := draw.New(c)
	p.Draw(dc)

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return renderedChart{}, fmt.Errorf("render %q: %w", title, err)
	}

	rc := renderedChart{
		Title:  title,
		SVG:    buf.Bytes(),
		Width:  w.Points(),
		Height: h.Points(),
	}
	if res.Len() == 0 {
		return rc, nil
	}

	da := p.DataCanvas(dc)
	trX, _ := p.Transforms(&da)
	top := h.Points() - da.Max.Y.Points()
	height := (da.Max.Y - da.Min.Y).Points()
	for i, name := range res.Ranking {
		x0 := max(trX(float64(i)-0.5), da.Min.X)
		x1 := min(trX(float64(i)+0.5), da.Max.X)
		if x1 <= x0 {
			continue
		}
		rc.Bands = append(rc.Bands, hoverBand{
			X:       x0.Points(),
			Y:       top,
			W:       (x1 - x0).Points(),
			H:       height,
			Region:  name,
			Tooltip: tooltip(res, i),
		})
	}
	return rc, nil
}

// tooltip lists the region, its total and every category value, one per line.
func tooltip(res motive.Result, i int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nTotal: %s", res.Ranking[i], FormatCount(res.Totals[i]))
	for j, c := range res.Categories {
		fmt.Fprintf(&sb, "\n%s: %s", label(c), FormatCount(res.Series[j][i]))
	}
	return sb.String()
}
