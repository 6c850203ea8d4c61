package report

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"html/template"
	"io"

	"github.com/zalepa/crimestats/motive"
)

//go:embed report.html
var reportHTML string

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))

type chartView struct {
	Title  string
	Image  template.URL
	Width  float64
	Height float64
	Bands  []hoverBand
}

type rowView struct {
	Rank   int
	Region string
	Total  string
	Counts []string
}

type pageView struct {
	Title      string
	Regions    int
	TotalCount string
	Charts     []chartView
	Headers    []string
	Rows       []rowView
}

// RenderHTML writes a standalone HTML page holding the grouped and stacked
// charts for res. Each ranked region gets a hover tooltip listing its total
// and per-category counts.
func RenderHTML(w io.Writer, res motive.Result, opts Options) error {
	charts, err := renderCharts(res, opts)
	if err != nil {
		return err
	}

	opts = opts.withDefaults()
	page := pageView{
		Title:   opts.Title,
		Regions: res.Len(),
	}
	var total float64
	for _, t := range res.Totals {
		total += t
	}
	page.TotalCount = FormatCount(total)

	for _, rc := range charts {
		page.Charts = append(page.Charts, chartView{
			Title:  rc.Title,
			Image:  template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(rc.SVG)),
			Width:  rc.Width,
			Height: rc.Height,
			Bands:  rc.Bands,
		})
	}
	for _, c := range res.Categories {
		page.Headers = append(page.Headers, label(c))
	}
	for i, name := range res.Ranking {
		row := rowView{Rank: i + 1, Region: name, Total: FormatCount(res.Totals[i])}
		for j := range res.Categories {
			row.Counts = append(row.Counts, FormatCount(res.Series[j][i]))
		}
		page.Rows = append(page.Rows, row)
	}

	return reportTmpl.Execute(w, page)
}

// HTML renders the report into memory.
func HTML(res motive.Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, res, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML renders the report and writes it to path. Nothing is written
// unless rendering succeeds; write failures are *OutputWriteError.
func WriteHTML(path string, res motive.Result, opts Options) error {
	data, err := HTML(res, opts)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func renderCharts(res motive.Result, opts Options) ([]renderedChart, error) {
	opts = opts.withDefaults()

	grouped, err := Grouped(res, opts)
	if err != nil {
		return nil, err
	}
	g, err := renderSVG(grouped, opts.Title, groupedWidth, groupedHeight, res)
	if err != nil {
		return nil, err
	}

	stacked, err := Stacked(res, opts)
	if err != nil {
		return nil, err
	}
	s, err := renderSVG(stacked, opts.StackedTitle, stackedWidth, stackedHeight, res)
	if err != nil {
		return nil, err
	}
	return []renderedChart{g, s}, nil
}
