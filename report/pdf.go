package report

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/zalepa/crimestats/motive"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

const (
	pageWidth  = 11 * vg.Inch
	pageHeight = 8.5 * vg.Inch
	pdfMargin  = 0.5 * vg.Inch
)

// PDF renders the grouped and stacked charts on two landscape pages and
// checks that the document reads back with both pages.
func PDF(res motive.Result, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	grouped, err := Grouped(res, opts)
	if err != nil {
		return nil, err
	}
	stacked, err := Stacked(res, opts)
	if err != nil {
		return nil, err
	}

	c := vgpdf.New(pageWidth, pageHeight)
	drawPage(c, grouped)
	c.NextPage()
	drawPage(c, stacked)

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	n, err := PageCount(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("verify pdf: %w", err)
	}
	if n != 2 {
		return nil, fmt.Errorf("verify pdf: got %d pages, want 2", n)
	}
	return buf.Bytes(), nil
}

func drawPage(c *vgpdf.Canvas, p *plot.Plot) {
	dc := draw.New(c)
	area := draw.Crop(dc, pdfMargin, -pdfMargin, pdfMargin, -pdfMargin)
	p.Draw(area)
}

// WritePDF renders the PDF report and writes it to path.
func WritePDF(path string, res motive.Result, opts Options) error {
	data, err := PDF(res, opts)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// PageCount parses a PDF document and returns its number of pages.
func PageCount(data []byte) (int, error) {
	ctx, err := pdfcpu.Read(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return ctx.PageCount, nil
}
