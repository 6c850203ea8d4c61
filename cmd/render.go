package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zalepa/crimestats/report"
	"go.uber.org/zap"
)

func newRenderCmd(a *app) *cobra.Command {
	var output, pdf, title, stackedTitle string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the grouped and stacked bar charts to HTML",
		Example: `  crimestats render
  crimestats render -i crime.json -o CrimeTest.html
  crimestats render --pdf report.pdf --categories fraud,greed,extortion`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				a.cfg.Output = output
			}
			if cmd.Flags().Changed("pdf") {
				a.cfg.PDF = pdf
			}
			if title != "" {
				a.cfg.Title = title
			}
			if stackedTitle != "" {
				a.cfg.StackedTitle = stackedTitle
			}
			return a.render(a.cfg.Output, a.cfg.PDF)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "HTML report path (overrides config)")
	f.StringVar(&pdf, "pdf", "", "also write a two-page PDF report")
	f.StringVar(&title, "title", "", "grouped chart and page title")
	f.StringVar(&stackedTitle, "stacked-title", "", "stacked chart title")
	return cmd
}

// render aggregates the dataset and writes the HTML report, plus the PDF
// report when pdfPath is set. Every artifact is rendered before any is
// written, and either all of them land or none do.
func (a *app) render(htmlPath, pdfPath string) error {
	res, err := a.aggregate()
	if err != nil {
		return err
	}
	opts := a.reportOptions()

	page, err := report.HTML(res, opts)
	if err != nil {
		return err
	}
	var doc []byte
	if pdfPath != "" {
		if doc, err = report.PDF(res, opts); err != nil {
			return err
		}
	}

	files := []report.File{{Path: htmlPath, Data: page}}
	if doc != nil {
		files = append(files, report.File{Path: pdfPath, Data: doc})
	}
	if err := report.SaveFiles(files...); err != nil {
		return err
	}

	a.logger.Info("Wrote HTML report", zap.String("path", htmlPath), zap.Int("bytes", len(page)))
	if doc != nil {
		a.logger.Info("Wrote PDF report", zap.String("path", pdfPath), zap.Int("bytes", len(doc)))
	}
	return nil
}
