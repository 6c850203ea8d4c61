package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/zalepa/crimestats/report"
	"go.uber.org/zap"
)

func newExportCmd(a *app) *cobra.Command {
	var csvOut, jsonOut, xlsxOut string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ranking table as CSV, JSON and/or XLSX",
		Example: `  crimestats export --csv ranking.csv
  crimestats export --json ranking.json --xlsx ranking.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvOut == "" && jsonOut == "" && xlsxOut == "" {
				return errors.New("export: at least one of --csv, --json or --xlsx is required")
			}
			res, err := a.aggregate()
			if err != nil {
				return err
			}
			writers := []struct {
				path  string
				write func(string) error
			}{
				{csvOut, func(p string) error { return report.WriteCSV(p, res) }},
				{jsonOut, func(p string) error { return report.WriteJSON(p, res) }},
				{xlsxOut, func(p string) error { return report.WriteXLSX(p, res) }},
			}
			for _, w := range writers {
				if w.path == "" {
					continue
				}
				if err := w.write(w.path); err != nil {
					return err
				}
				a.logger.Info("Wrote export", zap.String("path", w.path), zap.Int("regions", res.Len()))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&csvOut, "csv", "", "CSV output path")
	f.StringVar(&jsonOut, "json", "", "JSON output path")
	f.StringVar(&xlsxOut, "xlsx", "", "XLSX output path")
	return cmd
}
