package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/zalepa/crimestats/motive"
)

const xlsxSheet = "Ranking"

// Table is the ranking in row form, as written by the JSON export.
type Table struct {
	Categories motive.Categories `json:"categories"`
	Regions    []TableRow        `json:"regions"`
}

// TableRow is one ranked region. Counts is keyed by category slug.
type TableRow struct {
	Rank   int                `json:"rank"`
	Name   string             `json:"name"`
	Total  float64            `json:"total"`
	Counts map[string]float64 `json:"counts"`
}

// NewTable converts an aggregate result into rows.
func NewTable(res motive.Result) Table {
	t := Table{Categories: res.Categories, Regions: make([]TableRow, 0, res.Len())}
	for i, name := range res.Ranking {
		row := TableRow{Rank: i + 1, Name: name, Total: res.Totals[i], Counts: make(map[string]float64, len(res.Categories))}
		for j, c := range res.Categories {
			row.Counts[c.Slug] = res.Series[j][i]
		}
		t.Regions = append(t.Regions, row)
	}
	return t
}

func header(res motive.Result) []string {
	h := []string{"Rank", "Region", "Total"}
	for _, c := range res.Categories {
		h = append(h, label(c))
	}
	return h
}

// WriteCSV writes the ranking table as CSV.
func WriteCSV(path string, res motive.Result) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header(res)); err != nil {
		return err
	}
	for i, name := range res.Ranking {
		row := []string{fmt.Sprint(i + 1), name, formatRaw(res.Totals[i])}
		for j := range res.Categories {
			row = append(row, formatRaw(res.Series[j][i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// WriteJSON writes the ranking table as indented JSON.
func WriteJSON(path string, res motive.Result) error {
	data, err := json.MarshalIndent(NewTable(res), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// WriteXLSX writes the ranking table to a single-sheet workbook.
func WriteXLSX(path string, res motive.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for i, h := range header(res) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 28); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	for i, name := range res.Ranking {
		values := []any{i + 1, name, res.Totals[i]}
		for j := range res.Categories {
			values = append(values, res.Series[j][i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}
