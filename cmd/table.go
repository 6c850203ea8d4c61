package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalepa/crimestats/motive"
	"github.com/zalepa/crimestats/report"
)

const barWidth = 30

func newTableCmd(a *app) *cobra.Command {
	var wide bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the ranking as a terminal table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.aggregate()
			if err != nil {
				return err
			}
			renderTable(out(cmd), a.cfg.Title, res, wide)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wide, "wide", "w", false, "add one column per motive category")
	return cmd
}

// renderTable prints one row per ranked region with its total and a bar
// proportional to the largest total.
func renderTable(w io.Writer, title string, res motive.Result, wide bool) {
	fmt.Fprintln(w, title)
	if res.Len() == 0 {
		fmt.Fprintln(w, "(no regions with reported cases)")
		return
	}
	fmt.Fprintf(w, "%d regions, largest total %s\n\n", res.Len(), report.FormatCount(res.MaxTotal()))

	maxName := len("Region")
	for _, n := range res.Ranking {
		if len(n) > maxName {
			maxName = len(n)
		}
	}

	var headers []string
	widths := make([]int, len(res.Categories))
	if wide {
		for j, c := range res.Categories {
			h := shortLabel(c)
			headers = append(headers, h)
			widths[j] = max(len(h), 6)
		}
	}

	var hdr strings.Builder
	fmt.Fprintf(&hdr, "%4s  %-*s  %10s", "#", maxName, "Region", "Total")
	for j, h := range headers {
		fmt.Fprintf(&hdr, "  %*s", widths[j], h)
	}
	if !wide {
		hdr.WriteString("   ")
	}
	fmt.Fprintln(w, strings.TrimRight(hdr.String(), " "))
	ruleWidth := hdr.Len()
	if !wide {
		ruleWidth += barWidth
	}
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	for i, name := range res.Ranking {
		var row strings.Builder
		fmt.Fprintf(&row, "%4d  %-*s  %10s", i+1, maxName, name, report.FormatCount(res.Totals[i]))
		if wide {
			for j := range res.Categories {
				fmt.Fprintf(&row, "  %*s", widths[j], report.FormatCount(res.Series[j][i]))
			}
		} else {
			row.WriteString("   ")
			row.WriteString(bar(res.Totals[i], res.MaxTotal(), barWidth))
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
}

// bar renders v as a horizontal bar of up to width cells, using eighth
// blocks for the fractional cell.
func bar(v, maxV float64, width int) string {
	if maxV <= 0 || v <= 0 {
		return ""
	}
	eighths := int(math.Round(v / maxV * float64(width*8)))
	full, rem := eighths/8, eighths%8
	s := strings.Repeat("█", full)
	if rem > 0 {
		s += string([]rune("▏▎▍▌▋▊▉")[rem-1])
	}
	return s
}

// shortLabel trims a category label to its first segment, e.g. "Greed/Money"
// becomes "Greed".
func shortLabel(c motive.Category) string {
	l := c.Label
	if l == "" {
		l = c.Key
	}
	if i := strings.IndexAny(l, "/ "); i > 0 {
		l = l[:i]
	}
	return l
}
