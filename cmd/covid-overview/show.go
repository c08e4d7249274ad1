package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/liavyona/covid-overview/pkg"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch the overview once and print the summary and chart entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loader := pkg.NewLoader(cfg.ApiMetadata(), nil)
		dashboard, err := loader.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("loading overview (%s): %w", pkg.ErrorKind(err), err)
		}
		return printDashboard(cmd.OutOrStdout(), dashboard)
	},
}

func printDashboard(w io.Writer, d *pkg.Dashboard) error {
	headers := []string{"#", "REGION", "NEW", "TOTAL"}
	rows := make([][]string, 0, len(d.Entries))
	for i, entry := range d.Entries {
		rows = append(rows, []string{
			strconv.Itoa(i),
			entry.Label,
			strconv.FormatFloat(entry.Value, 'f', -1, 64),
			entry.Overview.TotalCase,
		})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", d.Title)
	fmt.Fprintf(&sb, "total: %s\nnew:   %s\n\n", d.Summary.TotalCase, d.Summary.NewCase)
	sb.WriteString(renderTable(headers, rows))

	_, err := io.WriteString(w, sb.String())
	return err
}

// renderTable pads every cell to its column's display width. Hangul region
// names take two terminal columns per rune, so widths come from lipgloss
// rather than rune counts.
func renderTable(headers []string, rows [][]string) string {
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", colWidths[i]-lipgloss.Width(cell)))
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
