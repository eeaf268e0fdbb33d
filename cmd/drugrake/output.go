package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nishad/drugrake/internal/models"
)

// Output formats
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatTSV   = "tsv"
	formatJSON  = "json"
)

const maxCellWidth = 60

// writeTable renders t in the requested format.
func writeTable(w io.Writer, t *models.Table, format string) error {
	switch format {
	case formatTable, "":
		return writeAligned(w, t)
	case formatCSV:
		return writeDelimited(w, t, ',')
	case formatTSV:
		return writeDelimited(w, t, '\t')
	case formatJSON:
		rows := make([]map[string]string, 0, len(t.Rows))
		for _, r := range t.Rows {
			row := make(map[string]string, len(t.Columns))
			for i, c := range t.Columns {
				row[c] = r[i]
			}
			rows = append(rows, row)
		}
		return writeJSON(w, rows)
	default:
		return fmt.Errorf("unknown format %q (table|csv|tsv|json)", format)
	}
}

func writeAligned(w io.Writer, t *models.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(t.Columns, "\t")))
	for _, r := range t.Rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = truncate(c, maxCellWidth)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeDelimited(w io.Writer, t *models.Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to n runes with an ellipsis and flattens newlines.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
