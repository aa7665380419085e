package db

import (
	"fmt"
	"io"
	"strings"
)

// renderTable writes rows as an ASCII grid with a header line. Cells beyond
// the header width are still rendered; short rows pad with blanks.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 && len(rows) == 0 {
		return
	}

	widths := columnWidths(headers, rows)
	separator := gridSeparator(widths)

	fmt.Fprintln(w, separator)
	if len(headers) > 0 {
		fmt.Fprintln(w, gridRow(headers, widths))
		fmt.Fprintln(w, separator)
	}
	for _, row := range rows {
		fmt.Fprintln(w, gridRow(row, widths))
	}
	fmt.Fprintln(w, separator)
}

func columnWidths(headers []string, rows [][]string) []int {
	count := len(headers)
	for _, row := range rows {
		if len(row) > count {
			count = len(row)
		}
	}

	widths := make([]int, count)
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < count && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

func gridSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func gridRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", width-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
