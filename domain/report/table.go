package report

import (
	"strings"
)

/*
Table cells are HTML fragments: text cells are escaped when the table is built, link and
sentence cells carry markup. Markdown keeps the markup inline.
*/
type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Markdown renders every line, the last one included, terminated by "\n".
func (t *Table) Markdown() string {
	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(cell, "|", `\|`))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Header)

	sb.WriteString("|")
	for range t.Header {
		sb.WriteString(" ----- |")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		writeRow(row)
	}

	return sb.String()
}

// HTML renders one tag per line, without a trailing newline.
func (t *Table) HTML() string {
	lines := make([]string, 0, 8+len(t.Header)+len(t.Rows)*(len(t.Header)+2))

	lines = append(lines, "<table>", "<thead>", "<tr>")
	for _, cell := range t.Header {
		lines = append(lines, "<th>"+cell+"</th>")
	}
	lines = append(lines, "</tr>", "</thead>", "<tbody>")

	for _, row := range t.Rows {
		lines = append(lines, "<tr>")
		for _, cell := range row {
			lines = append(lines, "<td>"+cell+"</td>")
		}
		lines = append(lines, "</tr>")
	}

	lines = append(lines, "</tbody>", "</table>")
	return strings.Join(lines, "\n")
}
