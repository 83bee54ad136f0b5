package normalize

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table alignment markers, written as the first and last character of
// the rebuilt separator cell.
const (
	alignLeft   = ":-"
	alignRight  = "-:"
	alignCenter = "::"
)

// countColumns counts the cells of a table row, tolerating both
// |-delimited and bare pipe styles.
func countColumns(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	pipes := strings.Count(trimmed, "|")
	if strings.HasPrefix(trimmed, "|") {
		if pipes == 0 {
			return 0
		}
		return pipes - 1
	}
	return pipes + 1
}

// formatTable rewrites a run of table lines with aligned columns:
// every cell padded to the column's display width with one-space
// bumpers, and the separator rebuilt from the alignment markers. A
// headerless table (separator first) keeps the separator first; a
// table with no separator at all gets a default left-aligned one
// after the header row. Returns nil when the lines do not form a
// recognizable table.
func formatTable(tableLines []string) []string {
	rows := make([]string, 0, len(tableLines))
	for _, l := range tableLines {
		if t := strings.TrimRight(l, "\n"); strings.TrimSpace(t) != "" {
			rows = append(rows, t)
		}
	}
	if len(rows) < 2 {
		return nil
	}
	for _, r := range rows {
		if !strings.Contains(r, "|") {
			return nil
		}
	}

	separatorIdx := -1
	headerless := false
	if IsSeparatorRow(rows[0]) {
		separatorIdx = 0
		headerless = true
	} else {
		for i, r := range rows {
			if IsSeparatorRow(r) {
				separatorIdx = i
				break
			}
		}
	}
	if separatorIdx == -1 {
		cols := countColumns(rows[0])
		if cols == 0 {
			return nil
		}
		cells := make([]string, cols)
		for i := range cells {
			cells[i] = " --- "
		}
		sep := "|" + strings.Join(cells, "|") + "|"
		rows = append(rows[:1], append([]string{sep}, rows[1:]...)...)
		separatorIdx = 1
	}

	justify := separatorAlignments(rows[separatorIdx])
	if len(justify) == 0 {
		return nil
	}
	columns := len(justify)

	var content [][]string
	for i, r := range rows {
		if i == separatorIdx {
			continue
		}
		stripped := strings.TrimSpace(r)
		stripped = strings.TrimPrefix(stripped, "|")
		stripped = strings.TrimSuffix(stripped, "|")
		var cells []string
		for _, c := range strings.Split(stripped, "|") {
			cells = append(cells, " "+strings.TrimSpace(c)+" ")
		}
		for len(cells) < columns {
			cells = append(cells, " ")
		}
		content = append(content, cells)
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = 2
	}
	for _, row := range content {
		for i := 0; i < columns && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	formatted := make([]string, 0, len(content)+1)
	for _, row := range content {
		cells := make([]string, columns)
		for i := 0; i < columns; i++ {
			cells[i] = padCell(row[i], justify[i], widths[i])
		}
		formatted = append(formatted, "|"+strings.Join(cells, "|")+"|")
	}

	sepCells := make([]string, columns)
	for i, j := range justify {
		sepCells[i] = j[:1] + strings.Repeat("-", widths[i]-2) + j[1:]
	}
	separator := "|" + strings.Join(sepCells, "|") + "|"

	if headerless {
		formatted = append([]string{separator}, formatted...)
	} else {
		formatted = append(formatted[:1], append([]string{separator}, formatted[1:]...)...)
	}
	return formatted
}

// separatorAlignments reads the alignment of each column from a
// separator row: "::" centered, "-:" right, anything else left.
func separatorAlignments(sep string) []string {
	trimmed := strings.TrimSpace(sep)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	if trimmed == "" {
		return nil
	}
	var justify []string
	for _, cell := range strings.Split(trimmed, "|") {
		cell = strings.TrimSpace(cell)
		ends := ""
		if cell != "" {
			ends = cell[:1] + cell[len(cell)-1:]
		}
		switch ends {
		case "::":
			justify = append(justify, alignCenter)
		case "-:":
			justify = append(justify, alignRight)
		default:
			justify = append(justify, alignLeft)
		}
	}
	return justify
}

func padCell(s, align string, width int) string {
	padding := width - runewidth.StringWidth(s)
	if padding < 0 {
		padding = 0
	}
	switch align {
	case alignCenter:
		left := padding / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
	case alignRight:
		return strings.Repeat(" ", padding) + s
	default:
		return s + strings.Repeat(" ", padding)
	}
}
