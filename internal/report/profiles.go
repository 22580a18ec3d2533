package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/group"
	"fragment-generator/internal/model"
)

// maxCell caps the width of a table cell; longer values are truncated.
const maxCell = 60

// Row is one line of the profile table.
type Row struct {
	Profile        string
	ExtensionPoint string
	Fragments      int
	File           string
}

// Rows lists each group with the file its extension point is emitted into.
func Rows(groups []group.Group, filename func(model.ExtensionPointModel) string) []Row {
	rows := make([]Row, 0, len(groups))

	for _, g := range groups {
		ep := g.ExtensionPoint

		name := ep.ClassName + "." + ep.MethodName
		if ep.Namespace != "" {
			name = ep.Namespace + "." + name
		}

		rows = append(rows, Row{
			Profile:        ep.ProfileName,
			ExtensionPoint: name,
			Fragments:      len(g.Fragments),
			File:           filename(ep),
		})
	}

	return rows
}

// Profiles writes rows as an aligned table. Widths are measured in terminal
// cells so wide characters in profile names keep the columns straight.
func Profiles(w io.Writer, rows []Row) error {
	cells := make([][]string, 0, len(rows))

	for _, r := range rows {
		cells = append(cells, []string{
			runewidth.Truncate(r.Profile, maxCell, "..."),
			runewidth.Truncate(r.ExtensionPoint, maxCell, "..."),
			fmt.Sprint(r.Fragments),
			r.File,
		})
	}

	return writeTable(w, []string{"PROFILE", "EXTENSION POINT", "FRAGMENTS", "FILE"}, cells)
}

// Code is one line of the diagnostic code table.
type Code struct {
	ID       string
	Severity diagnostic.DiagnosticSeverity
	Title    string
}

// Codes writes the diagnostic codes as an aligned table.
func Codes(w io.Writer, codes []Code) error {
	cells := make([][]string, 0, len(codes))
	for _, c := range codes {
		cells = append(cells, []string{c.ID, c.Severity.String(), c.Title})
	}

	return writeTable(w, []string{"CODE", "SEVERITY", "TITLE"}, cells)
}

// writeTable pads every column but the last to its widest cell.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	cells := append([][]string{header}, rows...)

	widths := make([]int, len(header))
	for _, line := range cells {
		for i, c := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	var b strings.Builder

	for _, line := range cells {
		for i, c := range line {
			if i == len(line)-1 {
				b.WriteString(c)
				break
			}

			b.WriteString(runewidth.FillRight(c, widths[i]))
			b.WriteString("  ")
		}

		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())

	return err
}
