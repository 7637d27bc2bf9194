package shell

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"codeberg.org/snonux/hanki/internal/ankiconnect"
)

// renderTable formats headers and rows as a rounded table.
func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// namedField pairs a field name with its value for display.
type namedField struct {
	Name  string
	Value string
}

// displayFields returns a note's fields in their template display order.
func displayFields(note ankiconnect.Note) []namedField {
	fields := make([]namedField, 0, len(note.Fields))
	order := make(map[string]int, len(note.Fields))
	for name, field := range note.Fields {
		fields = append(fields, namedField{Name: name, Value: field.Value})
		order[name] = field.Order
	}
	sort.Slice(fields, func(i, j int) bool {
		return order[fields[i].Name] < order[fields[j].Name]
	})
	return fields
}

// clear starts a fresh screen when stdout is a terminal, otherwise just
// separates sections.
func (s *Shell) clear() {
	if s.ClearScreen {
		fmt.Fprint(s.out, "\033[2J\033[H")
		return
	}
	fmt.Fprintln(s.out)
}

// truncate shortens a value for one-line previews.
func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max]) + "..."
}
