package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

const (
	cellSeparator   = " | "
	headerSeparator = "-|-"
)

// RenderTable renders records as a pipe table: a header of labels, a dashed
// separator sized to each label, then one row per record. Null or absent
// values render as "-". The output has no trailing newline after the last row.
func RenderTable(records []domain.Record, columns []domain.Column) string {
	labels := make([]string, len(columns))
	dashes := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = c.Label
		dashes[i] = strings.Repeat("-", len(c.Label))
	}

	rows := make([]string, len(records))
	cells := make([]string, len(columns))
	for i, r := range records {
		for j, c := range columns {
			cells[j] = r.Display(c.Field)
		}
		rows[i] = strings.Join(cells, cellSeparator)
	}

	return strings.Join(labels, cellSeparator) + "\n" +
		strings.Join(dashes, headerSeparator) + "\n" +
		strings.Join(rows, "\n")
}

// RenderAppendix renders up to limit whole records of a reference table as
// numbered single-line JSON objects under a titled header.
func RenderAppendix(title string, table *domain.Table, limit int) string {
	subset := table.Head(limit)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n=== %s (%d total, showing %d) ===\n", title, table.Len(), len(subset))
	for i, r := range subset {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.CompactJSON())
	}
	return sb.String()
}

func sectionHeader(title string, shown, total int) string {
	return fmt.Sprintf("=== %s (%d of %d total) ===\n", title, shown, total)
}

func overviewHeader(title string, shown, total int) string {
	return fmt.Sprintf("=== %s (%d of %d) ===\n", title, shown, total)
}
