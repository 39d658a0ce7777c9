// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/texdoc

package texdoc

import (
	"fmt"
	"sort"
	"strings"
)

// Column is one named table column with ordered cell values.
type Column struct {
	Name   string
	Values []string
}

// Table holds ordered named columns for tabular rendering.
type Table struct {
	columns []Column
}

// NewTable builds a table with caller-defined column order.
func NewTable(columns ...Column) Table {
	return Table{columns: columns}
}

// TableFromMap builds a table with deterministic column order (sorted names).
func TableFromMap(values map[string][]string) Table {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	sort.Strings(names)

	columns := make([]Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, Column{Name: name, Values: values[name]})
	}

	return Table{columns: columns}
}

// TableStyle controls tabular layout; the zero value matches defaults.
type TableStyle struct {
	// NoFirstColumnRule suppresses the vertical rule after the first column.
	NoFirstColumnRule bool
	// PlainRows disables alternating row colors.
	PlainRows bool
	// ColumnFormat is an explicit column format (for example "rr|ll") and
	// overrides the generated one.
	ColumnFormat string
}

// validate checks table shape before rendering.
func (table Table) validate() error {
	if len(table.columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrTableShape)
	}

	rows := len(table.columns[0].Values)
	for _, column := range table.columns {
		if strings.TrimSpace(column.Name) == "" {
			return fmt.Errorf("%w: unnamed column", ErrTableShape)
		}

		if len(column.Values) != rows {
			return fmt.Errorf("%w: column %q has %d values, want %d",
				ErrTableShape, column.Name, len(column.Values), rows)
		}
	}

	return nil
}

// renderTable converts validated table into a LaTeX table fragment.
func renderTable(table Table, caption string, style TableStyle) (string, error) {
	if err := table.validate(); err != nil {
		return "", err
	}

	headers := make([]string, 0, len(table.columns))
	for _, column := range table.columns {
		headers = append(headers, column.Name)
	}

	var out strings.Builder
	out.WriteString("\\begin{table}[h]\n\\centering\n")
	if !style.PlainRows {
		out.WriteString("\\rowcolors{2}{gray!25}{white}\n")
	}

	out.WriteString(fmt.Sprintf("\\caption{%s}\n", caption))
	out.WriteString(fmt.Sprintf("\\begin{tabular}{%s}\\hline\n", columnFormat(style, len(headers))))
	if !style.PlainRows {
		out.WriteString("\\rowcolor{gray!50}\n")
	}

	out.WriteString(strings.Join(headers, " & "))
	out.WriteString(" \\\\\\hline\n")

	for row := 0; row < len(table.columns[0].Values); row++ {
		cells := make([]string, 0, len(table.columns))
		for _, column := range table.columns {
			cells = append(cells, column.Values[row])
		}

		out.WriteString(strings.Join(cells, " & "))
		out.WriteString(" \\\\\n")
	}

	out.WriteString("\\end{tabular}\n\\end{table}")
	return out.String(), nil
}

// columnFormat selects explicit or generated tabular column format.
func columnFormat(style TableStyle, columns int) string {
	if format := strings.TrimSpace(style.ColumnFormat); format != "" {
		return format
	}

	if style.NoFirstColumnRule {
		return strings.Repeat("l", columns)
	}

	return "l|" + strings.Repeat("l", columns-1)
}
