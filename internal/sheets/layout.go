// Package sheets defines the row sources the form pipeline reads from and
// the column layouts of the club's spreadsheets.
package sheets

import (
	"fmt"
	"sort"
	"strings"

	"reimburse/internal/core"
)

// Layout describes where data sits in a sheet: StartRow is the 1-based row
// of the first record and Columns maps field names to 1-based columns.
type Layout struct {
	StartRow int
	Columns  map[string]int
}

// ReimbursementLayout is the layout of the reimbursement request sheet.
var ReimbursementLayout = Layout{
	StartRow: 3,
	Columns: map[string]int{
		core.FieldTimestamp:     1,
		core.FieldUsername:      3,
		core.FieldDate:          4,
		core.FieldEventName:     5,
		core.FieldPurpose:       6,
		core.FieldAmount:        7,
		core.FieldNumAttendees:  8,
		core.FieldOtherStudents: 9,
		core.FieldNotes:         11,
		core.FieldReceipt:       12,
		core.FieldIsDone:        13,
		core.FieldProcessedBy:   14,
	},
}

// MemberLayout is the layout of the member sheet.
var MemberLayout = Layout{
	StartRow: 2,
	Columns: map[string]int{
		core.FieldUnitBox:  1,
		core.FieldName:     2,
		core.FieldBannerID: 3,
		core.FieldUsername: 4,
		core.FieldYear:     5,
	},
}

// LastColumn returns the highest column the layout reads.
func (l Layout) LastColumn() int {
	last := 0
	for _, c := range l.Columns {
		if c > last {
			last = c
		}
	}
	return last
}

// A1Range returns the A1 range covering the layout's data on sheet.
func (l Layout) A1Range(sheet string) string {
	return fmt.Sprintf("%s!A%d:%s", quoteSheet(sheet), l.StartRow, ColumnLetter(l.LastColumn()))
}

// Rows converts a cell matrix whose first element is sheet row StartRow
// into rows keyed by field name. Rows without a username are skipped.
func (l Layout) Rows(values [][]any) []core.Row {
	fields := make([]string, 0, len(l.Columns))
	for f := range l.Columns {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []core.Row
	for _, cells := range values {
		row := make(core.Row, len(fields))
		for _, f := range fields {
			idx := l.Columns[f] - 1
			if idx >= 0 && idx < len(cells) {
				row[f] = cells[idx]
			}
		}
		if row.Username() == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FromStrings adapts a string matrix (as read from files) to Rows input.
func FromStrings(in [][]string) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		cells := make([]any, len(r))
		for j, v := range r {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

// ColumnLetter returns the A1 column name for a 1-based index.
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

func quoteSheet(name string) string {
	if strings.ContainsAny(name, " '!") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}
