package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names shared by the row sources and the member snapshot.
const (
	FieldTimestamp     = "timestamp"
	FieldUsername      = "username"
	FieldDate          = "date"
	FieldEventName     = "event_name"
	FieldPurpose       = "purpose"
	FieldAmount        = "amount"
	FieldNumAttendees  = "num_attendees"
	FieldOtherStudents = "other_students"
	FieldNotes         = "notes"
	FieldReceipt       = "receipt"
	FieldIsDone        = "is_done"
	FieldProcessedBy   = "processed_by"

	FieldName     = "name"
	FieldUnitBox  = "unit_box"
	FieldBannerID = "banner_id"
	FieldYear     = "year"
)

// String returns the trimmed text of a cell; absent cells are "".
func (r Row) String(field string) string {
	return CellString(r[field])
}

// Username returns the row's username cell.
func (r Row) Username() string {
	return r.String(FieldUsername)
}

// IsDone reports whether the row has already been processed.
func (r Row) IsDone() bool {
	switch v := r[FieldIsDone].(type) {
	case bool:
		return v
	case nil:
		return false
	}
	switch strings.ToLower(r.String(FieldIsDone)) {
	case "true", "yes", "y", "x", "1", "done":
		return true
	}
	return false
}

// ReimbursementFromRow builds a Reimbursement from a reimbursement-sheet row.
func ReimbursementFromRow(row Row, accounts *AccountTable) (Reimbursement, error) {
	return NewReimbursement(ReimbursementFields{
		Username:      row.Username(),
		Date:          row.String(FieldDate),
		EventName:     row.String(FieldEventName),
		Purpose:       row.String(FieldPurpose),
		Amount:        rawOrEmpty(row[FieldAmount]),
		NumAttendees:  rawOrEmpty(row[FieldNumAttendees]),
		OtherStudents: SplitUsernames(row.String(FieldOtherStudents)),
		Notes:         row.String(FieldNotes),
		Receipt:       row.String(FieldReceipt),
		ProcessedBy:   row.String(FieldProcessedBy),
	}, accounts)
}

// MemberFromRow builds a Member from a member-sheet row.
func MemberFromRow(row Row, book AddressBook) (Member, error) {
	return NewMember(MemberFields{
		Username: row.Username(),
		Name:     row.String(FieldName),
		UnitBox:  row.String(FieldUnitBox),
		BannerID: row.String(FieldBannerID),
		Year:     rawOrEmpty(row[FieldYear]),
	}, book)
}

// SplitUsernames parses a comma separated list of usernames, dropping blanks.
func SplitUsernames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if u := strings.TrimSpace(part); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// CellString renders a raw cell value as text. Whole floats lose their
// fractional part so numeric ids read back unchanged.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func rawOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
