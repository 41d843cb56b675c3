package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	AccountSOFC         AccountTag = "SOFC"
	AccountProfits      AccountTag = "PROFITS"
	AccountUnclassified AccountTag = "UNCLASSIFIED"
)

// UserNotFound is rendered in place of a member that is missing from the directory.
const UserNotFound = "USER NOT FOUND"

type (
	AccountTag string

	// Row is one loosely-typed spreadsheet row keyed by field name.
	Row map[string]any

	Member struct {
		Username string
		Name     string
		UnitBox  string
		BannerID string
		Year     int
		Address  string // derived from UnitBox
	}

	Reimbursement struct {
		Username      string
		Date          string
		EventName     string
		Purpose       string
		Amount        decimal.Decimal
		NumAttendees  int
		OtherStudents []string
		Notes         string
		Receipt       string
		ProcessedBy   string

		account AccountTag
		event   string
	}

	// ReimbursementFields are the constructor inputs of a Reimbursement.
	// Amount and NumAttendees accept strings or numbers and are coerced.
	ReimbursementFields struct {
		Username      string
		Date          string
		EventName     string
		Purpose       string
		Amount        any
		NumAttendees  any
		OtherStudents []string
		Notes         string
		Receipt       string
		ProcessedBy   string
	}

	// MemberLookup resolves usernames to members.
	MemberLookup interface {
		Lookup(username string) (Member, bool)
	}

	// RenderedForm is one member's finished form text, ready for a sink.
	RenderedForm struct {
		Username    string
		ProcessedBy string
		Body        string
	}
)

var (
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrUnknownAccount = errors.New("unknown account tag")
)

// TypeMismatchError reports a field that could not be coerced to its numeric type.
type TypeMismatchError struct {
	Field string
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for %s: %v", e.Field, e.Value)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func (t AccountTag) String() string {
	return string(t)
}

// Known reports whether t is one of the real funding accounts.
func (t AccountTag) Known() bool {
	return t == AccountSOFC || t == AccountProfits
}

// NewReimbursement coerces the numeric fields, classifies the purpose and
// caches the event summary. The result is not modified afterwards.
func NewReimbursement(f ReimbursementFields, accounts *AccountTable) (Reimbursement, error) {
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Reimbursement{}, &TypeMismatchError{Field: "amount", Value: f.Amount}
	}
	attendees, err := ParseCount(f.NumAttendees)
	if err != nil {
		return Reimbursement{}, &TypeMismatchError{Field: "num_attendees", Value: f.NumAttendees}
	}

	r := Reimbursement{
		Username:      f.Username,
		Date:          f.Date,
		EventName:     f.EventName,
		Purpose:       f.Purpose,
		Amount:        amount,
		NumAttendees:  attendees,
		OtherStudents: append([]string(nil), f.OtherStudents...),
		Notes:         f.Notes,
		Receipt:       f.Receipt,
		ProcessedBy:   f.ProcessedBy,
	}
	r.account = accounts.Classify(r.Purpose)
	r.event = fmt.Sprintf("%s; %s; %d; %s; %s",
		r.EventName, r.Date, r.NumAttendees, FormatAmount(r.Amount), r.account)
	return r, nil
}

// Account returns the funding account the purpose classified to.
func (r Reimbursement) Account() AccountTag {
	return r.account
}

// Event returns the one-line "name; date; attendees; amount; account" summary.
func (r Reimbursement) Event() string {
	return r.event
}

// AdditionalNotes lists the students paid for and any free-text notes.
// It returns "" when there is nothing to add.
func (r Reimbursement) AdditionalNotes(members MemberLookup) string {
	var blocks []string
	if r.NumAttendees > 0 && len(r.OtherStudents) > 0 {
		blocks = append(blocks, r.studentsBlock(members))
	}
	if r.Notes != "" {
		blocks = append(blocks, "Additional notes\n"+r.Notes)
	}
	if len(blocks) == 0 {
		return ""
	}
	return fmt.Sprintf("NOTES FOR EVENT %s:\n%s", r.event, strings.Join(blocks, "\n"))
}

func (r Reimbursement) studentsBlock(members MemberLookup) string {
	lines := []string{"The following students were paid for with this reimbursement:"}
	if !contains(r.OtherStudents, r.Username) {
		lines = append(lines, displayOrPlaceholder(members, r.Username))
	}
	for _, student := range r.OtherStudents {
		lines = append(lines, displayOrPlaceholder(members, student))
	}
	return strings.Join(lines, "\n")
}

// Display formats a member the way the finance office lists students.
func (m Member) Display() string {
	return fmt.Sprintf("%s, class year: %d, banner id: %s", m.Username, m.Year, m.BannerID)
}

func displayOrPlaceholder(members MemberLookup, username string) string {
	if members == nil {
		return UserNotFound
	}
	m, ok := members.Lookup(username)
	if !ok {
		return UserNotFound
	}
	return m.Display()
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
