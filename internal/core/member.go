package core

import (
	"fmt"
	"strings"
)

// MemberFields are the constructor inputs of a Member. Year accepts a
// string or a number.
type MemberFields struct {
	Username string
	Name     string
	UnitBox  string
	BannerID string
	Year     any
}

// AddressBook turns a mailbox unit number into a mailing address.
type AddressBook struct {
	// Format is a printf pattern with a single %s for the unit box.
	Format string
}

// Address returns the mailing address for unitBox.
func (b AddressBook) Address(unitBox string) string {
	if strings.TrimSpace(b.Format) == "" || !strings.Contains(b.Format, "%s") {
		return unitBox
	}
	return fmt.Sprintf(b.Format, unitBox)
}

// NewMember coerces the enrollment year and derives the mailing address.
func NewMember(f MemberFields, book AddressBook) (Member, error) {
	year, err := ParseCount(f.Year)
	if err != nil || year <= 0 {
		return Member{}, &TypeMismatchError{Field: "year", Value: f.Year}
	}
	return Member{
		Username: f.Username,
		Name:     f.Name,
		UnitBox:  f.UnitBox,
		BannerID: f.BannerID,
		Year:     year,
		Address:  book.Address(f.UnitBox),
	}, nil
}
