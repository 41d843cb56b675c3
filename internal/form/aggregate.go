// Package form folds a member's reimbursements into form data and renders
// the reimbursement request text.
package form

import (
	"github.com/shopspring/decimal"

	"reimburse/internal/core"
)

// MissingAccountWarning leads the notes when any purpose was not classified.
const MissingAccountWarning = "WARNING: SOME ACCOUNT INFO IS MISSING"

// Data is everything one member's form shows. It is built per render and
// not retained.
type Data struct {
	ProcessedBy string
	Name        string
	BannerID    string
	Address     string

	Events   []string
	Purposes []string
	// Notes holds one entry per reimbursement, empty ones included.
	Notes []string

	SOFCTotal    decimal.Decimal
	ProfitsTotal decimal.Decimal
	Total        decimal.Decimal

	// Unclassified counts reimbursements whose purpose matched no account.
	Unclassified int
}

// BuildData folds reimbursements, in order, into per-account totals and the
// event, purpose and note lists. Ownership of reimbursements is not checked.
func BuildData(processedBy string, member core.Member, reimbursements []core.Reimbursement, members core.MemberLookup) Data {
	d := Data{
		ProcessedBy:  processedBy,
		Name:         member.Name,
		BannerID:     member.BannerID,
		Address:      member.Address,
		Events:       make([]string, 0, len(reimbursements)),
		Purposes:     make([]string, 0, len(reimbursements)),
		Notes:        make([]string, 0, len(reimbursements)+1),
		SOFCTotal:    decimal.Zero,
		ProfitsTotal: decimal.Zero,
		Total:        decimal.Zero,
	}

	for _, r := range reimbursements {
		d.Events = append(d.Events, r.Event())
		d.Purposes = append(d.Purposes, r.Purpose)
		d.Notes = append(d.Notes, r.AdditionalNotes(members))

		switch r.Account() {
		case core.AccountSOFC:
			d.SOFCTotal = d.SOFCTotal.Add(r.Amount)
		case core.AccountProfits:
			d.ProfitsTotal = d.ProfitsTotal.Add(r.Amount)
		default:
			d.Unclassified++
		}
		d.Total = d.Total.Add(r.Amount)
	}

	if d.Unclassified > 0 {
		d.Notes = append([]string{MissingAccountWarning}, d.Notes...)
	}
	return d
}
