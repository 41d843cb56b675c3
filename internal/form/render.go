package form

import (
	"fmt"
	"strings"

	"reimburse/internal/core"
)

const decorator = "~~~~~~~~~~~~~~~"

// Org identifies the club on every form.
type Org struct {
	Name           string
	SOFCFundNum    string
	ProfitsFundNum string
}

// Renderer produces the fixed-layout text submitted to the finance office.
type Renderer struct {
	org Org
}

func NewRenderer(org Org) *Renderer {
	return &Renderer{org: org}
}

// Render lays out d. The total includes unclassified amounts. The CLCE
// amount is always 0; the line stays for compatibility with the office's form. Empty notes are dropped and any run
// of spaces is collapsed to one.
func (r *Renderer) Render(d Data) string {
	var notes []string
	for _, n := range d.Notes {
		if n != "" {
			notes = append(notes, n)
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, decorator)
	fmt.Fprintf(&b, "Name: %s\n", d.ProcessedBy)
	fmt.Fprintf(&b, "Organization name: %s\n", r.org.Name)
	fmt.Fprintf(&b, "SOFC fund number: %s\n", r.org.SOFCFundNum)
	fmt.Fprintf(&b, "Profits fund number: %s\n", r.org.ProfitsFundNum)
	fmt.Fprintln(&b, "Student or outside vendor? STUDENT")
	fmt.Fprintf(&b, "Name of student or vendor? %s\n", d.Name)
	fmt.Fprintf(&b, "B Number: %s\n", d.BannerID)
	fmt.Fprintf(&b, "Address: %s\n", d.Address)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Events:")
	fmt.Fprintln(&b, strings.Join(d.Events, "\n"))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Reason for reimbursement: %s\n", strings.Join(d.Purposes, ", "))
	fmt.Fprintf(&b, "Amount requesting from SOFC: %s\n", core.FormatAmount(d.SOFCTotal))
	fmt.Fprintf(&b, "Amount requesting from profits: %s\n", core.FormatAmount(d.ProfitsTotal))
	fmt.Fprintf(&b, "Total amount requested: %s\n", core.FormatAmount(d.Total))
	fmt.Fprintln(&b, "Amount requesting from CLCE: 0")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Additional notes to add:")
	fmt.Fprintln(&b, strings.Join(notes, "\n"))
	b.WriteString(decorator)

	return collapseSpaces(b.String())
}

// RenderForm builds and renders a member's form in one step.
func (r *Renderer) RenderForm(processedBy string, member core.Member, reimbursements []core.Reimbursement, members core.MemberLookup) core.RenderedForm {
	return core.RenderedForm{
		Username:    member.Username,
		ProcessedBy: processedBy,
		Body:        r.Render(BuildData(processedBy, member, reimbursements, members)),
	}
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
