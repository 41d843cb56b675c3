package sheets

import (
	"context"

	"reimburse/internal/core"
)

// Ports for inbound spreadsheet adapters.
type (
	// MemberSource yields member rows in sheet order.
	MemberSource interface {
		MemberRows(ctx context.Context) ([]core.Row, error)
	}

	// ReimbursementSource yields reimbursement rows in submission order.
	ReimbursementSource interface {
		ReimbursementRows(ctx context.Context) ([]core.Row, error)
	}

	// Source provides both tables.
	Source interface {
		MemberSource
		ReimbursementSource
	}
)
