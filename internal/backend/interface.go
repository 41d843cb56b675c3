package backend

import (
	"context"

	"reimburse/internal/amqp"
	"reimburse/internal/sheets"
	"reimburse/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult bundles the row source with the member snapshot store and
// the optional form publisher.
type BackendResult struct {
	Source    sheets.Source
	Snapshots *storage.SQLiteRepository
	// Publisher is nil when AMQP is not configured or unreachable.
	Publisher *amqp.Client
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// Member snapshot
	SQLiteDBPath string

	// Optional form publishing
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets specific
	GoogleSpreadsheetID        string
	GoogleMembersSpreadsheetID string
	GoogleReimbursementsSheet  string
	GoogleMembersSheet         string
	GoogleServiceAccountJSON   string
	GoogleServiceAccountFile   string

	// Workbook specific
	XLSXPath                string
	XLSXReimbursementsSheet string
	XLSXMembersSheet        string

	// CSV specific
	CSVReimbursementsPath string
	CSVMembersPath        string
}

// BackendType represents the type of backend
type BackendType string

const (
	SheetsBackend BackendType = "sheets"
	XLSXBackend   BackendType = "xlsx"
	CSVBackend    BackendType = "csv"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SheetsBackend, XLSXBackend, CSVBackend:
		return true
	default:
		return false
	}
}
