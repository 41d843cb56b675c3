package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"reimburse/internal/core"
	"reimburse/internal/form"
)

type Config struct {
	// Data source selection: sheets, xlsx or csv
	DataBackend string

	// Member snapshot
	SQLiteDBPath string

	// Google Sheets
	GoogleSpreadsheetID         string
	GoogleMembersSpreadsheetID  string
	GoogleReimbursementsSheet   string
	GoogleMembersSheet          string
	GoogleServiceAccountJSON    string
	GoogleServiceAccountFile    string
	GoogleApplicationCredential string

	// Local workbook
	XLSXPath                string
	XLSXReimbursementsSheet string
	XLSXMembersSheet        string

	// CSV exports
	CSVReimbursementsPath string
	CSVMembersPath        string

	// Form content
	AccountsFile   string
	OrgName        string
	SOFCFundNum    string
	ProfitsFundNum string
	AddressFormat  string
	ProcessedBy    string

	// Output
	OutputDir string

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DataBackend:  getEnv("DATA_BACKEND", "csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/reimburse.db"),

		GoogleSpreadsheetID:         getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleMembersSpreadsheetID:  getEnv("GOOGLE_MEMBERS_SPREADSHEET_ID", ""),
		GoogleReimbursementsSheet:   getEnv("GOOGLE_REIMBURSEMENTS_SHEET", "Reimbursements"),
		GoogleMembersSheet:          getEnv("GOOGLE_MEMBERS_SHEET", "Members"),
		GoogleServiceAccountJSON:    getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile:    getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleApplicationCredential: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		XLSXPath:                getEnv("XLSX_PATH", ""),
		XLSXReimbursementsSheet: getEnv("XLSX_REIMBURSEMENTS_SHEET", "Reimbursements"),
		XLSXMembersSheet:        getEnv("XLSX_MEMBERS_SHEET", "Members"),

		CSVReimbursementsPath: getEnv("CSV_REIMBURSEMENTS_PATH", "./data/reimbursements.csv"),
		CSVMembersPath:        getEnv("CSV_MEMBERS_PATH", "./data/members.csv"),

		AccountsFile:   getEnv("ACCOUNTS_FILE", ""),
		OrgName:        getEnv("ORG_NAME", ""),
		SOFCFundNum:    getEnv("SOFC_FUND_NUM", ""),
		ProfitsFundNum: getEnv("PROFITS_FUND_NUM", ""),
		AddressFormat:  getEnv("ADDRESS_FORMAT", "%s"),
		ProcessedBy:    getEnv("PROCESSED_BY", ""),

		OutputDir: getEnv("OUTPUT_DIR", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "reimburse"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "reimbursement_forms"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"sheets", "xlsx", "csv"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	switch c.DataBackend {
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" && c.GoogleApplicationCredential == "" {
			errors = append(errors, "one of GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS must be provided for sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	case "xlsx":
		if c.XLSXPath == "" {
			errors = append(errors, "XLSX_PATH is required when using xlsx backend")
		} else if _, err := os.Stat(c.XLSXPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("workbook does not exist: %s", c.XLSXPath))
		}
	case "csv":
		if c.CSVReimbursementsPath == "" || c.CSVMembersPath == "" {
			errors = append(errors, "CSV_REIMBURSEMENTS_PATH and CSV_MEMBERS_PATH are required when using csv backend")
		}
	}

	if c.AccountsFile != "" {
		if _, err := os.Stat(c.AccountsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("accounts file does not exist: %s", c.AccountsFile))
		}
	}

	if c.AddressFormat != "" && strings.Count(c.AddressFormat, "%s") != 1 {
		errors = append(errors, fmt.Sprintf("invalid address format '%s': must contain exactly one %%s", c.AddressFormat))
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("output path '%s' is not a directory", c.OutputDir))
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// EnsureDataDir creates the directory holding the SQLite snapshot.
func (c *Config) EnsureDataDir() error {
	dir := filepath.Dir(c.SQLiteDBPath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create SQLite database directory '%s': %w", dir, err)
	}
	return nil
}

// Org returns the organization block printed on every form.
func (c *Config) Org() form.Org {
	return form.Org{
		Name:           c.OrgName,
		SOFCFundNum:    c.SOFCFundNum,
		ProfitsFundNum: c.ProfitsFundNum,
	}
}

// AddressBook returns the unit box to address mapping.
func (c *Config) AddressBook() core.AddressBook {
	return core.AddressBook{Format: c.AddressFormat}
}

// AccountTable loads ACCOUNTS_FILE, or the built-in table when unset.
func (c *Config) AccountTable() (*core.AccountTable, error) {
	if c.AccountsFile == "" {
		return core.DefaultAccountTable(), nil
	}
	return core.LoadAccountTable(c.AccountsFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
