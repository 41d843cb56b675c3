package backend

import (
	"fmt"

	"reimburse/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		GoogleSpreadsheetID:        appConfig.GoogleSpreadsheetID,
		GoogleMembersSpreadsheetID: appConfig.GoogleMembersSpreadsheetID,
		GoogleReimbursementsSheet:  appConfig.GoogleReimbursementsSheet,
		GoogleMembersSheet:         appConfig.GoogleMembersSheet,
		GoogleServiceAccountJSON:   appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile:   appConfig.GoogleServiceAccountFile,

		XLSXPath:                appConfig.XLSXPath,
		XLSXReimbursementsSheet: appConfig.XLSXReimbursementsSheet,
		XLSXMembersSheet:        appConfig.XLSXMembersSheet,

		CSVReimbursementsPath: appConfig.CSVReimbursementsPath,
		CSVMembersPath:        appConfig.CSVMembersPath,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required")
	}

	switch c.Type {
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
		// Credentials may also come from GOOGLE_APPLICATION_CREDENTIALS at client creation.

	case XLSXBackend:
		if c.XLSXPath == "" {
			return fmt.Errorf("workbook path is required for xlsx backend")
		}

	case CSVBackend:
		if c.CSVReimbursementsPath == "" || c.CSVMembersPath == "" {
			return fmt.Errorf("both CSV paths are required for csv backend")
		}
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{SheetsBackend, XLSXBackend, CSVBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	strings := make([]string, len(types))
	for i, t := range types {
		strings[i] = t.String()
	}
	return strings
}
