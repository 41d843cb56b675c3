package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reimburse/internal/amqp"
	"reimburse/internal/sheets"
	"reimburse/internal/sheets/csvfile"
	gsheet "reimburse/internal/sheets/google"
	"reimburse/internal/sheets/xlsx"
	"reimburse/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	source, err := f.createSource(ctx, config)
	if err != nil {
		return nil, err
	}

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// Initialize AMQP client (optional)
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without publishing", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	f.logger.Info("Initialized backend",
		"type", config.Type,
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Source:    source,
		Snapshots: repo,
		Publisher: amqpClient,
		Cleanup: func() error {
			var errs []error
			if amqpClient != nil {
				errs = append(errs, amqpClient.Close())
			}
			errs = append(errs, repo.Close())
			return errors.Join(errs...)
		},
	}, nil
}

func (f *DefaultFactory) createSource(ctx context.Context, config Config) (sheets.Source, error) {
	switch config.Type {
	case SheetsBackend:
		cli, err := gsheet.New(ctx, gsheet.Options{
			ReimbursementsSpreadsheetID: config.GoogleSpreadsheetID,
			MembersSpreadsheetID:        config.GoogleMembersSpreadsheetID,
			ReimbursementsSheet:         config.GoogleReimbursementsSheet,
			MembersSheet:                config.GoogleMembersSheet,
			ServiceAccountJSON:          config.GoogleServiceAccountJSON,
			ServiceAccountFile:          config.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets source")
		return cli, nil

	case XLSXBackend:
		wb, err := xlsx.New(config.XLSXPath, config.XLSXReimbursementsSheet, config.XLSXMembersSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize workbook source: %w", err)
		}
		f.logger.Info("Initialized workbook source", "path", config.XLSXPath)
		return wb, nil

	case CSVBackend:
		files, err := csvfile.New(config.CSVMembersPath, config.CSVReimbursementsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize CSV source: %w", err)
		}
		f.logger.Info("Initialized CSV source",
			"members", config.CSVMembersPath,
			"reimbursements", config.CSVReimbursementsPath)
		return files, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
