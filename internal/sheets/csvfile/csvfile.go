// Package csvfile reads the club spreadsheets from CSV exports whose header
// row names the fields.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"reimburse/internal/core"
	ports "reimburse/internal/sheets"
)

type memberRecord struct {
	Username string `csv:"username"`
	Name     string `csv:"name"`
	UnitBox  string `csv:"unit_box"`
	BannerID string `csv:"banner_id"`
	Year     string `csv:"year"`
}

type reimbursementRecord struct {
	Timestamp     string `csv:"timestamp"`
	Username      string `csv:"username"`
	Date          string `csv:"date"`
	EventName     string `csv:"event_name"`
	Purpose       string `csv:"purpose"`
	Amount        string `csv:"amount"`
	NumAttendees  string `csv:"num_attendees"`
	OtherStudents string `csv:"other_students"`
	Notes         string `csv:"notes"`
	Receipt       string `csv:"receipt"`
	IsDone        string `csv:"is_done"`
	ProcessedBy   string `csv:"processed_by"`
}

// Files is a row source backed by two CSV files.
type Files struct {
	membersPath        string
	reimbursementsPath string
}

var _ ports.Source = (*Files)(nil)

func New(membersPath, reimbursementsPath string) (*Files, error) {
	if strings.TrimSpace(membersPath) == "" || strings.TrimSpace(reimbursementsPath) == "" {
		return nil, errors.New("both members and reimbursements CSV paths are required")
	}
	return &Files{membersPath: membersPath, reimbursementsPath: reimbursementsPath}, nil
}

func (f *Files) MemberRows(ctx context.Context) ([]core.Row, error) {
	var records []memberRecord
	if err := unmarshalFile(f.membersPath, &records); err != nil {
		return nil, err
	}
	out := make([]core.Row, 0, len(records))
	for _, r := range records {
		row := core.Row{
			core.FieldUsername: r.Username,
			core.FieldName:     r.Name,
			core.FieldUnitBox:  r.UnitBox,
			core.FieldBannerID: r.BannerID,
			core.FieldYear:     r.Year,
		}
		if row.Username() == "" {
			continue
		}
		out = append(out, row)
	}
	slog.InfoContext(ctx, "Read members CSV", "path", f.membersPath, "rows", len(out))
	return out, nil
}

func (f *Files) ReimbursementRows(ctx context.Context) ([]core.Row, error) {
	var records []reimbursementRecord
	if err := unmarshalFile(f.reimbursementsPath, &records); err != nil {
		return nil, err
	}
	out := make([]core.Row, 0, len(records))
	for _, r := range records {
		row := core.Row{
			core.FieldTimestamp:     r.Timestamp,
			core.FieldUsername:      r.Username,
			core.FieldDate:          r.Date,
			core.FieldEventName:     r.EventName,
			core.FieldPurpose:       r.Purpose,
			core.FieldAmount:        r.Amount,
			core.FieldNumAttendees:  r.NumAttendees,
			core.FieldOtherStudents: r.OtherStudents,
			core.FieldNotes:         r.Notes,
			core.FieldReceipt:       r.Receipt,
			core.FieldIsDone:        r.IsDone,
			core.FieldProcessedBy:   r.ProcessedBy,
		}
		if row.Username() == "" {
			continue
		}
		out = append(out, row)
	}
	slog.InfoContext(ctx, "Read reimbursements CSV", "path", f.reimbursementsPath, "rows", len(out))
	return out, nil
}

func unmarshalFile(path string, out any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.UnmarshalFile(file, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
