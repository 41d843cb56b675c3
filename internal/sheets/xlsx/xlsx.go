// Package xlsx reads the club spreadsheets from a downloaded .xlsx workbook.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"reimburse/internal/core"
	ports "reimburse/internal/sheets"
)

// Workbook is a row source backed by one workbook file holding both sheets.
type Workbook struct {
	path                string
	reimbursementsSheet string
	membersSheet        string
}

var _ ports.Source = (*Workbook)(nil)

func New(path, reimbursementsSheet, membersSheet string) (*Workbook, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("missing workbook path")
	}
	if strings.TrimSpace(reimbursementsSheet) == "" {
		reimbursementsSheet = "Reimbursements"
	}
	if strings.TrimSpace(membersSheet) == "" {
		membersSheet = "Members"
	}
	return &Workbook{path: path, reimbursementsSheet: reimbursementsSheet, membersSheet: membersSheet}, nil
}

func (w *Workbook) MemberRows(ctx context.Context) ([]core.Row, error) {
	return w.read(ctx, w.membersSheet, ports.MemberLayout)
}

func (w *Workbook) ReimbursementRows(ctx context.Context) ([]core.Row, error) {
	return w.read(ctx, w.reimbursementsSheet, ports.ReimbursementLayout)
}

func (w *Workbook) read(ctx context.Context, sheet string, layout ports.Layout) ([]core.Row, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	skip := layout.StartRow - 1
	if skip > len(all) {
		skip = len(all)
	}
	rows := layout.Rows(ports.FromStrings(all[skip:]))
	slog.InfoContext(ctx, "Read workbook sheet", "path", w.path, "sheet", sheet, "rows", len(rows))
	return rows, nil
}
