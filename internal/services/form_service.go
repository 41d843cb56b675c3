package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"reimburse/internal/core"
	"reimburse/internal/form"
	"reimburse/internal/log"
	"reimburse/internal/sheets"
)

// SnapshotStore persists the flat member table between runs.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap map[string]map[string]string) error
	LoadSnapshot(ctx context.Context) (map[string]map[string]string, error)
	MemberCount(ctx context.Context) (int, error)
}

// Sink receives rendered forms.
type Sink interface {
	Deliver(ctx context.Context, f core.RenderedForm) error
}

// Options selects what a Generate run produces.
type Options struct {
	// ProcessedBy overrides the processed_by cell of the reimbursement rows.
	ProcessedBy string
	// Members restricts output to these usernames. Empty means everyone.
	Members []string
	// RefreshMembers refetches the member sheet before rendering.
	RefreshMembers bool
}

// Summary reports the outcome of a Generate run.
type Summary struct {
	Forms          int
	Reimbursements int
	Skipped        int
	Done           int
	Unclassified   int
	MissingMembers []string
}

// FormService turns spreadsheet rows into one rendered form per member.
type FormService struct {
	source    sheets.Source
	snapshots SnapshotStore
	accounts  *core.AccountTable
	book      core.AddressBook
	renderer  *form.Renderer
	sinks     []Sink
	logger    *log.Logger
}

func NewFormService(source sheets.Source, snapshots SnapshotStore, accounts *core.AccountTable,
	book core.AddressBook, renderer *form.Renderer, logger *log.Logger, sinks ...Sink) *FormService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if accounts == nil {
		accounts = core.DefaultAccountTable()
	}
	return &FormService{
		source:    source,
		snapshots: snapshots,
		accounts:  accounts,
		book:      book,
		renderer:  renderer,
		sinks:     sinks,
		logger:    logger.WithComponent(log.ComponentForm),
	}
}

// SyncMembers fetches the member sheet and overwrites the snapshot. It
// returns the new directory and the number of rows that failed coercion.
func (s *FormService) SyncMembers(ctx context.Context) (*core.Directory, int, error) {
	rows, err := s.source.MemberRows(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch members: %w", err)
	}
	dir, skipped := s.buildDirectory(ctx, rows)
	if s.snapshots != nil {
		if err := s.snapshots.SaveSnapshot(ctx, dir.Snapshot()); err != nil {
			return nil, skipped, fmt.Errorf("save member snapshot: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "Members synced",
		log.FieldOperation, log.OpSync,
		log.FieldMembers, dir.Len(),
		log.FieldSkipped, skipped)
	return dir, skipped, nil
}

// LoadDirectory returns the member directory from the snapshot, syncing
// first when refresh is set or the snapshot is empty.
func (s *FormService) LoadDirectory(ctx context.Context, refresh bool) (*core.Directory, error) {
	if !refresh && s.snapshots != nil {
		n, err := s.snapshots.MemberCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("count snapshot members: %w", err)
		}
		if n > 0 {
			snap, err := s.snapshots.LoadSnapshot(ctx)
			if err != nil {
				return nil, fmt.Errorf("load member snapshot: %w", err)
			}
			dir, err := core.DirectoryFromSnapshot(snap, s.book)
			if err != nil {
				return nil, fmt.Errorf("decode member snapshot: %w", err)
			}
			s.logger.DebugContext(ctx, "Members loaded from snapshot", log.FieldMembers, dir.Len())
			return dir, nil
		}
		s.logger.InfoContext(ctx, "Member snapshot empty, fetching from source")
	}
	dir, _, err := s.SyncMembers(ctx)
	return dir, err
}

// PendingReimbursements parses the reimbursement rows, dropping done rows
// and rows whose numeric fields fail coercion.
func (s *FormService) PendingReimbursements(ctx context.Context, rows []core.Row) ([]core.Reimbursement, Summary) {
	var sum Summary
	out := make([]core.Reimbursement, 0, len(rows))
	for _, row := range rows {
		if row.IsDone() {
			sum.Done++
			continue
		}
		r, err := core.ReimbursementFromRow(row, s.accounts)
		if err != nil {
			sum.Skipped++
			fields := log.NewFields().
				WithOperation(log.OpParse).
				WithError(err).
				WithReimbursement(row.Username(), row.String(core.FieldEventName), row.String(core.FieldPurpose))
			var tm *core.TypeMismatchError
			if errors.As(err, &tm) {
				fields = fields.WithErrorType(log.ErrorTypeTypeMismatch)
				fields[log.FieldField] = tm.Field
			}
			s.logger.WarnContext(ctx, "Skipping reimbursement row", fields.ToSlice()...)
			continue
		}
		if r.Account() == core.AccountUnclassified {
			sum.Unclassified++
			s.logger.WarnContext(ctx, "Purpose matches no account",
				log.FieldErrorType, log.ErrorTypeUnclassified,
				log.FieldUsername, r.Username,
				log.FieldPurpose, r.Purpose)
		}
		out = append(out, r)
	}
	sum.Reimbursements = len(out)
	return out, sum
}

// Generate renders and delivers one form per member with pending
// reimbursements. Members are processed one at a time in the order their
// first reimbursement appears.
func (s *FormService) Generate(ctx context.Context, opts Options) (Summary, error) {
	var (
		dir  *core.Directory
		rows []core.Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dir, err = s.LoadDirectory(gctx, opts.RefreshMembers)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.source.ReimbursementRows(gctx)
		if err != nil {
			return fmt.Errorf("fetch reimbursements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	reimbursements, sum := s.PendingReimbursements(ctx, rows)
	order, groups := GroupByMember(reimbursements, opts.Members)

	for _, username := range order {
		batch := groups[username]
		member, ok := dir.Lookup(username)
		if !ok {
			member = core.Member{Username: username, Name: core.UserNotFound}
			sum.MissingMembers = append(sum.MissingMembers, username)
			s.logger.WarnContext(ctx, "Submitter not in member directory",
				log.FieldErrorType, log.ErrorTypeMissingMember,
				log.FieldUsername, username)
		}

		processedBy := opts.ProcessedBy
		if processedBy == "" {
			processedBy = firstProcessedBy(batch)
		}

		rendered := s.renderer.RenderForm(processedBy, member, batch, dir)
		if err := s.deliver(ctx, rendered); err != nil {
			return sum, err
		}
		sum.Forms++
		s.logger.InfoContext(ctx, "Form rendered",
			log.FieldOperation, log.OpRender,
			log.FieldUsername, username,
			log.FieldRows, len(batch))
	}

	s.logger.InfoContext(ctx, "Forms generated",
		log.FieldForms, sum.Forms,
		log.FieldRows, sum.Reimbursements,
		log.FieldSkipped, sum.Skipped)
	return sum, nil
}

func (s *FormService) deliver(ctx context.Context, f core.RenderedForm) error {
	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, f); err != nil {
			return fmt.Errorf("deliver form for %s: %w", f.Username, err)
		}
	}
	return nil
}

// GroupByMember groups reimbursements by username in first-seen order,
// keeping input order within each group. A non-empty only list restricts
// the result to those usernames.
func GroupByMember(rs []core.Reimbursement, only []string) ([]string, map[string][]core.Reimbursement) {
	var keep map[string]bool
	if len(only) > 0 {
		keep = make(map[string]bool, len(only))
		for _, u := range only {
			keep[u] = true
		}
	}
	var order []string
	groups := make(map[string][]core.Reimbursement)
	for _, r := range rs {
		if keep != nil && !keep[r.Username] {
			continue
		}
		if _, seen := groups[r.Username]; !seen {
			order = append(order, r.Username)
		}
		groups[r.Username] = append(groups[r.Username], r)
	}
	return order, groups
}

func firstProcessedBy(rs []core.Reimbursement) string {
	for _, r := range rs {
		if r.ProcessedBy != "" {
			return r.ProcessedBy
		}
	}
	return ""
}

func (s *FormService) buildDirectory(ctx context.Context, rows []core.Row) (*core.Directory, int) {
	members := make([]core.Member, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		m, err := core.MemberFromRow(row, s.book)
		if err != nil {
			skipped++
			s.logger.WarnContext(ctx, "Skipping member row",
				log.FieldOperation, log.OpSync,
				log.FieldErrorType, log.ErrorTypeTypeMismatch,
				log.FieldUsername, row.Username(),
				log.FieldError, err)
			continue
		}
		members = append(members, m)
	}
	return core.NewDirectory(members), skipped
}
