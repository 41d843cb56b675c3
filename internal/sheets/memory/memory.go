package memory

import (
	"context"
	"maps"
	"sync"

	"reimburse/internal/core"
	ports "reimburse/internal/sheets"
)

// Store is an in-process row source.
type Store struct {
	mu             sync.Mutex
	members        []core.Row
	reimbursements []core.Row
}

var _ ports.Source = (*Store)(nil)

func New(members, reimbursements []core.Row) *Store {
	return &Store{members: cloneRows(members), reimbursements: cloneRows(reimbursements)}
}

// AddMember appends a member row.
func (s *Store) AddMember(row core.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, maps.Clone(row))
}

// AddReimbursement appends a reimbursement row.
func (s *Store) AddReimbursement(row core.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reimbursements = append(s.reimbursements, maps.Clone(row))
}

// MemberRows returns copies of the stored member rows.
func (s *Store) MemberRows(_ context.Context) ([]core.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.members), nil
}

// ReimbursementRows returns copies of the stored reimbursement rows.
func (s *Store) ReimbursementRows(_ context.Context) ([]core.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.reimbursements), nil
}

func cloneRows(in []core.Row) []core.Row {
	out := make([]core.Row, 0, len(in))
	for _, r := range in {
		out = append(out, maps.Clone(r))
	}
	return out
}
