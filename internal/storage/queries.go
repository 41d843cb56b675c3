package storage

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type MemberRow struct {
	Username string
	Name     string
	UnitBox  string
	BannerID string
	Year     string
}

const deleteMembers = `DELETE FROM members`

func (q *Queries) DeleteMembers(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteMembers)
	return err
}

const upsertMember = `
INSERT INTO members (username, name, unit_box, banner_id, year, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
    name = excluded.name,
    unit_box = excluded.unit_box,
    banner_id = excluded.banner_id,
    year = excluded.year,
    fetched_at = excluded.fetched_at`

type UpsertMemberParams struct {
	Username  string
	Name      string
	UnitBox   string
	BannerID  string
	Year      string
	FetchedAt time.Time
}

func (q *Queries) UpsertMember(ctx context.Context, arg UpsertMemberParams) error {
	_, err := q.db.ExecContext(ctx, upsertMember,
		arg.Username, arg.Name, arg.UnitBox, arg.BannerID, arg.Year, arg.FetchedAt.UTC().Format(time.RFC3339))
	return err
}

const listMembers = `
SELECT username, name, unit_box, banner_id, year
FROM members
ORDER BY username`

func (q *Queries) ListMembers(ctx context.Context) ([]MemberRow, error) {
	rows, err := q.db.QueryContext(ctx, listMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MemberRow
	for rows.Next() {
		var i MemberRow
		if err := rows.Scan(&i.Username, &i.Name, &i.UnitBox, &i.BannerID, &i.Year); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countMembers = `SELECT COUNT(*) FROM members`

func (q *Queries) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countMembers).Scan(&n)
	return n, err
}
