package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"reimburse/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the flat member snapshot between runs.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSnapshot replaces the stored member table with snap.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snap map[string]map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteMembers(ctx); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}
	fetchedAt := r.now()
	for username, fields := range snap {
		err := q.UpsertMember(ctx, UpsertMemberParams{
			Username:  username,
			Name:      fields[core.FieldName],
			UnitBox:   fields[core.FieldUnitBox],
			BannerID:  fields[core.FieldBannerID],
			Year:      fields[core.FieldYear],
			FetchedAt: fetchedAt,
		})
		if err != nil {
			return fmt.Errorf("save member %s: %w", username, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Member snapshot saved", "members", len(snap))
	return nil
}

// LoadSnapshot returns the stored member table in Directory.Snapshot form.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) (map[string]map[string]string, error) {
	rows, err := r.queries.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	snap := make(map[string]map[string]string, len(rows))
	for _, m := range rows {
		snap[m.Username] = map[string]string{
			core.FieldUsername: m.Username,
			core.FieldName:     m.Name,
			core.FieldUnitBox:  m.UnitBox,
			core.FieldBannerID: m.BannerID,
			core.FieldYear:     m.Year,
		}
	}
	return snap, nil
}

// MemberCount returns the number of members in the snapshot.
func (r *SQLiteRepository) MemberCount(ctx context.Context) (int, error) {
	n, err := r.queries.CountMembers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return int(n), nil
}
