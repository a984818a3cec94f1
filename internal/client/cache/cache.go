// Package cache wires the local sqlite database used for offline reads and
// persisted client metadata. Migrations are applied with goose from the
// embedded FS on startup.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/haktiv/evidencekeeper/internal/client/migrations"
	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/client/repositories/checks"
	"github.com/haktiv/evidencekeeper/internal/client/repositories/controls"
	"github.com/haktiv/evidencekeeper/internal/client/repositories/evidence"
	"github.com/haktiv/evidencekeeper/internal/client/repositories/metadata"
	"github.com/haktiv/evidencekeeper/internal/dbx"
)

// Snapshot is everything the client caches from one successful refresh.
type Snapshot struct {
	Controls []models.Control
	Evidence []models.Evidence
	Checks   []models.ComplianceCheck
}

// Cache bundles the DB handle and the repositories over it.
type Cache struct {
	db       *sql.DB
	Metadata metadata.Repository
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the cache DB at dsn and applies pending
// migrations.
func Open(ctx context.Context, dsn string) (*Cache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{
		db:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveSnapshot replaces all three cached collections in one transaction, so
// a crash mid-write never leaves a half-updated cache.
func (c *Cache) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := controls.NewSQLiteRepository(tx).ReplaceAll(ctx, snap.Controls); err != nil {
			return err
		}
		if err := evidence.NewSQLiteRepository(tx).ReplaceAll(ctx, snap.Evidence); err != nil {
			return err
		}
		return checks.NewSQLiteRepository(tx).ReplaceAll(ctx, snap.Checks)
	})
}

// LoadSnapshot reads the cached collections.
func (c *Cache) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	ctl, err := controls.NewSQLiteRepository(c.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := evidence.NewSQLiteRepository(c.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	chk, err := checks.NewSQLiteRepository(c.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Controls: ctl, Evidence: ev, Checks: chk}, nil
}
