package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type migration struct {
	Version    int
	Statements []string
}

// Statements stay within the SQL subset shared by Postgres and SQLite.
var migrations = []migration{
	{
		Version: 1,
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS categories (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				icon TEXT NOT NULL DEFAULT '',
				sort_order INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS products (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				price BIGINT NOT NULL CHECK (price >= 0),
				image TEXT NOT NULL DEFAULT '',
				category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
				description TEXT NOT NULL DEFAULT '',
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				sort_order INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_categories_sort ON categories(sort_order, name)`,
			`CREATE INDEX IF NOT EXISTS idx_products_sort ON products(sort_order, name)`,
			`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		},
	},
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.execTX(ctx, func(tx *sql.Tx) error {
			for i, stmt := range m.Statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d statement %d: %w", m.Version, i, err)
				}
			}
			_, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`), m.Version, time.Now().UTC())
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}
