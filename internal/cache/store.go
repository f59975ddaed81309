// Package cache persists wiki page metadata keyed by page name.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RobinCoderZhao/archtranslator/pkg/storage"
)

// ErrNotCached is returned by Get for pages without a cache entry.
var ErrNotCached = errors.New("page not cached")

// PageType classifies a cached page.
type PageType string

const (
	English    PageType = "english"
	Translated PageType = "translated"
	Redirect   PageType = "redirect"
)

// Valid reports whether t is a known page type.
func (t PageType) Valid() bool {
	switch t {
	case English, Translated, Redirect:
		return true
	}
	return false
}

// PageInfo is a cache entry.
type PageInfo struct {
	PageName         string    `json:"page_name"`
	LatestRevisionID int64     `json:"latest_revision_id"`
	Type             PageType  `json:"type"`
	RedirectsTo      string    `json:"redirects_to,omitempty"` // set for Redirect pages only
	UpdatedAt        time.Time `json:"updated_at"`
}

// Schema is the SQLite schema for the page cache.
const Schema = `
CREATE TABLE IF NOT EXISTS page_info (
    page_name          TEXT PRIMARY KEY,
    latest_revision_id INTEGER NOT NULL DEFAULT 0,
    type               TEXT NOT NULL,
    redirects_to       TEXT,
    updated_at         TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_page_info_type ON page_info(type);
`

// Store provides page-info persistence.
type Store struct {
	db  *storage.DB
	now func() time.Time
}

// Open opens the cache database and initializes the schema.
func Open(ctx context.Context, cfg storage.Config) (*Store, error) {
	db, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Set inserts or replaces the entry for info.PageName.
func (s *Store) Set(ctx context.Context, info PageInfo) error {
	if info.PageName == "" {
		return fmt.Errorf("set page info: empty page name")
	}
	if !info.Type.Valid() {
		return fmt.Errorf("set page info %s: unknown type %q", info.PageName, info.Type)
	}
	if info.Type != Redirect {
		info.RedirectsTo = ""
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO page_info (page_name, latest_revision_id, type, redirects_to, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, info.PageName, info.LatestRevisionID, string(info.Type), nullString(info.RedirectsTo), s.now().UTC())
	if err != nil {
		return fmt.Errorf("set page info %s: %w", info.PageName, err)
	}
	return nil
}

// Get returns the entry for pageName or ErrNotCached.
func (s *Store) Get(ctx context.Context, pageName string) (*PageInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT page_name, latest_revision_id, type, redirects_to, updated_at
		FROM page_info WHERE page_name = ?
	`, pageName)

	info, err := scanPageInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", pageName, ErrNotCached)
	}
	if err != nil {
		return nil, fmt.Errorf("get page info %s: %w", pageName, err)
	}
	return info, nil
}

// List returns all entries of the given type, or every entry when t is empty.
func (s *Store) List(ctx context.Context, t PageType) ([]PageInfo, error) {
	query := `SELECT page_name, latest_revision_id, type, redirects_to, updated_at FROM page_info`
	var args []any
	if t != "" {
		query += ` WHERE type = ?`
		args = append(args, string(t))
	}
	query += ` ORDER BY page_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list page info: %w", err)
	}
	defer rows.Close()

	var out []PageInfo
	for rows.Next() {
		info, err := scanPageInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page info: %w", err)
		}
		out = append(out, *info)
	}
	return out, rows.Err()
}

// Delete removes the entry for pageName. Deleting a missing entry is not an error.
func (s *Store) Delete(ctx context.Context, pageName string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM page_info WHERE page_name = ?`, pageName); err != nil {
		return fmt.Errorf("delete page info %s: %w", pageName, err)
	}
	return nil
}

// Count returns the number of cached pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_info`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPageInfo(row scanner) (*PageInfo, error) {
	var info PageInfo
	var typ string
	var redirectsTo sql.NullString
	if err := row.Scan(&info.PageName, &info.LatestRevisionID, &typ, &redirectsTo, &info.UpdatedAt); err != nil {
		return nil, err
	}
	info.Type = PageType(typ)
	info.RedirectsTo = redirectsTo.String
	return &info, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
