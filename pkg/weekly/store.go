package weekly

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Repository supplies weekly report documents.
type Repository interface {
	Report(ctx context.Context, country, collection string) (Document, error)
	Collections(ctx context.Context, country string) ([]string, error)
}

// Store is a Repository backed by a SQLite file. Documents are kept as the
// JSON they were imported from, keyed by (country, collection).
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	country     TEXT NOT NULL,
	collection  TEXT NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	document    TEXT NOT NULL,
	imported_at TEXT NOT NULL,
	PRIMARY KEY (country, collection)
);
CREATE INDEX IF NOT EXISTS idx_reports_country ON reports(country);
`

// Open opens (creating if needed) the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Import stores doc, replacing any previous document of the same collection.
func (s *Store) Import(ctx context.Context, country, collection string, doc Document) error {
	if country == "" || collection == "" {
		return fmt.Errorf("weekly: country and collection are required")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (country, collection, location, document, imported_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(country, collection) DO UPDATE SET
			location = excluded.location,
			document = excluded.document,
			imported_at = excluded.imported_at`,
		country, collection, doc.Location, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("import %s/%s: %w", country, collection, err)
	}
	return nil
}

// ImportJSON decodes a document from r and imports it.
func (s *Store) ImportJSON(ctx context.Context, country, collection string, r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode %s/%s: %w", country, collection, err)
	}
	return doc, s.Import(ctx, country, collection, doc)
}

// Report loads one document.
func (s *Store) Report(ctx context.Context, country, collection string) (Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM reports WHERE country = ? AND collection = ?`,
		country, collection).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%w: %s/%s", ErrNotFound, country, collection)
	}
	if err != nil {
		return Document{}, fmt.Errorf("query %s/%s: %w", country, collection, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s/%s: %w", country, collection, err)
	}
	return doc, nil
}

// Collections lists the collections stored for country, sorted by name.
func (s *Store) Collections(ctx context.Context, country string) ([]string, error) {
	return s.strings(ctx, `SELECT collection FROM reports WHERE country = ? ORDER BY collection`, country)
}

// Countries lists every country with at least one report.
func (s *Store) Countries(ctx context.Context) ([]string, error) {
	return s.strings(ctx, `SELECT DISTINCT country FROM reports ORDER BY country`)
}

// Info describes a stored collection.
type Info struct {
	Country    string
	Collection string
	Location   string
	ImportedAt time.Time
}

// List returns metadata of every stored collection.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT country, collection, location, imported_at FROM reports ORDER BY country, collection`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var (
			in Info
			at string
		)
		if err := rows.Scan(&in.Country, &in.Collection, &in.Location, &at); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		in.ImportedAt, _ = time.Parse(time.RFC3339, at)
		out = append(out, in)
	}
	return out, rows.Err()
}

// Delete removes one collection. Deleting a missing collection is not an error.
func (s *Store) Delete(ctx context.Context, country, collection string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE country = ? AND collection = ?`, country, collection)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", country, collection, err)
	}
	return nil
}

func (s *Store) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
