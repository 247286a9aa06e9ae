// Package sqlref stores reference targets in SQLite and serves them as a
// lookup source.
package sqlref

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/reoring/skemaform/refsource"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS ref_records (
	target   TEXT    NOT NULL,
	id       TEXT    NOT NULL,
	position INTEGER NOT NULL,
	body     TEXT    NOT NULL,
	PRIMARY KEY (target, id)
);
CREATE TABLE IF NOT EXISTS ref_schemas (
	target TEXT NOT NULL PRIMARY KEY,
	body   TEXT NOT NULL
);`

// Store is the SQLite handle. A target holds either records or a schema
// document; records win when both are present.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dsn, for example
// "file:refs.db?_pragma=foreign_keys(1)" or ":memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlref: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlref: create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// DB returns the underlying sql.DB for advanced queries.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// PutRecords replaces the records of target. Each record needs an "id"
// attribute; list order is kept.
func (s *Store) PutRecords(ctx context.Context, target string, records []map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlref: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ref_records WHERE target = ?`, target); err != nil {
		return fmt.Errorf("sqlref: clear %s: %w", target, err)
	}
	for i, rec := range records {
		id, ok := rec[refsource.IDKey]
		if !ok || id == nil {
			return fmt.Errorf("sqlref: record %d of %s has no %q", i, target, refsource.IDKey)
		}
		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("sqlref: encode record %d of %s: %w", i, target, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ref_records (target, id, position, body) VALUES (?, ?, ?, ?)`,
			target, fmt.Sprint(id), i, string(body)); err != nil {
			return fmt.Errorf("sqlref: insert record %d of %s: %w", i, target, err)
		}
	}
	return tx.Commit()
}

// PutSchema stores a schema document (for example one with an "enum") for
// target.
func (s *Store) PutSchema(ctx context.Context, target string, schema map[string]any) error {
	body, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("sqlref: encode schema %s: %w", target, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ref_schemas (target, body) VALUES (?, ?)
		 ON CONFLICT(target) DO UPDATE SET body = excluded.body`,
		target, string(body))
	if err != nil {
		return fmt.Errorf("sqlref: store schema %s: %w", target, err)
	}
	return nil
}

// Lookup implements the form lookup contract: an empty id lists every record
// of target (or returns its schema), a non-empty id returns one record.
func (s *Store) Lookup(ctx context.Context, target, id string) (any, error) {
	if id != "" {
		return s.record(ctx, target, id)
	}
	records, err := s.records(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}
	schema, err := s.schema(ctx, target)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", refsource.ErrUnknownTarget, target)
	}
	return schema, err
}

// Seed copies every target of a static source into the store: lists become
// records, maps become schemas.
func (s *Store) Seed(ctx context.Context, src *refsource.Static) error {
	for _, target := range src.Targets() {
		v, _ := src.Get(target)
		switch t := v.(type) {
		case []any:
			recs := make([]map[string]any, 0, len(t))
			for _, it := range t {
				if rec, ok := it.(map[string]any); ok {
					recs = append(recs, rec)
				}
			}
			if err := s.PutRecords(ctx, target, recs); err != nil {
				return err
			}
		case map[string]any:
			if err := s.PutSchema(ctx, target, t); err != nil {
				return err
			}
		default:
			return fmt.Errorf("sqlref: target %s: unsupported result %T", target, v)
		}
	}
	return nil
}

func (s *Store) records(ctx context.Context, target string) ([]any, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM ref_records WHERE target = ? ORDER BY position`, target)
	if err != nil {
		return nil, fmt.Errorf("sqlref: query %s: %w", target, err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("sqlref: scan %s: %w", target, err)
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("sqlref: decode %s: %w", target, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) record(ctx context.Context, target, id string) (map[string]any, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM ref_records WHERE target = ? AND id = ?`, target, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", refsource.ErrNotFound, target, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlref: query %s/%s: %w", target, id, err)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("sqlref: decode %s/%s: %w", target, id, err)
	}
	return rec, nil
}

func (s *Store) schema(ctx context.Context, target string) (map[string]any, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM ref_schemas WHERE target = ?`, target).Scan(&body)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return nil, fmt.Errorf("sqlref: decode schema %s: %w", target, err)
	}
	return m, nil
}
