// Package cache keeps a local SQLite copy of the reference lists (clients,
// vendors, products, banks, employees, expense categories) used to resolve
// names and offer choices without a round trip to the API.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/go-ports/bizdesk/internal/models"
)

// ErrNotFound is returned by Lookup when no row matches.
var ErrNotFound = errors.New("cache: not found")

// Kind names a reference list.
type Kind string

const (
	KindClient   Kind = "client"
	KindVendor   Kind = "vendor"
	KindProduct  Kind = "product"
	KindBank     Kind = "bank"
	KindEmployee Kind = "employee"
	KindCategory Kind = "category"
)

// Kinds lists every cached kind in display order.
var Kinds = []Kind{KindClient, KindVendor, KindProduct, KindBank, KindEmployee, KindCategory}

// ParseKind accepts singular or plural kind names.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "categories":
		return KindCategory, nil
	case "":
		return "", nil
	}
	k := Kind(strings.TrimSuffix(s, "s"))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Ref is one cached reference row.
type Ref struct {
	Kind     Kind            `json:"kind"`
	ID       models.ID       `json:"id"`
	Name     string          `json:"name"`
	Detail   string          `json:"detail,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
	SyncedAt time.Time       `json:"synced_at"`
}

// KindStats reports the size and freshness of one kind.
type KindStats struct {
	Kind     Kind      `json:"kind"`
	Count    int       `json:"count"`
	SyncedAt time.Time `json:"synced_at"` // zero when never synced
}

// DB wraps a *sql.DB with the path it was opened from.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache.Open: %w", err)
	}
	d := &DB{db: sqldb, path: path}
	if err := d.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("cache.Open createSchema: %w", err)
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (d *DB) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refs (
			kind      TEXT NOT NULL,
			id        TEXT NOT NULL,
			name      TEXT NOT NULL,
			detail    TEXT NOT NULL DEFAULT '',
			raw       TEXT,
			synced_at TEXT NOT NULL,
			PRIMARY KEY (kind, id)
		)`,
		`CREATE INDEX IF NOT EXISTS refs_name ON refs(kind, name)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, s)
		}
	}
	return nil
}

func syncedKey(kind Kind) string { return "synced_at:" + string(kind) }

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Replace swaps every row of kind for refs in one transaction and records
// the sync time.
func (d *DB) Replace(kind Kind, refs []Ref) error {
	now := time.Now().UTC().Truncate(time.Second)
	stamp := now.Format(time.RFC3339)

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("cache.Replace begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM refs WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("cache.Replace delete: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO refs (kind, id, name, detail, raw, synced_at) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("cache.Replace prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range refs {
		if r.ID.IsZero() {
			continue
		}
		var raw any
		if len(r.Raw) > 0 {
			raw = string(r.Raw)
		}
		if _, err := stmt.Exec(string(kind), r.ID.String(), r.Name, r.Detail, raw, stamp); err != nil {
			return fmt.Errorf("cache.Replace insert %s/%s: %w", kind, r.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, syncedKey(kind), stamp); err != nil {
		return fmt.Errorf("cache.Replace meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache.Replace commit: %w", err)
	}
	return nil
}

// Clear removes every cached row and sync stamp.
func (d *DB) Clear() error {
	if _, err := d.db.Exec(`DELETE FROM refs`); err != nil {
		return fmt.Errorf("cache.Clear: %w", err)
	}
	if _, err := d.db.Exec(`DELETE FROM meta WHERE key LIKE 'synced_at:%'`); err != nil {
		return fmt.Errorf("cache.Clear: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

const refColumns = `kind, id, name, detail, raw, synced_at`

// Lookup returns the row for (kind, id) or ErrNotFound.
func (d *DB) Lookup(kind Kind, id models.ID) (*Ref, error) {
	row := d.db.QueryRow(`SELECT `+refColumns+` FROM refs WHERE kind = ? AND id = ?`, string(kind), id.String())
	r, err := scanRef(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Lookup: %w", err)
	}
	return r, nil
}

// List returns every row of kind ordered by name.
func (d *DB) List(kind Kind) ([]Ref, error) {
	rows, err := d.db.Query(`SELECT `+refColumns+` FROM refs WHERE kind = ? ORDER BY name COLLATE NOCASE`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("cache.List: %w", err)
	}
	return scanRefs(rows)
}

// Search returns rows whose name or detail contains query
// (case-insensitive). kind "" searches every kind. limit <= 0 means 20.
func (d *DB) Search(query string, kind Kind, limit int) ([]Ref, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	sqlStr := `SELECT ` + refColumns + ` FROM refs
		WHERE (name LIKE ? ESCAPE '\' OR detail LIKE ? ESCAPE '\')`
	params := []any{pattern, pattern}
	if kind != "" {
		sqlStr += ` AND kind = ?`
		params = append(params, string(kind))
	}
	sqlStr += ` ORDER BY kind, name COLLATE NOCASE LIMIT ?`
	params = append(params, limit)

	rows, err := d.db.Query(sqlStr, params...)
	if err != nil {
		return nil, fmt.Errorf("cache.Search: %w", err)
	}
	return scanRefs(rows)
}

// Stats returns the row count and last sync time of every kind.
func (d *DB) Stats() ([]KindStats, error) {
	counts := map[Kind]int{}
	rows, err := d.db.Query(`SELECT kind, COUNT(*) FROM refs GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("cache.Stats: %w", err)
	}
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("cache.Stats scan: %w", err)
		}
		counts[Kind(k)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache.Stats: %w", err)
	}

	out := make([]KindStats, 0, len(Kinds))
	for _, k := range Kinds {
		st := KindStats{Kind: k, Count: counts[k]}
		if v, ok, err := d.GetMeta(syncedKey(k)); err != nil {
			return nil, fmt.Errorf("cache.Stats meta: %w", err)
		} else if ok {
			st.SyncedAt, _ = time.Parse(time.RFC3339, v)
		}
		out = append(out, st)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Meta
// ---------------------------------------------------------------------------

// GetMeta returns the value for key, or ("", false, nil) if not set.
func (d *DB) GetMeta(key string) (string, bool, error) {
	var val string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetMeta upserts a key-value pair in the meta table.
func (d *DB) SetMeta(key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanRef(s scanner) (*Ref, error) {
	var (
		r      Ref
		kind   string
		id     string
		raw    sql.NullString
		synced string
	)
	if err := s.Scan(&kind, &id, &r.Name, &r.Detail, &raw, &synced); err != nil {
		return nil, err
	}
	r.Kind = Kind(kind)
	r.ID = models.ID(id)
	if raw.Valid && raw.String != "" {
		r.Raw = json.RawMessage(raw.String)
	}
	r.SyncedAt, _ = time.Parse(time.RFC3339, synced)
	return &r, nil
}

func scanRefs(rows *sql.Rows) ([]Ref, error) {
	defer rows.Close()
	var out []Ref
	for rows.Next() {
		r, err := scanRef(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
