package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobboard/internal/model"
)

// Entry is a catalog row: the dedup key and the raw record stored under it.
type Entry struct {
	UID    string
	Record model.RawRecord
}

// SQLiteStore is the ingest catalog: raw scraped records keyed by their
// dedup key, kept in first-insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// catalog table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS catalog_jobs (
		uid        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog_jobs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Has returns true if a record is stored under uid.
func (s *SQLiteStore) Has(uid string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM catalog_jobs WHERE uid = ?", uid).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking catalog for %s: %w", uid, err)
	}
	return true, nil
}

// Put stores rec under uid, replacing any previous record while keeping its
// position. It reports whether uid was new to the catalog.
func (s *SQLiteStore) Put(uid string, rec model.RawRecord) (bool, error) {
	existed, err := s.Has(uid)
	if err != nil {
		return false, err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("encoding record %s: %w", uid, err)
	}

	_, err = s.db.Exec(`INSERT INTO catalog_jobs (uid, payload) VALUES (?, ?)
		ON CONFLICT(uid) DO UPDATE SET payload = excluded.payload`, uid, string(payload))
	if err != nil {
		return false, fmt.Errorf("storing record %s: %w", uid, err)
	}
	return !existed, nil
}

// Entries returns every catalog row in first-insertion order.
func (s *SQLiteStore) Entries() ([]Entry, error) {
	rows, err := s.db.Query("SELECT uid, payload FROM catalog_jobs ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var uid, payload string
		if err := rows.Scan(&uid, &payload); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		var rec model.RawRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decoding record %s: %w", uid, err)
		}
		out = append(out, Entry{UID: uid, Record: rec})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return out, nil
}

// Delete removes the record stored under uid. Unknown ids are a no-op.
func (s *SQLiteStore) Delete(uid string) error {
	if _, err := s.db.Exec("DELETE FROM catalog_jobs WHERE uid = ?", uid); err != nil {
		return fmt.Errorf("deleting record %s: %w", uid, err)
	}
	return nil
}

// IsEmpty returns true if the catalog has no entries.
func (s *SQLiteStore) IsEmpty() (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM catalog_jobs").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking if catalog is empty: %w", err)
	}
	return count == 0, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
