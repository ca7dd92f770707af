package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "mindary.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// The pragma returns the resulting mode as a row, which libsql's Exec rejects.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// schema is applied one statement at a time; libsql only runs the first
// statement of a multi-statement Exec.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS memos (
		id         TEXT PRIMARY KEY,
		day        TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL CHECK(length(trim(content)) > 0),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_memos_day ON memos(day, created_at)`,
	`CREATE TABLE IF NOT EXISTS records (
		id         TEXT PRIMARY KEY,
		day        TEXT NOT NULL,
		category   TEXT NOT NULL,
		title      TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_day ON records(day, created_at)`,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
		}
	}
	return nil
}

// normalizeDay undoes libsql's conversion of date-like TEXT columns into
// timestamps, returning the stored YYYY-MM-DD.
func normalizeDay(s string) string {
	if len(s) == len(record.DayLayout) {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(record.DayLayout)
	}
	return s
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateMemo persists a new memo.
func (s *Store) CreateMemo(m record.Memo) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	_, err := s.db.Exec(
		"INSERT INTO memos (id, day, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.Date, m.Role, m.Content, m.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return insertError("memo", m.ID, err)
	}
	return nil
}

// CreateRecord persists a new record.
func (s *Store) CreateRecord(r record.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	_, err := s.db.Exec(
		"INSERT INTO records (id, day, category, title, content, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.Date, string(r.Category), r.Title, r.Content, r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return insertError("record", r.ID, err)
	}
	return nil
}

// ListMemos returns the memos for day, oldest first.
func (s *Store) ListMemos(day string) ([]record.Memo, error) {
	if err := record.ValidateDay(day); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	rows, err := s.db.Query(
		"SELECT id, day, role, content, created_at FROM memos WHERE day = ? ORDER BY created_at ASC, id ASC", day,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying memos: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	memos := []record.Memo{}
	for rows.Next() {
		var m record.Memo
		var createdStr string
		if err := rows.Scan(&m.ID, &m.Date, &m.Role, &m.Content, &createdStr); err != nil {
			return nil, fmt.Errorf("%w: scanning memo: %v", storage.ErrStorage, err)
		}
		m.Date = normalizeDay(m.Date)
		if m.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
		}
		memos = append(memos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating memos: %v", storage.ErrStorage, err)
	}
	return memos, nil
}

// ListRecords returns the records for day, oldest first.
func (s *Store) ListRecords(day string) ([]record.Record, error) {
	if err := record.ValidateDay(day); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	rows, err := s.db.Query(
		"SELECT id, day, category, title, content, created_at FROM records WHERE day = ? ORDER BY created_at ASC, id ASC", day,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying records: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating records: %v", storage.ErrStorage, err)
	}
	return records, nil
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(id string) (record.Record, error) {
	row := s.db.QueryRow(
		"SELECT id, day, category, title, content, created_at FROM records WHERE id = ?", id,
	)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return record.Record{}, storage.ErrNotFound
	}
	return r, err
}

func insertError(kind, id string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint") {
		return fmt.Errorf("%w: %s %s already exists", storage.ErrConflict, kind, id)
	}
	return fmt.Errorf("%w: inserting %s: %v", storage.ErrStorage, kind, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (record.Record, error) {
	var r record.Record
	var category, createdStr string
	if err := sc.Scan(&r.ID, &r.Date, &category, &r.Title, &r.Content, &createdStr); err != nil {
		if err == sql.ErrNoRows {
			return record.Record{}, err
		}
		return record.Record{}, fmt.Errorf("%w: scanning record: %v", storage.ErrStorage, err)
	}
	r.Date = normalizeDay(r.Date)
	r.Category = record.Category(category)
	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	r.CreatedAt = created
	return r, nil
}
