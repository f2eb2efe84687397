package inquiries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no inquiry has the requested ID.
var ErrNotFound = errors.New("inquiries: not found")

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps a SQLite database holding inquiries.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("inquiries: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("inquiries: open: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("inquiries: pragmas: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS inquiries (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    company TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    ip TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
`)
	if err != nil {
		return fmt.Errorf("inquiries: schema: %w", err)
	}
	return nil
}

// Save inserts an inquiry. A zero CreatedAt is set to now.
func (s *Store) Save(ctx context.Context, inq Inquiry) error {
	if inq.CreatedAt.IsZero() {
		inq.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, email, company, message, ip, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inq.ID, inq.Name, inq.Email, inq.Company, inq.Message, inq.IP, inq.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inquiries: save: %w", err)
	}
	return nil
}

// List returns up to limit inquiries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Inquiry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, company, message, ip, created_at FROM inquiries ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("inquiries: list: %w", err)
	}
	defer rows.Close()

	out := []Inquiry{}
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inquiries: list: %w", err)
	}
	return out, nil
}

// Get returns the inquiry with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Inquiry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, company, message, ip, created_at FROM inquiries WHERE id = ?`, id)
	inq, err := scanInquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Inquiry{}, ErrNotFound
	}
	return inq, err
}

// Delete removes the inquiry with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("inquiries: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("inquiries: delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored inquiries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("inquiries: count: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInquiry(sc scanner) (Inquiry, error) {
	var inq Inquiry
	var created string
	if err := sc.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Company, &inq.Message, &inq.IP, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Inquiry{}, err
		}
		return Inquiry{}, fmt.Errorf("inquiries: scan: %w", err)
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Inquiry{}, fmt.Errorf("inquiries: parse created_at %q: %w", created, err)
	}
	inq.CreatedAt = t
	return inq, nil
}
