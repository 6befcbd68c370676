// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The registry treats storage as one ordered collection, so the table
// keeps an explicit position column and WriteAll replaces every row inside
// a single transaction. Either the whole new collection is visible or the
// old one is.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/student-registry/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path and creates the students table if
// it does not already exist.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   position   — insertion order, rewritten on every WriteAll
	//   id         — caller-supplied student id, unique
	//   gender and email are optional and stored as empty strings
	//   meta       — single row recording that the store has been written
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			position   INTEGER PRIMARY KEY,
			id         TEXT    NOT NULL UNIQUE,
			full_name  TEXT    NOT NULL,
			gender     TEXT    NOT NULL DEFAULT '',
			email      TEXT    NOT NULL DEFAULT '',
			program    TEXT    NOT NULL,
			year_level TEXT    NOT NULL,
			university TEXT    NOT NULL
		);
		CREATE TABLE IF NOT EXISTS registry_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ReadAll returns every row ordered by position.
func (s *SQLite) ReadAll(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx, `
		SELECT id, full_name, gender, email, program, year_level, university
		FROM students
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("ReadAll: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty registry encodes as [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.FullName,
			&student.Gender,
			&student.Email,
			&student.Program,
			&student.YearLevel,
			&student.University,
		); err != nil {
			return nil, fmt.Errorf("ReadAll: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ReadAll: rows iteration: %w", err)
	}

	return students, nil
}

// WriteAll replaces the table contents with students in one transaction.
func (s *SQLite) WriteAll(ctx context.Context, students []types.Student) error {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("WriteAll: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return fmt.Errorf("WriteAll: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO students
			(position, id, full_name, gender, email, program, year_level, university)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("WriteAll: prepare: %w", err)
	}
	defer stmt.Close()

	// Argument order matches the ? order in the SQL.
	for i, student := range students {
		if _, err := stmt.ExecContext(ctx,
			i,
			student.ID,
			student.FullName,
			student.Gender,
			student.Email,
			student.Program,
			student.YearLevel,
			student.University,
		); err != nil {
			return fmt.Errorf("WriteAll: insert %q: %w", student.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO registry_meta (key, value) VALUES ('initialised', '1')",
	); err != nil {
		return fmt.Errorf("WriteAll: mark initialised: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("WriteAll: commit: %w", err)
	}
	return nil
}

// Seed writes students if the store has never been written.
func (s *SQLite) Seed(ctx context.Context, students []types.Student) (bool, error) {
	var n int
	err := s.Db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registry_meta WHERE key = 'initialised'",
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("Seed: check: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if err := s.WriteAll(ctx, students); err != nil {
		return false, err
	}
	return true, nil
}
