// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk — no network, no
// separate server process. That makes it the right engine for a
// per-user local record store: the whole database lives wherever the
// config points, and the engine serializes writes internally so each
// statement is atomic without any locking on our side.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"studentregistry/internal/config"
	"studentregistry/internal/storage"
	"studentregistry/internal/types"

	// Importing the driver registers "sqlite3" with database/sql; we
	// also use its error type to detect constraint violations.
	"github.com/mattn/go-sqlite3"
)

// schemaVersion is stamped into PRAGMA user_version on first run.
// The schema is created once; re-opening at the same version is a
// no-op, and a file from a newer version is refused rather than
// migrated.
const schemaVersion = 1

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, which is a connection pool managed by
// database/sql and safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creating the
// students collection and its indexes if they do not already exist,
// and returns a ready-to-use *SQLite.
//
// Schema:
//
//	id         — integer primary key, auto-incremented by SQLite
//	student_id — business identifier, UNIQUE index (secondary lookup)
//	fullname   — indexed, non-unique
//	email      — plain column
//	course     — indexed, non-unique
//	year_level — indexed, non-unique
//
// Initialization is idempotent: every statement uses IF NOT EXISTS,
// so restarting against an existing file changes nothing.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return nil, fmt.Errorf("sqlite.New: read schema version: %w", err)
	}
	if version > schemaVersion {
		return nil, fmt.Errorf("sqlite.New: database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id TEXT NOT NULL,
			fullname   TEXT NOT NULL,
			email      TEXT NOT NULL,
			course     TEXT NOT NULL,
			year_level TEXT NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_students_student_id ON students (student_id);
		CREATE INDEX IF NOT EXISTS idx_students_fullname   ON students (fullname);
		CREATE INDEX IF NOT EXISTS idx_students_course     ON students (course);
		CREATE INDEX IF NOT EXISTS idx_students_year_level ON students (year_level);
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
	}

	if version == 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return nil, fmt.Errorf("sqlite.New: stamp schema version: %w", err)
		}
	}

	return &SQLite{Db: db}, nil
}

// Add inserts a new row and returns the auto-generated primary key.
// Any ID carried on the input record is ignored — the store owns key
// assignment.
func (s *SQLite) Add(record types.StudentRecord) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (student_id, fullname, email, course, year_level) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("Add: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(record.StudentID, record.Fullname, record.Email, record.Course, record.YearLevel)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("Add: student_id %q: %w", record.StudentID, storage.ErrDuplicateStudentID)
		}
		return 0, fmt.Errorf("Add: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("Add: last insert id: %w", err)
	}

	return lastID, nil
}

// Get fetches exactly one row matched by primary key.
func (s *SQLite) Get(id int64) (types.StudentRecord, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, student_id, fullname, email, course, year_level FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.StudentRecord{}, fmt.Errorf("Get: prepare: %w", err)
	}
	defer stmt.Close()

	record, err := scanRecord(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.StudentRecord{}, fmt.Errorf("Get: id %d: %w", id, storage.ErrNotFound)
		}
		return types.StudentRecord{}, fmt.Errorf("Get: scan: %w", err)
	}

	return record, nil
}

// Put replaces the row at record.ID in full, creating it when absent.
// The id column keeps its caller-supplied value either way, so the
// record's identity never moves.
func (s *SQLite) Put(record types.StudentRecord) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO students (id, student_id, fullname, email, course, year_level)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			student_id = excluded.student_id,
			fullname   = excluded.fullname,
			email      = excluded.email,
			course     = excluded.course,
			year_level = excluded.year_level
	`)
	if err != nil {
		return fmt.Errorf("Put: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(record.ID, record.StudentID, record.Fullname, record.Email, record.Course, record.YearLevel)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("Put: student_id %q: %w", record.StudentID, storage.ErrDuplicateStudentID)
		}
		return fmt.Errorf("Put: exec: %w", err)
	}

	return nil
}

// Delete removes a row by primary key. A missing id is not an error —
// DELETE affecting zero rows still succeeds, which gives callers
// idempotent delete for free.
func (s *SQLite) Delete(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("Delete: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(id); err != nil {
		return fmt.Errorf("Delete: exec: %w", err)
	}

	return nil
}

// IterateAll returns every row ordered by primary key, i.e. insertion
// order for an AUTOINCREMENT key.
func (s *SQLite) IterateAll() ([]types.StudentRecord, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, student_id, fullname, email, course, year_level FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("IterateAll: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("IterateAll: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so an empty store encodes
	// to [] rather than null in JSON.
	records := make([]types.StudentRecord, 0)

	for rows.Next() {
		var record types.StudentRecord
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.Fullname,
			&record.Email,
			&record.Course,
			&record.YearLevel,
		); err != nil {
			return nil, fmt.Errorf("IterateAll: scan row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("IterateAll: rows iteration: %w", err)
	}

	return records, nil
}

// FindByStudentID looks up a row by business student ID. The unique
// index on student_id makes this a direct index probe, not a scan.
func (s *SQLite) FindByStudentID(studentID string) (types.StudentRecord, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, student_id, fullname, email, course, year_level FROM students WHERE student_id = ? LIMIT 1",
	)
	if err != nil {
		return types.StudentRecord{}, fmt.Errorf("FindByStudentID: prepare: %w", err)
	}
	defer stmt.Close()

	record, err := scanRecord(stmt.QueryRow(studentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.StudentRecord{}, fmt.Errorf("FindByStudentID: student_id %q: %w", studentID, storage.ErrNotFound)
		}
		return types.StudentRecord{}, fmt.Errorf("FindByStudentID: scan: %w", err)
	}

	return record, nil
}

// scanRecord reads one row's columns in SELECT order.
func scanRecord(row *sql.Row) (types.StudentRecord, error) {
	var record types.StudentRecord
	err := row.Scan(
		&record.ID,
		&record.StudentID,
		&record.Fullname,
		&record.Email,
		&record.Course,
		&record.YearLevel,
	)
	return record, err
}

// isUniqueViolation reports whether err is the driver's unique-index
// constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
