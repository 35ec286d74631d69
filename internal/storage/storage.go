// Package storage defines the Storage interface — the contract any
// database backend must satisfy to act as the record store.
//
// The registry core and the HTTP handlers depend only on this
// interface, never on a concrete engine. Swapping SQLite for another
// embedded store means implementing these methods and changing one
// line in main.go; tests can pass a fake that satisfies the interface.
package storage

import (
	"errors"

	"studentregistry/internal/types"
)

// Sentinel errors for errors.Is checks across layers.
var (
	// ErrNotFound is returned when no record exists for the given key.
	ErrNotFound = errors.New("student record not found")

	// ErrDuplicateStudentID is returned when a write would leave two
	// records sharing the same business student ID.
	ErrDuplicateStudentID = errors.New("student ID already registered")
)

// Storage is the record store contract.
//
// Every method runs as a single implicit transaction: each write is
// atomic and serialized by the underlying engine, and no
// multi-statement transaction is exposed to callers.
type Storage interface {
	// Add inserts a new record, ignoring any ID on the input, and
	// returns the store-assigned primary key. Returns
	// ErrDuplicateStudentID if the unique index on the business
	// student ID rejects the insert.
	Add(record types.StudentRecord) (int64, error)

	// Get fetches a single record by primary key.
	// Returns ErrNotFound if no record has that id.
	Get(id int64) (types.StudentRecord, error)

	// Put replaces the record at record.ID in full — no partial-field
	// patch semantics. If no record exists at that id one is created
	// (upsert, matching primary-key semantics). Returns
	// ErrDuplicateStudentID if the write would violate the unique
	// index on the business student ID.
	Put(record types.StudentRecord) error

	// Delete removes the record with the given id. Deleting an id
	// that does not exist is not an error (idempotent delete).
	Delete(id int64) error

	// IterateAll returns every record ordered by primary key, which
	// for an auto-assigned key is insertion order. Returns an empty
	// slice (not nil) when the store is empty.
	IterateAll() ([]types.StudentRecord, error)

	// FindByStudentID looks up a record by its business student ID
	// via the secondary index — never a full-table scan. Returns
	// ErrNotFound when no record carries that student ID.
	FindByStudentID(studentID string) (types.StudentRecord, error)
}
