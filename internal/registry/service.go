// Package registry contains the core of the application: the record
// lifecycle (validate, then create or update), uniqueness enforcement
// on the business student ID, and the search filter. It owns the store
// handle — callers go through the Service rather than touching the
// Storage interface directly.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"studentregistry/internal/storage"
	"studentregistry/internal/types"
)

// Service orchestrates validation and persistence for student records.
type Service struct {
	store    storage.Storage
	validate *validator.Validate
}

// New returns a Service backed by the given store.
func New(store storage.Storage) *Service {
	return &Service{
		store:    store,
		validate: newValidator(),
	}
}

// SubmitInput is one raw form submission. A zero EditingID selects the
// create path; a non-zero EditingID selects the update path for that
// record.
type SubmitInput struct {
	EditingID int64  `json:"-"`
	StudentID string `json:"studentId"`
	Fullname  string `json:"fullname"`
	Email     string `json:"email"`
	Course    string `json:"course"`
	YearLevel string `json:"yearLevel"`
}

// Submit validates the input and applies it as a create or an update.
// Validation is fail-fast: the first failing rule aborts with a
// *ValidationError and nothing is written.
//
// Create: the student ID must not belong to any existing record, then
// the store assigns a fresh primary key.
//
// Update: the current record is fetched first (storage.ErrNotFound
// surfaces when it has vanished since the edit began), and the
// uniqueness check runs only when the submitted student ID differs
// from the one on disk. The comparison is against the persisted value,
// never a caller-cached one, so repeated edits of the same record
// cannot desync the check. Self-exclusion in IsUnique would catch the
// unchanged case anyway; skipping just avoids a pointless lookup.
//
// On success the persisted record, including its ID, is returned.
func (s *Service) Submit(input SubmitInput) (types.StudentRecord, error) {
	record := types.StudentRecord{
		ID:        input.EditingID,
		StudentID: strings.TrimSpace(input.StudentID),
		Fullname:  strings.TrimSpace(input.Fullname),
		Email:     strings.TrimSpace(input.Email),
		Course:    strings.TrimSpace(input.Course),
		YearLevel: strings.TrimSpace(input.YearLevel),
	}

	if verr := validateRecord(s.validate, record); verr != nil {
		return types.StudentRecord{}, verr
	}

	if input.EditingID == 0 {
		return s.create(record)
	}
	return s.update(record)
}

func (s *Service) create(record types.StudentRecord) (types.StudentRecord, error) {
	unique, err := s.IsUnique(record.StudentID, 0)
	if err != nil {
		return types.StudentRecord{}, fmt.Errorf("create: uniqueness check: %w", err)
	}
	if !unique {
		return types.StudentRecord{}, fmt.Errorf("student ID %q: %w", record.StudentID, storage.ErrDuplicateStudentID)
	}

	id, err := s.store.Add(record)
	if err != nil {
		return types.StudentRecord{}, fmt.Errorf("create: %w", err)
	}

	record.ID = id
	return record, nil
}

func (s *Service) update(record types.StudentRecord) (types.StudentRecord, error) {
	current, err := s.store.Get(record.ID)
	if err != nil {
		return types.StudentRecord{}, fmt.Errorf("update: %w", err)
	}

	if record.StudentID != current.StudentID {
		unique, err := s.IsUnique(record.StudentID, record.ID)
		if err != nil {
			return types.StudentRecord{}, fmt.Errorf("update: uniqueness check: %w", err)
		}
		if !unique {
			return types.StudentRecord{}, fmt.Errorf("student ID %q: %w", record.StudentID, storage.ErrDuplicateStudentID)
		}
	}

	if err := s.store.Put(record); err != nil {
		return types.StudentRecord{}, fmt.Errorf("update: %w", err)
	}

	return record, nil
}

// IsUnique reports whether studentID may be assigned to the record
// identified by excludeID (zero for a record that does not exist yet).
// The lookup goes through the secondary index on the business ID; a
// record is allowed to keep its own student ID, so a hit whose primary
// key equals excludeID still counts as unique.
func (s *Service) IsUnique(studentID string, excludeID int64) (bool, error) {
	existing, err := s.store.FindByStudentID(studentID)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID == excludeID, nil
}

// Lookup fetches a record for edit pre-population.
// Returns storage.ErrNotFound when the id is no longer present.
func (s *Service) Lookup(id int64) (types.StudentRecord, error) {
	return s.store.Get(id)
}

// Delete removes a record. Deleting an id that is already gone
// succeeds, so a double-submitted delete is harmless.
func (s *Service) Delete(id int64) error {
	return s.store.Delete(id)
}

// Search returns the records matching text, in store iteration order.
// It always reads live store contents — never a cached snapshot — so a
// search issued right after a mutation reflects that mutation. An
// empty text returns everything.
func (s *Service) Search(text string) ([]types.StudentRecord, error) {
	records, err := s.store.IterateAll()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return Filter(records, text), nil
}
