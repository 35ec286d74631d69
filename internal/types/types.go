// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles —
// handlers, storage, and the registry core can all import types
// without depending on each other.
package types

// Courses is the constrained set of course codes a student may enrol in.
var Courses = []string{"BSIT", "BSCS", "BSED", "BSBA"}

// YearLevels is the constrained set of year levels.
var YearLevels = []string{"1", "2", "3", "4"}

// StudentRecord is the sole entity of the system.
//
// ID is assigned by the store on first insert and never changes.
// StudentID is the caller-assigned business identifier and must be
// unique across all records; the registry enforces this by explicit
// lookup and the storage layer's unique index backs it up.
//
// Struct tags:
//
//  1. json:"..."  — field names on the wire (camelCase, matching the
//     form field names the UI submits).
//
//  2. validate:"..." — rules checked by go-playground/validator.
//     "required" means non-empty after the registry has trimmed the
//     field; email_shape is a custom tag registered by the registry
//     package; oneof pins course and year level to their sets.
type StudentRecord struct {
	ID        int64  `json:"id"`
	StudentID string `json:"studentId" validate:"required"`
	Fullname  string `json:"fullname"  validate:"required"`
	Email     string `json:"email"     validate:"required,email_shape"`
	Course    string `json:"course"    validate:"required,oneof=BSIT BSCS BSED BSBA"`
	YearLevel string `json:"yearLevel" validate:"required,oneof=1 2 3 4"`
}
