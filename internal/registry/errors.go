package registry

import "fmt"

// ValidationError reports a user-correctable problem with a single
// submitted field. It is always produced before any persistence call,
// so a ValidationError guarantees no state change occurred.
type ValidationError struct {
	Field  string // wire name of the field, e.g. "studentId"
	Reason string // human-readable fragment, e.g. "is required"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}
