package registry

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"studentregistry/internal/types"
)

// emailShape is the simple local@domain.tld check applied to the email
// field. Deliberately loose — it rejects whitespace and missing parts,
// nothing more.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// newValidator builds the validator instance shared by the service.
// Field names in error messages come from the json struct tags so they
// match what the UI actually submitted.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// The error from RegisterValidation is only non-nil for an empty
	// tag name or nil func, neither of which can happen here.
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})

	return v
}

// validateRecord checks a trimmed record against its validate tags and
// returns the single most relevant failure: missing fields are
// reported before shape and set-membership problems, in declaration
// order. nil means the record is valid.
func validateRecord(v *validator.Validate, record types.StudentRecord) *ValidationError {
	err := v.Struct(record)
	if err == nil {
		return nil
	}

	errs := err.(validator.ValidationErrors)

	for _, fieldErr := range errs {
		if fieldErr.Tag() == "required" {
			return &ValidationError{Field: fieldErr.Field(), Reason: "is required"}
		}
	}

	first := errs[0]
	switch first.Tag() {
	case "email_shape":
		return &ValidationError{Field: first.Field(), Reason: "must be a valid email address"}
	case "oneof":
		allowed := strings.Join(strings.Fields(first.Param()), ", ")
		return &ValidationError{Field: first.Field(), Reason: "must be one of " + allowed}
	default:
		return &ValidationError{Field: first.Field(), Reason: "is invalid"}
	}
}
