package entities

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a mutation or lookup references an unknown id
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a record with the same id is already stored
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidFilter is returned for an unknown asset type filter value
	ErrInvalidFilter = errors.New("invalid filter")
)

// FieldError describes a single rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every rejected field of a record or form
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the given field was rejected
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the message for the given field, or an empty string
func (v ValidationErrors) For(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}
