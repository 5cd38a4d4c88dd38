package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Shared sentinel errors. Handlers pick the response code from the error
// identity, never from its message.
var (
	// ErrNotAuthenticated is returned when an operation requires an acting
	// user and none is present.
	ErrNotAuthenticated = errors.New("authentication required")

	// ErrNotOwner is returned when the acting user lacks ownership of the
	// record: only a task's author may delete it, only a user may change or
	// remove their own profile.
	ErrNotOwner = errors.New("operation restricted to the record owner")

	// Not-found errors, one per entity.
	ErrUserNotFound   = errors.New("user not found")
	ErrStatusNotFound = errors.New("status not found")
	ErrLabelNotFound  = errors.New("label not found")
	ErrTaskNotFound   = errors.New("task not found")

	// Referential conflicts: deletes rejected because dependent tasks exist.
	ErrStatusInUse      = errors.New("status is referenced by existing tasks")
	ErrLabelInUse       = errors.New("label is referenced by existing tasks")
	ErrUserAuthorsTasks = errors.New("user is the author of existing tasks")

	ErrFailedToHashPassword = errors.New("failed to hash password")

	// AI task generation.
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("no tasks could be extracted from the text")
)

// ValidationError carries field-level validation failures. A mutation that
// fails validation writes nothing.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
