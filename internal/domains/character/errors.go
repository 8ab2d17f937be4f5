package character

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Business Rule Errors
	ErrCharacterNotFound = errors.New("character not found")
	ErrDuplicateName     = errors.New("Character with this name already exists")

	// Storage Errors
	// ErrUniqueViolation is wrapped by repository implementations when a save
	// collides with an existing name. The service translates it to ErrDuplicateName.
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// NotFoundError names the lookup that missed. errors.Is matches it
// against ErrCharacterNotFound.
type NotFoundError struct {
	Field string // "ID" or "name"
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Character with %s %s not found", e.Field, e.Value)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCharacterNotFound
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return "CHARACTER_NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE_NAME"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
