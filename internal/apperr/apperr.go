package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. Check with errors.Is.
var (
	// ErrNotFound covers missing topics and missing revision schedules.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists covers duplicate revision schedules for a (user, topic) pair.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument covers out-of-range or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict covers storage-level write conflicts that survived retries.
	ErrConflict = errors.New("storage conflict")
	// ErrUnauthorized covers failed credential or token checks.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries an HTTP status and a stable code string across the service
// boundary so handlers can respond without re-classifying.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(code string, err error) *Error {
	return New(404, code, join(err, ErrNotFound))
}

func AlreadyExists(code string, err error) *Error {
	return New(409, code, join(err, ErrAlreadyExists))
}

func InvalidArgument(code string, err error) *Error {
	return New(400, code, join(err, ErrInvalidArgument))
}

func Conflict(code string, err error) *Error {
	return New(503, code, join(err, ErrConflict))
}

func join(err, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
