package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions handlers map to HTTP statuses. Unauthorized
// reads and writes are reported as ErrNotFound so a caller cannot tell a
// hidden record from an absent one.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAlreadyMember      = errors.New("user already in team")
)

// ValidationError marks user-correctable input problems.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
