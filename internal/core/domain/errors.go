package domain

import "errors"

var (
	ErrNetwork            = errors.New("server unreachable")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrServer             = errors.New("server error")
)

// AuthError pairs a classified failure with the verbatim message the server
// returned, when it returned one. It unwraps to the sentinel so callers keep
// using errors.Is.
type AuthError struct {
	Kind    error
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *AuthError) Unwrap() error { return e.Kind }

// ServerMessage extracts the verbatim server-provided message from err.
// Empty when the failure never reached the server or it sent no message.
func ServerMessage(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}

// SessionExpired reports whether err means the session credentials or the
// anti-forgery token were rejected, which must force the console back to the
// anonymous state no matter which operation triggered it.
func SessionExpired(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
