package zalukaj

import "fmt"

// Error is the base type of every failure reported by the client.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(message string, cause error) *Error {
	return &Error{Message: message, Cause: cause}
}

// SuspiciousActivityError is returned when the site answers 503, either
// because it is overloaded or because it flagged the session.
type SuspiciousActivityError struct {
	base *Error
}

func (e *SuspiciousActivityError) Error() string {
	return e.base.Error()
}

// Unwrap exposes the base Error so errors.As(err, **Error) matches.
func (e *SuspiciousActivityError) Unwrap() error {
	return e.base
}

func newSuspiciousActivityError(message string) *SuspiciousActivityError {
	return &SuspiciousActivityError{base: newError(message, nil)}
}

// LoginError is returned when the site rejects the credentials.
type LoginError struct {
	base *Error
}

func (e *LoginError) Error() string {
	return e.base.Error()
}

func (e *LoginError) Unwrap() error {
	return e.base
}

func newLoginError(message string) *LoginError {
	return &LoginError{base: newError(message, nil)}
}
