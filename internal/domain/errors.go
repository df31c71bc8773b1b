package domain

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	CodeValidation    Code = "INVALID_CARD"
	CodeAuth          Code = "UNAUTHORIZED"
	CodeRuleViolation Code = "RULE_VIOLATION"
	CodeNotFound      Code = "NOT_FOUND"
	CodeGameState     Code = "WRONG_GAME_STATE"
	CodeInternal      Code = "INTERNAL_CONSISTENCY"
)

// Error is a game error. Message is meant to be shown to players.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrValidation    = &Error{Code: CodeValidation, Message: "invalid card"}
	ErrAuth          = &Error{Code: CodeAuth, Message: "not authorized"}
	ErrRuleViolation = &Error{Code: CodeRuleViolation, Message: "rule violation"}
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "not found"}
	ErrGameState     = &Error{Code: CodeGameState, Message: "wrong game state"}
	ErrInternal      = &Error{Code: CodeInternal, Message: "internal consistency error"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return newError(CodeValidation, format, args...) }
func Authf(format string, args ...any) *Error       { return newError(CodeAuth, format, args...) }
func Violationf(format string, args ...any) *Error  { return newError(CodeRuleViolation, format, args...) }
func NotFoundf(format string, args ...any) *Error   { return newError(CodeNotFound, format, args...) }
func GameStatef(format string, args ...any) *Error  { return newError(CodeGameState, format, args...) }
func Internalf(format string, args ...any) *Error   { return newError(CodeInternal, format, args...) }

// CodeOf returns the code of err, or "" when err is not a game error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInternal reports whether err signals a broken engine invariant rather than a user mistake.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
