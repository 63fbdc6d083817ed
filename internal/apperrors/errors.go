package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindUsernameConflict  Kind = "USERNAME_CONFLICT"
	KindForbiddenDeletion Kind = "FORBIDDEN_DELETION"
	KindAlreadyElapsed    Kind = "ALREADY_ELAPSED"
	KindValidation        Kind = "VALIDATION"
)

// Sentinels for errors.Is checks
var (
	ErrNotFound          = errors.New("not found")
	ErrUsernameConflict  = errors.New("username conflict")
	ErrForbiddenDeletion = errors.New("forbidden deletion")
	ErrAlreadyElapsed    = errors.New("publication already elapsed")
	ErrValidation        = errors.New("validation failed")
)

var sentinels = map[Kind]error{
	KindNotFound:          ErrNotFound,
	KindUsernameConflict:  ErrUsernameConflict,
	KindForbiddenDeletion: ErrForbiddenDeletion,
	KindAlreadyElapsed:    ErrAlreadyElapsed,
	KindValidation:        ErrValidation,
}

var statusCodes = map[Kind]int{
	KindNotFound:          http.StatusNotFound,
	KindUsernameConflict:  http.StatusConflict,
	KindForbiddenDeletion: http.StatusForbidden,
	KindAlreadyElapsed:    http.StatusForbidden,
	KindValidation:        http.StatusBadRequest,
}

// Error is a business-rule rejection surfaced to the caller as is
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel of the error kind
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// StatusCode returns the HTTP status the kind maps to
func (e *Error) StatusCode() int {
	if code, ok := statusCodes[e.Kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func MediaNotFound(id uint) *Error {
	return newError(KindNotFound, "The media with id '%d' does not exist", id)
}

func PostNotFound(id uint) *Error {
	return newError(KindNotFound, "The post with id '%d' does not exist", id)
}

func PublicationNotFound(id uint) *Error {
	return newError(KindNotFound, "The publication with id '%d' does not exist", id)
}

func MediaUsernameConflict(title, username string) *Error {
	return newError(KindUsernameConflict, "The username '%s' is unavailable on %s", username, title)
}

func ForbiddenMediaDeletion(title string) *Error {
	return newError(KindForbiddenDeletion, "Cannot delete media '%s', there is a publication associated with it", title)
}

func ForbiddenPostDeletion(id uint) *Error {
	return newError(KindForbiddenDeletion, "Cannot delete post with id %d, there is a publication associated with it", id)
}

func PublicationAlreadyElapsed() *Error {
	return newError(KindAlreadyElapsed, "The publication has already been done")
}

func Validation(message string) *Error {
	return newError(KindValidation, "%s", message)
}

// KindOf returns the kind of a domain error, or "" for anything else
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// StatusCode maps any error to an HTTP status; non-domain errors are 500
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
