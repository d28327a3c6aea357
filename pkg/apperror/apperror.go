package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application failure. Each kind maps to one HTTP status.
type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindInvalidToken     Kind = "invalid_token"
	KindTokenExpired     Kind = "token_expired"
	KindUserGone         Kind = "user_gone"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindValidationFailed Kind = "validation_failed"
	KindConflict         Kind = "conflict"
	KindTooManyRequests  Kind = "too_many_requests"
	KindInternal         Kind = "internal"
)

// Messages relied upon by API clients.
const (
	MsgNotConnected  = "Vous n'êtes pas connecté"
	MsgInvalidToken  = "Token invalide"
	MsgTokenExpired  = "TokenExpiredError"
	MsgUserGone      = "L'utilisateur n'existe plus"
	MsgInternalError = "Une erreur interne est survenue"
)

// AppError is the single error type rendered to clients.
type AppError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Errors     []string
	cause      error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.cause }

// WithCause attaches an underlying error for logging. The cause is never rendered.
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func newErr(kind Kind, status int, msg string, errs ...string) *AppError {
	return &AppError{Kind: kind, StatusCode: status, Message: msg, Errors: errs}
}

func Unauthenticated() *AppError {
	return newErr(KindUnauthenticated, http.StatusUnauthorized, MsgNotConnected)
}

func InvalidToken() *AppError {
	return newErr(KindInvalidToken, http.StatusUnauthorized, MsgInvalidToken)
}

func TokenExpired() *AppError {
	return newErr(KindTokenExpired, http.StatusUnauthorized, MsgTokenExpired)
}

func UserGone() *AppError {
	return newErr(KindUserGone, http.StatusUnauthorized, MsgUserGone)
}

// Unauthorized is a 401 with a caller-chosen message, e.g. bad credentials.
func Unauthorized(msg string, errs ...string) *AppError {
	return newErr(KindUnauthenticated, http.StatusUnauthorized, msg, errs...)
}

func Forbidden(msg string, errs ...string) *AppError {
	return newErr(KindForbidden, http.StatusForbidden, msg, errs...)
}

func NotFound(msg string) *AppError {
	return newErr(KindNotFound, http.StatusNotFound, msg)
}

func Validation(msg string, errs ...string) *AppError {
	return newErr(KindValidationFailed, http.StatusBadRequest, msg, errs...)
}

func Conflict(msg string, errs ...string) *AppError {
	return newErr(KindConflict, http.StatusBadRequest, msg, errs...)
}

func TooManyRequests(msg string) *AppError {
	return newErr(KindTooManyRequests, http.StatusTooManyRequests, msg)
}

func Internal(err error) *AppError {
	return newErr(KindInternal, http.StatusInternalServerError, MsgInternalError).WithCause(err)
}

// InternalWith is a 500 whose message is safe to show, e.g. a failed email delivery.
func InternalWith(msg string, err error, errs ...string) *AppError {
	return newErr(KindInternal, http.StatusInternalServerError, msg, errs...).WithCause(err)
}

// From returns err as an *AppError, wrapping unknown errors as opaque internal failures.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// Is reports whether err carries an *AppError of the given kind.
func Is(err error, kind Kind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}
