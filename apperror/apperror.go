package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindAuthorization
	KindUnauthenticated
	KindInput
	KindValidation
	KindNotFound
	KindConflict
	KindUpload
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInput:
		return "input"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpload:
		return "upload"
	case KindPersistence:
		return "persistence"
	default:
		return "unexpected"
	}
}

// FieldError is used to indicate an error with a specific field path,
// e.g. "lessons[0].modules[1].video_url".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single error type handed back to transport code. Message is
// safe to show to clients; Err carries the internal cause for logging only.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Authorization(msg string) error { return newError(KindAuthorization, nil, msg) }

func Unauthenticated(msg string) error { return newError(KindUnauthenticated, nil, msg) }

func Input(msg string) error { return newError(KindInput, nil, msg) }

func NotFound(msg string) error { return newError(KindNotFound, nil, msg) }

func Conflict(msg string) error { return newError(KindConflict, nil, msg) }

// Validation builds a ValidationError carrying every failing field.
func Validation(flds ...FieldError) error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: flds}
}

// Upload wraps a storage provider failure. The provider message is kept as the
// cause and never sent to clients.
func Upload(err error, msg string) error { return newError(KindUpload, err, msg) }

func Persistence(err error, msg string) error { return newError(KindPersistence, err, msg) }

func Unexpected(err error, msg string) error { return newError(KindUnexpected, err, msg) }

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf classifies err. Anything that is not an *Error is unexpected.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnexpected
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthorization:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInput, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
