// Package apperror is the error taxonomy shared by the usecases and the HTTP
// layer. Usecases return one of the sentinel kinds, optionally wrapped in an
// *Error carrying a client-facing message and the offending field.
package apperror

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrDuplicateEmail       = errors.New("duplicate email")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredential    = errors.New("invalid credential")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
)

// Error tags a kind with a message and, optionally, the request field it
// relates to.
type Error struct {
	Kind  error
	Msg   string
	Param string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func WithParam(kind error, param, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Param: param}
}

func Validation(param, msg string) *Error {
	return WithParam(ErrValidation, param, msg)
}

func NotFound(msg string) *Error {
	return New(ErrNotFound, msg)
}

// Kind returns the sentinel kind of err, or nil for errors outside the
// taxonomy (treated as internal errors).
func Kind(err error) error {
	for _, k := range []error{
		ErrValidation,
		ErrDuplicateEmail,
		ErrNotFound,
		ErrForbidden,
		ErrUnauthorized,
		ErrInvalidCredential,
		ErrUnsupportedMediaType,
		ErrPayloadTooLarge,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Details extracts the client message and field tag. ok is false when err
// carries no *Error.
func Details(err error) (msg, param string, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg, e.Param, true
	}
	return "", "", false
}
