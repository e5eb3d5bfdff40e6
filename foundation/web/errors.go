package web

import "errors"

// Error is a request error carrying the HTTP status the handler chain should
// respond with. Anything else bubbling up is treated as a 500.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRequestError checks whether an error chain contains a request error.
func IsRequestError(err error) (*Error, bool) {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr, true
	}
	return nil, false
}
