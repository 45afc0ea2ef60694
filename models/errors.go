package models

import (
	"fmt"
)

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorConflict reports a violated constraint: a duplicate vote, a fourth
// correct answer, an existing tag or account.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

// ErrorValidation carries translated messages keyed by snake_case field name.
type ErrorValidation struct {
	Message string
	Fields  map[string][]string
}

func (e ErrorValidation) Error() string { return e.Message }

func NewNotFound(format string, args ...interface{}) error {
	return ErrorNotFound{Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...interface{}) error {
	return ErrorConflict{Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(format string, args ...interface{}) error {
	return ErrorForbidden{Message: fmt.Sprintf(format, args...)}
}

var ErrUnauthenticated = ErrorUnauthorized{Message: "authentication required"}
