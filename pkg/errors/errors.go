package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError is returned when a table, row or selection does not
// exist.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewResourceNotFoundError(kind, id string) error {
	return &ResourceNotFoundError{Kind: kind, ID: id}
}

func NewTableNotFoundError(id string) error {
	return NewResourceNotFoundError("table", id)
}

func NewSelectionNotFoundError(id string) error {
	return NewResourceNotFoundError("selection", id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// InvalidArgumentError is returned when a request breaks a table invariant.
type InvalidArgumentError struct {
	msg string
	err error
}

func (e *InvalidArgumentError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.err
}

func NewInvalidArgumentError(msg string, err error) error {
	return &InvalidArgumentError{msg: msg, err: err}
}

func IsInvalidArgumentError(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}
