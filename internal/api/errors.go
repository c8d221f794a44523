package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed Comment Service call.
//
// Validation errors are detected client-side (no request issued) or returned
// by the server for bad input. Network covers timeouts and connectivity.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindServer     Kind = "server"
	KindNetwork    Kind = "network"
)

type Error struct {
	Kind    Kind
	Op      string // e.g. "comments.add"
	Message string
	Status  int // HTTP status, 0 when no response was received
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func errValidation(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

// KindOf returns the error's kind, defaulting to KindNetwork for errors that
// did not come from the service (the caller could not reach a verdict).
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindNetwork
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
