// Package errors provides error handling utilities for drugrake.
// It offers consistent error wrapping, classification by kind, and
// visible accounting of items skipped by partial-failure tolerant batches.
package errors

import (
	stderrors "errors"
	"strings"

	"go.uber.org/zap"
)

// Op represents an operation name for error context.
type Op string

// Error represents an application error with context.
type Error struct {
	Op   Op     // Operation that failed
	Kind Kind   // Category of error
	Err  error  // Underlying error
	Msg  string // Additional context message
}

// Kind represents the category of error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDatabase
	KindSearch
	KindIO
	KindValidation
	KindConfig
	KindNetwork
	KindParse
	KindNotFound
	KindMalformed
)

// Sentinels matched with Is. They compare by Kind only, so any error of
// the same kind in a wrap chain matches.
var (
	ErrDocumentNotFound  = &Error{Kind: KindNotFound, Msg: "document not found"}
	ErrMalformedDocument = &Error{Kind: KindMalformed, Msg: "malformed document"}
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindSearch:
		return "search"
	case KindIO:
		return "io"
	case KindValidation:
		return "validation"
	case KindConfig:
		return "config"
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not found"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
		if e.Err != nil {
			b.WriteString(": ")
		}
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a kind sentinel matching e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind == KindUnknown {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// E creates a new Error with the given arguments.
// Arguments can be: Op, Kind, error, string (message).
func E(args ...interface{}) *Error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case string:
			e.Msg = a
		}
	}
	return e
}

// Wrap wraps an error with an operation name for context.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapMsg wraps an error with an operation name and message.
func WrapMsg(op Op, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Msg: msg, Err: err}
}

// Is is errors.Is from the standard library, re-exported so callers that
// import this package as errors do not need a second import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// New is errors.New from the standard library.
func New(text string) error {
	return stderrors.New(text)
}

// IsKind checks if any error in the chain is of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the first non-unknown kind in the chain, or KindUnknown.
func GetKind(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind != KindUnknown {
			return e.Kind
		}
		err = stderrors.Unwrap(err)
	}
	return KindUnknown
}

// SkipCounter tracks how many items a batch skipped.
// Use this to provide visibility into partial failures.
type SkipCounter struct {
	Op         string
	Count      int
	LastErr    error
	LastDetail string
}

// NewSkipCounter creates a new skip counter for the given operation.
func NewSkipCounter(op string) *SkipCounter {
	return &SkipCounter{Op: op}
}

// Skip records a skipped item due to an error.
func (s *SkipCounter) Skip(err error, detail string) {
	s.Count++
	s.LastErr = err
	s.LastDetail = detail
}

// Report logs a summary if any items were skipped.
func (s *SkipCounter) Report(logger *zap.Logger) {
	if s.Count == 0 || logger == nil {
		return
	}
	logger.Warn("items skipped",
		zap.String("op", s.Op),
		zap.Int("count", s.Count),
		zap.Error(s.LastErr),
		zap.String("detail", s.LastDetail))
}

// IgnoreError explicitly ignores an error with a reason.
// This documents that the error is intentionally ignored.
//
// Example:
//
//	errors.IgnoreError(logger, file.Close(), "cleanup during error recovery")
func IgnoreError(logger *zap.Logger, err error, reason string) {
	if err != nil && logger != nil {
		logger.Debug("ignoring error", zap.String("reason", reason), zap.Error(err))
	}
}
