// Package errs defines the error taxonomy shared by every component of the
// route-repair pipeline: a small set of sentinel causes plus a Kind enum
// that downstream transports (WebSocket gateway, CLI) map to status codes.
//
// Errors:
//
//	ErrNotFound  - referenced relation does not exist.
//	ErrBadInput  - relation or request is structurally invalid.
//	ErrTimeout   - route calculation exceeded its wall-clock budget.
//	ErrConflict  - a split conflict was detected against upstream state.
//	ErrUpstream  - the query service or element store returned a failure.
//	ErrInternal  - an invariant was violated; not retried.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel causes. Wrap with fmt.Errorf("...: %w", ErrX) at the point of
// detection so errors.Is/errors.As resolve through every layer boundary.
var (
	// ErrNotFound indicates the requested relation, segment, or stop was
	// not present in the element store.
	ErrNotFound = errors.New("errs: not found")

	// ErrBadInput indicates malformed or semantically invalid request data:
	// unsupported route type, empty relation, inconsistent member geometry.
	ErrBadInput = errors.New("errs: bad input")

	// ErrTimeout indicates the 3s route-calculation budget elapsed.
	ErrTimeout = errors.New("errs: timeout")

	// ErrConflict indicates the change builder detected that an upstream
	// segment mutated between fetch and write.
	ErrConflict = errors.New("errs: conflict")

	// ErrUpstream indicates the query service or element store returned a
	// non-success status. Reads may be retried; writes never are.
	ErrUpstream = errors.New("errs: upstream failure")

	// ErrInternal indicates an invariant violation, e.g. an incomplete
	// split-piece set. Never retried.
	ErrInternal = errors.New("errs: internal invariant violation")
)

// Kind classifies an error for transport-layer status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadInput
	KindTimeout
	KindConflict
	KindUpstream
)

// String renders the Kind name, mainly for logging.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadInput:
		return "bad_input"
	case KindTimeout:
		return "timeout"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// HTTPStatus returns the status code a transport should surface for k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return 404
	case KindBadInput:
		return 400
	case KindTimeout:
		return 408
	case KindConflict:
		return 409
	case KindUpstream:
		return 502
	default:
		return 500
	}
}

// RepairError pairs a Kind with the wrapped cause for errors.As extraction.
type RepairError struct {
	Kind Kind
	Err  error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RepairError) Unwrap() error { return e.Err }

// kindForSentinel maps a sentinel cause to its Kind.
var kindForSentinel = map[error]Kind{
	ErrNotFound: KindNotFound,
	ErrBadInput: KindBadInput,
	ErrTimeout:  KindTimeout,
	ErrConflict: KindConflict,
	ErrUpstream: KindUpstream,
	ErrInternal: KindInternal,
}

// Wrap builds a *RepairError classifying cause by its matching sentinel.
// msg is folded into the wrapped error via fmt.Errorf("%s: %w", msg, cause).
func Wrap(cause error, msg string) *RepairError {
	kind := KindInternal
	for sentinel, k := range kindForSentinel {
		if errors.Is(cause, sentinel) {
			kind = k
			break
		}
	}
	wrapped := cause
	if msg != "" {
		wrapped = fmt.Errorf("%s: %w", msg, cause)
	}

	return &RepairError{Kind: kind, Err: wrapped}
}

// NotFound builds a RepairError of KindNotFound wrapping ErrNotFound.
func NotFound(msg string) *RepairError { return Wrap(ErrNotFound, msg) }

// BadInput builds a RepairError of KindBadInput wrapping ErrBadInput.
func BadInput(msg string) *RepairError { return Wrap(ErrBadInput, msg) }

// Timeout builds a RepairError of KindTimeout wrapping ErrTimeout.
func Timeout(msg string) *RepairError { return Wrap(ErrTimeout, msg) }

// Conflict builds a RepairError of KindConflict wrapping ErrConflict.
func Conflict(msg string) *RepairError { return Wrap(ErrConflict, msg) }

// Upstream builds a RepairError of KindUpstream wrapping ErrUpstream.
func Upstream(msg string) *RepairError { return Wrap(ErrUpstream, msg) }

// Internal builds a RepairError of KindInternal wrapping ErrInternal.
func Internal(msg string) *RepairError { return Wrap(ErrInternal, msg) }
