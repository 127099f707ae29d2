// Package numerr defines the failure taxonomy shared by the numeric engines.
//
// Every engine failure is an *Error carrying a Kind. Callers match a kind with
// errors.Is against the package sentinels or read it with KindOf.
package numerr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure.
type Kind string

const (
	// InvalidExpression: the formula cannot be tokenized or parsed.
	InvalidExpression Kind = "invalid_expression"

	// EvaluationError: the formula divided by zero or produced NaN/Inf.
	EvaluationError Kind = "evaluation_error"

	// ConfigurationError: a caller-supplied parameter is out of range.
	ConfigurationError Kind = "configuration_error"

	// BracketNotFound: no sign change within the integer scan range.
	BracketNotFound Kind = "bracket_not_found"

	// DegenerateStep: a step denominator fell below the degenerate threshold.
	DegenerateStep Kind = "degenerate_step"

	// DidNotConverge: the iteration cap was exhausted.
	DidNotConverge Kind = "did_not_converge"
)

// Sentinels, one per kind.
var (
	ErrInvalidExpression = errors.New("numerr: invalid expression")
	ErrEvaluation        = errors.New("numerr: evaluation error")
	ErrConfiguration     = errors.New("numerr: configuration error")
	ErrBracketNotFound   = errors.New("numerr: bracket not found")
	ErrDegenerateStep    = errors.New("numerr: degenerate step")
	ErrDidNotConverge    = errors.New("numerr: did not converge")
)

var sentinels = map[Kind]error{
	InvalidExpression:  ErrInvalidExpression,
	EvaluationError:    ErrEvaluation,
	ConfigurationError: ErrConfiguration,
	BracketNotFound:    ErrBracketNotFound,
	DegenerateStep:     ErrDegenerateStep,
	DidNotConverge:     ErrDidNotConverge,
}

// Error is a classified engine failure.
type Error struct {
	Kind      Kind
	Op        string // operation that failed, e.g. "secant"
	Msg       string
	Iteration int // iteration label when the failure happened inside a loop, else 0
	Err       error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Iteration > 0 {
		msg = fmt.Sprintf("%s (iteration %d)", msg, e.Iteration)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// New creates a classified error.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, op string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// AtIteration returns a copy of e labelled with the iteration it happened in.
func (e *Error) AtIteration(n int) *Error {
	c := *e
	c.Iteration = n
	return &c
}

// KindOf extracts the kind from err. It returns "" for nil or unclassified errors.
func KindOf(err error) Kind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
