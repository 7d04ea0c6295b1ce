package domain

import "errors"

// ResultKind distinguishes the outcomes of handling one event
type ResultKind int

const (
	// ResultOK means the event was applied
	ResultOK ResultKind = iota
	// ResultSkip means the event was a known benign shape and nothing was written
	ResultSkip
	// ResultError means the event could not be applied
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultSkip:
		return "skip"
	case ResultError:
		return "error"
	}
	return "unknown"
}

// Result is the outcome of a handler
type Result struct {
	kind   ResultKind
	reason string
	err    error
}

// Ok reports an applied event
func Ok() Result {
	return Result{kind: ResultOK}
}

// Skip reports a benign event that needed no mutation
func Skip(reason string) Result {
	return Result{kind: ResultSkip, reason: reason}
}

// Err reports a failed event. A nil error is treated as a failure with no cause.
func Err(err error) Result {
	if err == nil {
		err = errors.New("handler failed")
	}
	return Result{kind: ResultError, err: err}
}

func (r Result) Kind() ResultKind {
	return r.kind
}

// Reason is the skip reason
func (r Result) Reason() string {
	return r.reason
}

// Error returns the failure cause, nil unless Kind is ResultError
func (r Result) Error() error {
	return r.err
}

func (r Result) IsOK() bool {
	return r.kind == ResultOK
}

func (r Result) IsSkip() bool {
	return r.kind == ResultSkip
}

func (r Result) IsError() bool {
	return r.kind == ResultError
}
