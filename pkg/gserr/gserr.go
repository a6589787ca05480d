// pkg/gserr/gserr.go

// Package gserr defines the error kinds gitstatusd distinguishes when
// deciding how a request is reported (see spec ERROR HANDLING DESIGN):
// parse errors are dropped silently, not-a-repo and io/library errors
// produce an is_repo=0 response, and budget-exceeded is not an error at
// all but a signal to downgrade specific fields to unknown.
package gserr

import (
	cerr "github.com/cockroachdb/errors"
)

// Kind identifies which of the five error categories an error belongs to.
type Kind int

const (
	KindParse Kind = iota
	KindNotARepo
	KindIO
	KindLibrary
	KindBudgetExceeded
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse-error"
	case KindNotARepo:
		return "not-a-repo"
	case KindIO:
		return "io-error"
	case KindLibrary:
		return "library-error"
	case KindBudgetExceeded:
		return "budget-exceeded"
	default:
		return "unknown-error"
	}
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.kind.String() + ": " + e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

// sentinels used with errors.Is to check for a kind without unwrapping.
var (
	sentinelParse          = &kindError{kind: KindParse, err: cerr.New("parse error")}
	sentinelNotARepo       = &kindError{kind: KindNotARepo, err: cerr.New("not a repository")}
	sentinelIO             = &kindError{kind: KindIO, err: cerr.New("io error")}
	sentinelLibrary        = &kindError{kind: KindLibrary, err: cerr.New("library error")}
	sentinelBudgetExceeded = &kindError{kind: KindBudgetExceeded, err: cerr.New("budget exceeded")}
)

// Is lets callers write errors.Is(err, gserr.ErrNotARepo) etc.
func (e *kindError) Is(target error) bool {
	other, ok := target.(*kindError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

var (
	ErrParse          error = sentinelParse
	ErrNotARepo       error = sentinelNotARepo
	ErrIO             error = sentinelIO
	ErrLibrary        error = sentinelLibrary
	ErrBudgetExceeded error = sentinelBudgetExceeded
)

// Wrap annotates err with kind and a human hint, preserving the original
// error for errors.Is/errors.As and for %+v stack printing.
func Wrap(kind Kind, hint string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := cerr.WithHint(cerr.WithStack(err), hint)
	return &kindError{kind: kind, err: wrapped}
}

// Parsef builds a parse-error with a formatted hint.
func Parsef(format string, args ...interface{}) error {
	return &kindError{kind: KindParse, err: cerr.Newf(format, args...)}
}

// NotARepo builds a not-a-repo error for dir.
func NotARepo(dir string, cause error) error {
	if cause == nil {
		cause = cerr.New("no repository found")
	}
	return Wrap(KindNotARepo, "directory is not inside a git working tree: "+dir, cause)
}

// KindOf reports the Kind of err, or false if err was not produced by this
// package (or was nil).
func KindOf(err error) (Kind, bool) {
	var ke *kindError
	if cerr.As(err, &ke) {
		return ke.kind, true
	}
	return 0, false
}
