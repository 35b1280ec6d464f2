package cmd

import (
	"errors"
	"fmt"
)

var (
	// ErrHelp is returned by Parse when the help option was given.
	ErrHelp = errors.New("cmd: help requested")
	// ErrNoLookup is reported when a lookup-bound value is parsed without a lookup service.
	ErrNoLookup = errors.New("cmd: no lookup service configured")
)

// Invariant names a structural rule a Spec declaration has to follow.
type Invariant string

const (
	InvariantMultiLast       Invariant = "multi argument must be the last one"
	InvariantRequiredOrder   Invariant = "can't have required argument after optional ones"
	InvariantLookupExclusive Invariant = "lookup and lookup_parent are mutually exclusive"
	InvariantUniqueName      Invariant = "name already declared"
	InvariantReservedName    Invariant = "name is reserved"
	InvariantEmptyName       Invariant = "name must not be empty"
	InvariantShortName       Invariant = "short name must be a single character"
	InvariantDefaultType     Invariant = "unsupported default value"
)

// BuildError reports a malformed declaration. It is a programming error in
// the command definition and never caused by user input.
type BuildError struct {
	Command     string
	Declaration string
	Invariant   Invariant
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("cmd: %s: declaration '%s': %s", e.Command, e.Declaration, e.Invariant)
}

// Is matches another *BuildError with the same invariant.
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	return ok && t.Invariant == e.Invariant
}

// Build error sentinels for use with errors.Is.
var (
	ErrMultiNotLast          = &BuildError{Invariant: InvariantMultiLast}
	ErrRequiredAfterOptional = &BuildError{Invariant: InvariantRequiredOrder}
	ErrLookupConflict        = &BuildError{Invariant: InvariantLookupExclusive}
)

// ParseErrorKind classifies a failed invocation.
type ParseErrorKind string

const (
	MissingArgument   ParseErrorKind = "missing argument"
	NoMatch           ParseErrorKind = "no matches"
	AmbiguousArgument ParseErrorKind = "more than one match"
	TooManyArguments  ParseErrorKind = "too many arguments"
	LookupFailed      ParseErrorKind = "lookup failed"
	InvalidOption     ParseErrorKind = "invalid option"
)

// ParseError reports why a token vector could not be resolved against a Spec.
// Its message is a single line suitable for printing in the shell.
type ParseError struct {
	Kind ParseErrorKind
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	msg := string(e.Kind)
	if e.Name != "" {
		msg = fmt.Sprintf("%s: '%s'", msg, e.Name)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches another *ParseError of the same kind. A target with a name
// only matches errors for that name.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && (t.Name == "" || t.Name == e.Name)
}

// Parse error sentinels for use with errors.Is.
var (
	ErrMissingArgument   = &ParseError{Kind: MissingArgument}
	ErrNoMatch           = &ParseError{Kind: NoMatch}
	ErrAmbiguousArgument = &ParseError{Kind: AmbiguousArgument}
	ErrTooManyArguments  = &ParseError{Kind: TooManyArguments}
	ErrLookupFailed      = &ParseError{Kind: LookupFailed}
	ErrInvalidOption     = &ParseError{Kind: InvalidOption}
)
