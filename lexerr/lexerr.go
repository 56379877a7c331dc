// Package lexerr defines the error kinds shared across the lexygen pipeline.
//
// Every stage returns a *lexerr.Error rather than a bare error, so the CLI
// can map a failure to an exit code and print exactly one diagnostic line
// without re-parsing the error text.
package lexerr

import "fmt"

// Kind identifies which stage of the pipeline failed and which exit code
// the CLI should use.
type Kind int

const (
	// SpecSyntax is a malformed .lexy line.
	SpecSyntax Kind = iota
	// DuplicateToken is a TOKEN_KIND defined more than once in a .lexy file.
	DuplicateToken
	// RegexSyntax is a pattern that violates the regex grammar.
	RegexSyntax
	// RegexSemantic is a pattern that is syntactically valid but semantically
	// illegal (empty char set, inverted char-set range, {0,0}, a byte outside
	// the alphabet 0-127).
	RegexSemantic
	// EmptyAlphabet is a pattern whose alphabet is empty.
	EmptyAlphabet
	// IO is a failure reading the spec file or writing generated output.
	IO
	// Usage is a CLI usage error (missing argument, bad extension).
	Usage
	// Internal marks an invariant violation inside the core. It is a bug,
	// not a user error, and is never mapped to exit codes 1-4.
	Internal
)

func (k Kind) String() string {
	switch k {
	case SpecSyntax:
		return "spec"
	case DuplicateToken:
		return "spec"
	case RegexSyntax:
		return "regex"
	case RegexSemantic:
		return "regex"
	case EmptyAlphabet:
		return "regex"
	case IO:
		return "io"
	case Usage:
		return "usage"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// ExitCode maps a Kind to the process exit code defined in spec.md §6.2.
// Internal errors are programming bugs and have no defined exit code:
// ExitCode returns -1 for them, and the CLI prints their diagnostic and
// exits with that value.
func (k Kind) ExitCode() int {
	switch k {
	case Usage:
		return 1
	case SpecSyntax, DuplicateToken:
		return 2
	case RegexSyntax, RegexSemantic, EmptyAlphabet:
		return 3
	case IO:
		return 4
	default:
		return -1
	}
}

// Error is the single error type returned by every pipeline stage.
type Error struct {
	Kind    Kind
	Stage   string // e.g. "regex parser", "subset construction"
	Message string
	Line    int // 1-indexed; 0 means "not applicable"
	Column  int // 1-indexed; 0 means "not applicable"
	Err     error
}

func (e *Error) Error() string {
	pos := ""
	if e.Line > 0 {
		if e.Column > 0 {
			pos = fmt.Sprintf(" [at line %d, column %d]", e.Line, e.Column)
		} else {
			pos = fmt.Sprintf(" [at line %d]", e.Line)
		}
	}
	return fmt.Sprintf("error: %s: %s%s", e.Stage, e.Message, pos)
}

// Unwrap exposes the wrapped error, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with no position information.
func New(kind Kind, stage, message string) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message}
}

// Newf builds an Error with no position information and a formatted message.
func Newf(kind Kind, stage, format string, args ...any) *Error {
	return &Error{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// At builds an Error with a line/column position.
func At(kind Kind, stage, message string, line, column int) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message, Line: line, Column: column}
}

// Wrap wraps an underlying error (e.g. an os.PathError) as the given kind.
func Wrap(kind Kind, stage string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Message: err.Error(), Err: err}
}
