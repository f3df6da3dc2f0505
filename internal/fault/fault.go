// Package fault defines the failure kinds reported by split and merge
// operations. A Kind is itself an error so callers can match with errors.Is:
//
//	if errors.Is(err, fault.OutputConflict) { ... }
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	Unknown Kind = iota
	// InvalidInput: source missing or not a regular file, or a listed chunk missing.
	InvalidInput
	// InvalidConfiguration: bad chunk size, line count, size unit or output path.
	InvalidConfiguration
	// OutputConflict: output directory not empty, or output file already present.
	OutputConflict
	// AmbiguousGroup: zero or several valid chunk groups during auto-detection.
	AmbiguousGroup
	// ManifestError: manifest unusable, or an entry names an absent file.
	ManifestError
	// IOFailure: read or write error from the filesystem.
	IOFailure
)

var kindNames = map[Kind]string{
	Unknown:              "unknown",
	InvalidInput:         "invalid input",
	InvalidConfiguration: "invalid configuration",
	OutputConflict:       "output conflict",
	AmbiguousGroup:       "ambiguous group",
	ManifestError:        "manifest error",
	IOFailure:            "io failure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Error() string { return k.String() }

// Error is the structured failure returned by the core packages.
type Error struct {
	Kind Kind
	Op   string // operation, e.g. "split", "merge"
	Path string // file or directory the failure concerns
	Line int    // 1-based manifest line, 0 when not applicable
	// Candidates lists competing group keys for AmbiguousGroup.
	Candidates []string
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare Kind, so errors.Is(err, fault.IOFailure) works through
// any number of wrapping layers.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New returns an *Error of kind k.
func New(k Kind, op, path, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// IO wraps an underlying filesystem error as IOFailure.
func IO(op, path string, err error) *Error {
	return &Error{Kind: IOFailure, Op: op, Path: path, Msg: "i/o error", Err: err}
}

// KindOf returns the Kind carried by err, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Unknown
}
