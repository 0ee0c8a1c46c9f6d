// SPDX-License-Identifier: MPL-2.0

// Package invocation defines the invocation contract of the bril CLI: the
// structured record describing what a single run of the tool should do, and
// the parser that builds it from a raw argument vector.
//
// The record is constructed once per process, is immutable afterwards, and is
// handed read-only to the source loader, checker, and interpreter. Parsing is
// a pure transformation: no files, no environment, no standard input.
package invocation

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Invocation captures the intent of one CLI run. The zero value is a valid
// "run a JSON program from stdin with no arguments" invocation.
//
// Treat an Invocation as read-only after construction; it may be shared by
// concurrent consumers without synchronization.
type Invocation struct {
	// Profile requests a count of dynamic instructions executed, reported
	// after a successful run.
	Profile bool

	// File is the program source path. Empty means the program is read from
	// standard input; File and stdin are mutually exclusive sources.
	File string

	// Check requests validation only; the program is not executed.
	Check bool

	// Text marks the program as textual bril rather than the JSON form.
	Text bool

	// Args are the positional arguments forwarded to the program's entry
	// function, in command-line order. Order is semantically significant:
	// values bind positionally to the entry function's parameters. Tokens
	// beginning with a hyphen are legitimate members (negative numeric
	// literals) and are never reinterpreted as options.
	Args []string
}

// Bind registers the recognized option set on fs, backed by the fields of the
// returned Invocation. It is the single source of truth for the flag grammar,
// shared by Parse and by the cobra command in cmd/bril.
func Bind(fs *pflag.FlagSet) *Invocation {
	inv := &Invocation{}
	fs.BoolVarP(&inv.Profile, "profile", "p", false,
		"report the total number of dynamic instructions after a successful run")
	fs.StringVarP(&inv.File, "file", "f", "",
		"bril program to run; stdin is assumed when omitted")
	fs.BoolVarP(&inv.Check, "check", "c", false,
		"only validate the program, without executing it")
	fs.BoolVarP(&inv.Text, "text", "t", false,
		"the program is in textual form rather than JSON")
	return inv
}

// Parse builds an Invocation from the process argument vector (excluding the
// program name). Option parsing stops at the first token that is neither a
// recognized option nor an option value, or at a bare "--" (which is
// consumed); every remaining token flows verbatim into Args, hyphens and all.
//
// Failures are reported as a *ParseError of one of the two recoverable kinds;
// -h/--help surfaces pflag.ErrHelp so callers can show usage. No partial
// Invocation is returned on error.
func Parse(argv []string) (*Invocation, error) {
	fs := pflag.NewFlagSet("bril", pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // usage rendering belongs to the caller
	fs.SetInterspersed(false)

	inv := Bind(fs)
	if err := fs.Parse(argv); err != nil {
		return nil, classifyParseError(err)
	}
	inv.Args = fs.Args()
	return inv, nil
}

// Argv renders the invocation in canonical flag form. Parsing the result
// yields an equal Invocation: positionals are always preceded by an
// end-of-options marker so hyphen-leading and literal "--" arguments survive
// the round trip.
func (inv *Invocation) Argv() []string {
	var argv []string
	if inv.Profile {
		argv = append(argv, "--profile")
	}
	if inv.File != "" {
		argv = append(argv, "--file", inv.File)
	}
	if inv.Check {
		argv = append(argv, "--check")
	}
	if inv.Text {
		argv = append(argv, "--text")
	}
	if len(inv.Args) > 0 {
		argv = append(argv, "--")
		argv = append(argv, inv.Args...)
	}
	return argv
}

// String renders the canonical flag form as a single line, for logs.
func (inv *Invocation) String() string {
	return strings.Join(inv.Argv(), " ")
}

// UsesStdin reports whether the program source is standard input.
func (inv *Invocation) UsesStdin() bool {
	return inv.File == ""
}

// Source names the program source for logs and error messages.
func (inv *Invocation) Source() string {
	if inv.UsesStdin() {
		return "<stdin>"
	}
	return inv.File
}

// Equal reports field-wise equality, treating nil and empty Args alike.
func (inv *Invocation) Equal(other *Invocation) bool {
	if inv == nil || other == nil {
		return inv == other
	}
	return inv.Profile == other.Profile &&
		inv.File == other.File &&
		inv.Check == other.Check &&
		inv.Text == other.Text &&
		slices.Equal(inv.Args, other.Args)
}
