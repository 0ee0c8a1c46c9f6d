// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
)

// ParseErrorKind distinguishes the two recoverable parse failures. Both are
// caller-input problems; neither leaves partial state behind.
type ParseErrorKind int

const (
	// KindUnknownOption marks an option-shaped token outside the recognized
	// set, e.g. "--bogus".
	KindUnknownOption ParseErrorKind = iota + 1

	// KindMissingValue marks a value-taking option with no following value,
	// e.g. a trailing "-f".
	KindMissingValue
)

// ParseError reports a failed Parse. Its message names the token that
// triggered the failure; Kind classifies it for callers that branch on the
// failure mode.
type ParseError struct {
	Kind  ParseErrorKind
	cause error
}

// Error returns the underlying parser message, which names the offending
// token (e.g. "unknown flag: --bogus").
func (e *ParseError) Error() string { return e.cause.Error() }

// Unwrap exposes the underlying parser error.
func (e *ParseError) Unwrap() error { return e.cause }

// classifyParseError maps pflag's untyped errors onto the two-kind taxonomy.
// pflag reports failures as bare strings, so classification goes by message
// shape; anything that is not a missing option value is an unrecognized
// option. Help requests pass through as pflag.ErrHelp.
func classifyParseError(err error) error {
	if errors.Is(err, pflag.ErrHelp) {
		return err
	}
	kind := KindUnknownOption
	if strings.Contains(err.Error(), "needs an argument") {
		kind = KindMissingValue
	}
	return &ParseError{Kind: kind, cause: err}
}
