// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Errors in the bril CLI fall on a boundary: some are programmer-facing (a
// malformed JSON document, a missing engine) and some are caller-input
// problems (a bad path, a flag typo). ActionableError carries enough context
// for the CLI layer to render both: what was attempted, which resource was
// involved, and concrete remediation steps.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages:
	// the operation that failed, the resource involved, and suggestions for
	// fixing the problem.
	//
	// Use the Context builder for incremental construction:
	//
	//	err := issue.NewContext().
	//		WithOperation("load program").
	//		WithResource("in.bril").
	//		WithSuggestion("Pipe the file through bril2json first").
	//		Wrap(cause).
	//		Err()
	ActionableError struct {
		// Operation describes what was being attempted, as a verb phrase
		// (e.g. "load program", "run program").
		Operation string

		// Resource identifies the file, path, or entity involved (optional).
		Resource string

		// Suggestions are hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError values.
	Context struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewContext creates an empty builder.
func NewContext() *Context {
	return &Context{}
}

// Wrap is shorthand for the common wrap-with-operation pattern. It returns
// nil when err is nil so call sites can wrap unconditionally.
func Wrap(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// Error implements the error interface with a terse single-line message.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the cause for errors.Is/As chains.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for terminal display. The terse form is the Error
// message plus bulleted suggestions; verbose mode appends the numbered error
// chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	for _, suggestion := range e.Suggestions {
		msg.WriteString("\n  • ")
		msg.WriteString(suggestion)
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// WithOperation sets the operation being performed.
func (c *Context) WithOperation(op string) *Context {
	c.operation = op
	return c
}

// WithResource sets the resource (file, path, entity) involved.
func (c *Context) WithResource(res string) *Context {
	c.resource = res
	return c
}

// WithSuggestion appends one remediation hint. May be called repeatedly.
func (c *Context) WithSuggestion(sug string) *Context {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// Wrap records the underlying cause.
func (c *Context) Wrap(err error) *Context {
	c.cause = err
	return c
}

// Build creates the ActionableError. Operation is required; Build returns nil
// without one.
func (c *Context) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// Err is Build returned as a plain error, convenient in return statements.
// A nil *ActionableError must not leak into a non-nil error interface.
func (c *Context) Err() error {
	if e := c.Build(); e != nil {
		return e
	}
	return nil
}
