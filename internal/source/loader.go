// SPDX-License-Identifier: MPL-2.0

// Package source loads the program a single invocation refers to: either the
// file named by --file or standard input, in JSON form or — via an injected
// parser — textual form.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ananyagoenka/bril/internal/invocation"
	"github.com/ananyagoenka/bril/internal/issue"
	"github.com/ananyagoenka/bril/pkg/bril"
)

// TextParser parses textual-form bril into the program model. Textual parsing
// is an external collaborator; this module only defines the seam.
type TextParser interface {
	Parse(ctx context.Context, src []byte) (*bril.Program, error)
}

// Loader reads and decodes programs. Fields are injection points; New fills
// production defaults.
type Loader struct {
	// Stdin is the reader used when the invocation names no file.
	Stdin io.Reader
	// Parser handles textual-form programs.
	Parser TextParser
}

// New returns a Loader reading from the process stdin, with textual-form
// parsing unavailable.
func New() *Loader {
	return &Loader{Stdin: os.Stdin, Parser: UnavailableTextParser{}}
}

// Load reads the program bytes selected by inv (file or stdin, exactly one)
// and decodes them according to inv.Text.
func (l *Loader) Load(ctx context.Context, inv *invocation.Invocation) (*bril.Program, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load program canceled: %w", ctx.Err())
	default:
	}

	data, err := l.read(inv)
	if err != nil {
		return nil, err
	}

	if inv.Text {
		prog, err := l.Parser.Parse(ctx, data)
		if err != nil {
			return nil, issue.NewContext().
				WithOperation("parse textual bril").
				WithResource(inv.Source()).
				Wrap(err).
				Err()
		}
		return prog, nil
	}

	prog, err := bril.UnmarshalProgram(data)
	if err != nil {
		return nil, issue.NewContext().
			WithOperation("load program").
			WithResource(inv.Source()).
			WithSuggestion("Pass --text if the program is textual bril rather than JSON").
			Wrap(err).
			Err()
	}
	return prog, nil
}

func (l *Loader) read(inv *invocation.Invocation) ([]byte, error) {
	if inv.UsesStdin() {
		data, err := io.ReadAll(l.Stdin)
		if err != nil {
			return nil, issue.NewContext().
				WithOperation("read program from stdin").
				Wrap(err).
				Err()
		}
		return data, nil
	}

	data, err := os.ReadFile(inv.File)
	if err != nil {
		return nil, issue.NewContext().
			WithOperation("read program").
			WithResource(inv.File).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Omit --file to read the program from stdin").
			Wrap(err).
			Err()
	}
	return data, nil
}

// UnavailableTextParser is the default Parser: it reports that this build has
// no textual-form parser linked in.
type UnavailableTextParser struct{}

// Parse always fails with remediation hints.
func (UnavailableTextParser) Parse(context.Context, []byte) (*bril.Program, error) {
	return nil, issue.NewContext().
		WithOperation("parse textual bril").
		WithSuggestion("Convert the program with bril2json and drop --text").
		WithSuggestion("Embed a TextParser implementation when building a custom tool").
		Wrap(fmt.Errorf("no textual-form parser is linked into this build")).
		Err()
}
