// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ananyagoenka/bril/internal/invocation"
	"github.com/ananyagoenka/bril/internal/issue"
	"github.com/ananyagoenka/bril/pkg/bril"
)

const nopProgram = `{"functions": [{"name": "main", "instrs": [{"op": "nop"}]}]}`

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prog.json")
	if err := os.WriteFile(path, []byte(nopProgram), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loader{Stdin: strings.NewReader("not consulted"), Parser: UnavailableTextParser{}}
	prog, err := l.Load(context.Background(), &invocation.Invocation{File: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if prog.Entry() == nil {
		t.Error("loaded program has no entry function")
	}
}

func TestLoadFromStdin(t *testing.T) {
	t.Parallel()

	l := &Loader{Stdin: strings.NewReader(nopProgram), Parser: UnavailableTextParser{}}
	prog, err := l.Load(context.Background(), &invocation.Invocation{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(prog.Functions); got != 1 {
		t.Errorf("len(Functions) = %d, want 1", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	l := &Loader{Stdin: strings.NewReader(""), Parser: UnavailableTextParser{}}
	_, err := l.Load(context.Background(), &invocation.Invocation{File: filepath.Join(t.TempDir(), "nope.json")})
	if err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error chain missing os.ErrNotExist: %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || len(ae.Suggestions) == 0 {
		t.Errorf("want actionable error with suggestions, got %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	t.Parallel()

	l := &Loader{Stdin: strings.NewReader("@main { ret; }"), Parser: UnavailableTextParser{}}
	_, err := l.Load(context.Background(), &invocation.Invocation{})
	if err == nil {
		t.Fatal("Load() error = nil, want decode error")
	}

	// A textual program fed without --text should steer the user to the flag.
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error type = %T, want *issue.ActionableError", err)
	}
	found := false
	for _, s := range ae.Suggestions {
		if strings.Contains(s, "--text") {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions %q do not mention --text", ae.Suggestions)
	}
}

func TestLoadTextFormDefaultParser(t *testing.T) {
	t.Parallel()

	l := &Loader{Stdin: strings.NewReader("@main { ret; }"), Parser: UnavailableTextParser{}}
	_, err := l.Load(context.Background(), &invocation.Invocation{Text: true})
	if err == nil {
		t.Fatal("Load() error = nil, want unavailable-parser error")
	}
	if !strings.Contains(err.Error(), "no textual-form parser") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadTextFormInjectedParser(t *testing.T) {
	t.Parallel()

	l := &Loader{
		Stdin: strings.NewReader("@main { ret; }"),
		Parser: parserFunc(func(_ context.Context, src []byte) (*bril.Program, error) {
			if !strings.Contains(string(src), "@main") {
				t.Errorf("parser received %q", src)
			}
			return &bril.Program{Functions: []bril.Function{{Name: "main"}}}, nil
		}),
	}

	prog, err := l.Load(context.Background(), &invocation.Invocation{Text: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if prog.Entry() == nil {
		t.Error("parsed program has no entry function")
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Loader{Stdin: strings.NewReader(nopProgram), Parser: UnavailableTextParser{}}
	if _, err := l.Load(ctx, &invocation.Invocation{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

type parserFunc func(context.Context, []byte) (*bril.Program, error)

func (f parserFunc) Parse(ctx context.Context, src []byte) (*bril.Program, error) {
	return f(ctx, src)
}
