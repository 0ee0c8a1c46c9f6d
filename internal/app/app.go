// SPDX-License-Identifier: MPL-2.0

// Package app wires one validated invocation to the components that act on
// it. It is the composition root for the CLI layer: the cobra handler builds
// an App and delegates through its collaborator interfaces, so tests (and
// embedders bringing their own engine) can swap any stage.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ananyagoenka/bril/internal/invocation"
	"github.com/ananyagoenka/bril/internal/issue"
	"github.com/ananyagoenka/bril/internal/source"
	"github.com/ananyagoenka/bril/pkg/bril"
)

type (
	// Loader resolves an invocation's source (file or stdin, text or JSON)
	// into a program.
	Loader interface {
		Load(ctx context.Context, inv *invocation.Invocation) (*bril.Program, error)
	}

	// Checker validates a program without executing it. Semantic validation
	// is an external collaborator's contract; the default implementation
	// accepts every structurally decodable program.
	Checker interface {
		Check(ctx context.Context, prog *bril.Program) error
	}

	// Interpreter executes a program's entry function with the forwarded
	// positional arguments.
	Interpreter interface {
		Run(ctx context.Context, prog *bril.Program, args []string) (Result, error)
	}

	// Result reports what an execution did.
	Result struct {
		// DynInstructions counts dynamically executed instructions, for the
		// --profile report.
		DynInstructions uint64
	}

	// App executes invocations through its collaborators.
	App struct {
		loader  Loader
		checker Checker
		interp  Interpreter
		stdout  io.Writer
		stderr  io.Writer
		logger  *slog.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by New.
	Dependencies struct {
		Loader      Loader
		Checker     Checker
		Interpreter Interpreter
		Stdout      io.Writer
		Stderr      io.Writer
		Logger      *slog.Logger
	}

	// CheckError marks a program that loaded cleanly but was rejected by the
	// checker, so the CLI layer can exit with a distinct code.
	CheckError struct {
		Err error
	}
)

// Error implements the error interface.
func (e *CheckError) Error() string { return e.Err.Error() }

// Unwrap exposes the checker's error.
func (e *CheckError) Unwrap() error { return e.Err }

// New creates an App with defaults for omitted dependencies.
func New(deps Dependencies) *App {
	if deps.Loader == nil {
		deps.Loader = source.New()
	}
	if deps.Checker == nil {
		deps.Checker = acceptAllChecker{}
	}
	if deps.Interpreter == nil {
		deps.Interpreter = unavailableInterpreter{}
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &App{
		loader:  deps.Loader,
		checker: deps.Checker,
		interp:  deps.Interpreter,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		logger:  deps.Logger,
	}
}

// Run performs the invocation: load, then either check or execute. With
// Profile set, a successful execution reports the dynamic instruction count
// on stderr (stdout belongs to the program).
//
// inv is read-only; Run never mutates it.
func (a *App) Run(ctx context.Context, inv *invocation.Invocation) error {
	a.logger.DebugContext(ctx, "running invocation",
		"invocation", inv.String(),
		"source", inv.Source())

	prog, err := a.loader.Load(ctx, inv)
	if err != nil {
		return err
	}
	a.logger.DebugContext(ctx, "program loaded",
		"source", inv.Source(),
		"functions", len(prog.Functions))

	if inv.Check {
		if err := a.checker.Check(ctx, prog); err != nil {
			return &CheckError{Err: err}
		}
		a.logger.DebugContext(ctx, "program accepted", "source", inv.Source())
		return nil
	}

	res, err := a.interp.Run(ctx, prog, inv.Args)
	if err != nil {
		return err
	}

	if inv.Profile {
		fmt.Fprintf(a.stderr, "total_dyn_inst: %d\n", res.DynInstructions)
	}
	return nil
}

// acceptAllChecker is the default Checker: structural problems were already
// rejected by the loader, and semantic validation belongs to an external
// checker implementation.
type acceptAllChecker struct{}

func (acceptAllChecker) Check(context.Context, *bril.Program) error { return nil }

// unavailableInterpreter is the default Interpreter: it reports that this
// build has no execution engine linked in.
type unavailableInterpreter struct{}

func (unavailableInterpreter) Run(context.Context, *bril.Program, []string) (Result, error) {
	return Result{}, issue.NewContext().
		WithOperation("run program").
		WithSuggestion("Use --check to validate the program without executing it").
		WithSuggestion("Embed an Interpreter implementation when building a custom tool").
		Wrap(fmt.Errorf("no execution engine is linked into this build")).
		Err()
}
