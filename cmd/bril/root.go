// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI surface of the bril tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/ananyagoenka/bril/internal/app"
	"github.com/ananyagoenka/bril/internal/config"
	"github.com/ananyagoenka/bril/internal/invocation"
	"github.com/ananyagoenka/bril/internal/issue"
	"github.com/ananyagoenka/bril/internal/logging"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCmd builds the single flat command of the tool. The flag grammar is
// registered by the invocation package so the CLI and the pure parser cannot
// drift apart; interspersed parsing is off so positional tokens — including
// hyphen-leading program arguments after the first positional or a "--" —
// flow through to the program untouched.
func newRootCmd(a *app.App, verbose bool) *cobra.Command {
	var inv *invocation.Invocation

	rootCmd := &cobra.Command{
		Use:   "bril [flags] [args...]",
		Short: "Run or validate bril programs",
		Long: TitleStyle.Render("bril") + SubtitleStyle.Render(" - run or validate bril IR programs") + `

Reads a bril program in its JSON form from --file (or stdin when the flag
is omitted), optionally validates it without executing, and forwards the
positional arguments to the program's entry function in order.

` + SubtitleStyle.Render("Examples:") + `
  bril -f program.json            Run a program from a file
  bril < program.json             Run a program from stdin
  bril -c -f program.json         Validate only, do not execute
  bril -p -f fib.json 10          Run with an argument and report the
                                  dynamic instruction count
  bril -f neg.json -- -5          Hyphen-leading arguments need a -- first`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv.Args = args
			return runInvocation(cmd.Context(), a, inv, verbose)
		},
	}

	// Positional tokens are program arguments, never subcommands.
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	inv = invocation.Bind(flags)

	return rootCmd
}

// runInvocation hands the invocation to the app and translates the outcome
// into CLI semantics: a program rejected under --check exits 2, everything
// else non-zero is 1, actionable errors render their suggestions.
func runInvocation(ctx context.Context, a *app.App, inv *invocation.Invocation, verbose bool) error {
	err := a.Run(ctx, inv)
	if err == nil {
		return nil
	}

	var ce *app.CheckError
	if errors.As(err, &ce) {
		return &ExitError{Code: 2, Err: fmt.Errorf("program rejected: %w", ce.Err)}
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return errors.New(ae.Format(verbose))
	}
	return err
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute loads the tool settings, wires the default app, and runs the root
// command. It is called by main.main().
func Execute() {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: ")+err.Error())
		cfg = config.Default()
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if !cfg.UI.Color {
		// lipgloss, fang, and charmbracelet/log all honor NO_COLOR.
		os.Setenv("NO_COLOR", "1")
	}

	verbose := cfg.LogLevel == "debug" || cfg.LogLevel == "trace"
	rootCmd := newRootCmd(app.New(app.Dependencies{}), verbose)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
