// SPDX-License-Identifier: MPL-2.0

package cmd

// ExitError carries a specific process exit code through the cobra/fang
// error path. Execute inspects the returned error chain for it; any other
// error exits 1.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *ExitError) Unwrap() error { return e.Err }
