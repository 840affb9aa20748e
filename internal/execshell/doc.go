// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions gitfleet uses to run
// git and gh against fleet repositories in a testable manner.
package execshell
