// Package cli constructs the gitfleet command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the fleet subcommands.
package cli
