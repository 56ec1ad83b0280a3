// Package cli constructs the git-move command-line interface. It wires the
// move workflow command with the configuration loader and structured logging,
// and exposes Execute for the binary entrypoint.
package cli
