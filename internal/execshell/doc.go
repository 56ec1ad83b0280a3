// Package execshell provides structured helpers for invoking git.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle events.
// Two runners are provided: OSCommandRunner executes commands through os/exec,
// and PrintingCommandRunner prints them instead, which is how dry runs are
// implemented without any other change in the calling code.
package execshell
