package execshell

import (
	"context"
	"fmt"
	"io"
	"os"
)

// LineStyler decorates a rendered command line before it is printed.
type LineStyler func(commandLine string) string

// PrintingCommandRunner is the dry-run CommandRunner: it prints each command line instead of running it
// and reports success so callers proceed exactly as they would after a real execution.
type PrintingCommandRunner struct {
	writer io.Writer
	styler LineStyler
}

// NewPrintingCommandRunner constructs a runner that prints to writer, defaulting to standard output.
func NewPrintingCommandRunner(writer io.Writer) *PrintingCommandRunner {
	if writer == nil {
		writer = os.Stdout
	}
	return &PrintingCommandRunner{writer: writer}
}

// WithLineStyler returns a copy of the runner that decorates lines with styler.
func (runner *PrintingCommandRunner) WithLineStyler(styler LineStyler) *PrintingCommandRunner {
	return &PrintingCommandRunner{writer: runner.writer, styler: styler}
}

// Run prints the command line verbatim.
func (runner *PrintingCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}

	commandLine := FormatCommandLine(command)
	if runner.styler != nil {
		commandLine = runner.styler(commandLine)
	}

	if _, writeError := fmt.Fprintln(runner.writer, commandLine); writeError != nil {
		return ExecutionResult{}, writeError
	}
	return ExecutionResult{ExitCode: 0}, nil
}
