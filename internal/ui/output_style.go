package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	noColorEnvironmentVariableConstant = "NO_COLOR"
	stepHeaderColorConstant            = "12"
	commandLineColorConstant           = "250"
	noticeColorConstant                = "10"
	stepHeaderPrefixConstant           = "# "
)

type fileDescriptorWriter interface {
	Fd() uintptr
}

type unwrappableWriter interface {
	Unwrap() io.Writer
}

// OutputStyle decorates dry-run output. The zero value renders plain text.
type OutputStyle struct {
	styled           bool
	stepHeaderStyle  lipgloss.Style
	commandLineStyle lipgloss.Style
	noticeStyle      lipgloss.Style
}

// PlainOutputStyle renders text unchanged.
func PlainOutputStyle() OutputStyle {
	return OutputStyle{}
}

// TerminalOutputStyle renders text with colours.
func TerminalOutputStyle() OutputStyle {
	return OutputStyle{
		styled:           true,
		stepHeaderStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(stepHeaderColorConstant)),
		commandLineStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(commandLineColorConstant)),
		noticeStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color(noticeColorConstant)),
	}
}

// DetectOutputStyle picks the terminal style when writer is a colour-capable terminal and NO_COLOR is unset.
func DetectOutputStyle(writer io.Writer) OutputStyle {
	if len(os.Getenv(noColorEnvironmentVariableConstant)) > 0 {
		return PlainOutputStyle()
	}

	for {
		wrapped, isWrapped := writer.(unwrappableWriter)
		if !isWrapped {
			break
		}
		writer = wrapped.Unwrap()
	}

	descriptorWriter, hasDescriptor := writer.(fileDescriptorWriter)
	if !hasDescriptor {
		return PlainOutputStyle()
	}
	fileDescriptor := descriptorWriter.Fd()
	if !isatty.IsTerminal(fileDescriptor) && !isatty.IsCygwinTerminal(fileDescriptor) {
		return PlainOutputStyle()
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return PlainOutputStyle()
	}
	return TerminalOutputStyle()
}

// Styled reports whether the style adds decorations.
func (style OutputStyle) Styled() bool {
	return style.styled
}

// StepHeader renders the title line printed before a workflow step.
func (style OutputStyle) StepHeader(title string) string {
	header := stepHeaderPrefixConstant + title
	if !style.styled {
		return header
	}
	return style.stepHeaderStyle.Render(header)
}

// CommandLine renders a printed command line.
func (style OutputStyle) CommandLine(commandLine string) string {
	if !style.styled {
		return commandLine
	}
	return style.commandLineStyle.Render(commandLine)
}

// Notice renders an informational line such as an accepted move.
func (style OutputStyle) Notice(message string) string {
	if !style.styled {
		return message
	}
	return style.noticeStyle.Render(message)
}
