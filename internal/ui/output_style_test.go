package ui_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitmove/internal/ui"
	"github.com/temirov/gitmove/internal/utils"
)

func TestDetectOutputStyleReturnsPlainForNonTerminalWriters(testInstance *testing.T) {
	testCases := []struct {
		name   string
		writer io.Writer
	}{
		{name: "buffer", writer: &bytes.Buffer{}},
		{name: "flushing_writer", writer: utils.NewFlushingWriter(&bytes.Buffer{})},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.False(testInstance, ui.DetectOutputStyle(testCase.writer).Styled())
		})
	}
}

func TestDetectOutputStyleHonorsNoColor(testInstance *testing.T) {
	testInstance.Setenv("NO_COLOR", "1")
	require.False(testInstance, ui.DetectOutputStyle(&bytes.Buffer{}).Styled())
}

func TestPlainOutputStyleRendersTextUnchanged(testInstance *testing.T) {
	style := ui.PlainOutputStyle()

	require.Equal(testInstance, "# create-branch", style.StepHeader("create-branch"))
	require.Equal(testInstance, "git checkout -b temp", style.CommandLine("git checkout -b temp"))
	require.Equal(testInstance, "Moving a to b", style.Notice("Moving a to b"))
}

func TestTerminalOutputStyleKeepsText(testInstance *testing.T) {
	style := ui.TerminalOutputStyle()

	require.True(testInstance, style.Styled())
	require.Contains(testInstance, style.StepHeader("merge-back"), "# merge-back")
	require.Contains(testInstance, style.CommandLine("git checkout -"), "git checkout -")
	require.Contains(testInstance, style.Notice("Moving a to b"), "Moving a to b")
}
