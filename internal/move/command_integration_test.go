package move_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitmove/internal/move"
)

const (
	integrationInitialCommitMessageConstant = "Add A.cs"
	integrationFileContentConstant          = "class A {\n  void Run() {}\n}\n"
)

func runGit(testInstance *testing.T, workingDirectory string, arguments ...string) string {
	testInstance.Helper()

	command := exec.Command("git", arguments...)
	command.Dir = workingDirectory
	output, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(output))
	return strings.TrimSpace(string(output))
}

func TestCommandMovesFilesWithHistoryInRealRepository(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	testInstance.Setenv("GIT_AUTHOR_NAME", "Mover")
	testInstance.Setenv("GIT_AUTHOR_EMAIL", "mover@example.com")
	testInstance.Setenv("GIT_COMMITTER_NAME", "Mover")
	testInstance.Setenv("GIT_COMMITTER_EMAIL", "mover@example.com")
	testInstance.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	testInstance.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	repositoryRoot := testInstance.TempDir()
	scriptsDirectory := filepath.Join(repositoryRoot, "Scripts")
	require.NoError(testInstance, os.MkdirAll(scriptsDirectory, 0o755))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryRoot, "Core"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryRoot, "Core", "A.cs"), []byte(integrationFileContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(scriptsDirectory, ".keep"), nil, 0o644))

	runGit(testInstance, repositoryRoot, "init", "--quiet")
	runGit(testInstance, repositoryRoot, "add", ".")
	runGit(testInstance, repositoryRoot, "commit", "--quiet", "-m", integrationInitialCommitMessageConstant)
	originalBranch := runGit(testInstance, repositoryRoot, "rev-parse", "--abbrev-ref", "HEAD")

	builder := move.CommandBuilder{
		LoggerProvider:   zap.NewNop,
		WorkingDirectory: scriptsDirectory,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetContext(context.Background())
	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{"--halt-on-failure", "Core/A.cs", "Core/B.cs"})

	require.NoError(testInstance, command.Execute())

	_, sourceStatError := os.Stat(filepath.Join(repositoryRoot, "Core", "A.cs"))
	require.ErrorIs(testInstance, sourceStatError, os.ErrNotExist)
	movedContent, readError := os.ReadFile(filepath.Join(repositoryRoot, "Core", "B.cs"))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, integrationFileContentConstant, string(movedContent))

	require.Equal(testInstance, originalBranch, runGit(testInstance, repositoryRoot, "rev-parse", "--abbrev-ref", "HEAD"))
	require.Empty(testInstance, runGit(testInstance, repositoryRoot, "branch", "--list", "temp-move-file"))
	require.Empty(testInstance, runGit(testInstance, repositoryRoot, "status", "--porcelain"))

	blameOutput := runGit(testInstance, repositoryRoot, "blame", "--porcelain", "Core/B.cs")
	require.Contains(testInstance, blameOutput, "summary "+integrationInitialCommitMessageConstant)

	parentLine := runGit(testInstance, repositoryRoot, "log", "-1", "--format=%P", "HEAD~")
	require.Len(testInstance, strings.Fields(parentLine), 2)
}
