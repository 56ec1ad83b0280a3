package move_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitmove/internal/execshell"
	"github.com/temirov/gitmove/internal/move"
	"github.com/temirov/gitmove/internal/utils"
	"github.com/temirov/gitmove/internal/utils/flags"
)

const expectedDryRunOutputConstant = `Moving ../Core/A.cs to ../Core/B.cs
# Create temporary branch
git checkout -b temp-move-file
# Move files and commit
git mv ../Core/A.cs ../Core/B.cs
git commit -m "Move files to their new location"
# Restore original files and commit
git checkout HEAD~ -- ../Core/A.cs
git commit -m "Restore original files to keep their history"
# Return to the original branch and merge
git checkout -
git merge --no-ff --no-edit temp-move-file
# Remove original files and commit
git rm ../Core/A.cs
git commit -m "Remove original files after history-preserving move"
# Delete temporary branch
git branch -D temp-move-file
`

type recordingCommandRunner struct {
	commands  []execshell.ShellCommand
	exitCodes map[string]int
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	exitCode := runner.exitCodes[strings.Join(command.Details.Arguments, " ")]
	return execshell.ExecutionResult{ExitCode: exitCode}, nil
}

func (runner *recordingCommandRunner) argumentLines() []string {
	lines := make([]string, 0, len(runner.commands))
	for _, command := range runner.commands {
		lines = append(lines, strings.Join(command.Details.Arguments, " "))
	}
	return lines
}

type commandHarness struct {
	fileSystem afero.Fs
	runner     *recordingCommandRunner
	output     *bytes.Buffer
	logs       *observer.ObservedLogs
	builder    move.CommandBuilder
}

func newCommandHarness(testInstance *testing.T, configuration move.WorkflowConfiguration) *commandHarness {
	testInstance.Helper()

	logCore, observedLogs := observer.New(zap.DebugLevel)
	logger := zap.New(logCore)
	harness := &commandHarness{
		fileSystem: newRepositoryFileSystem(testInstance),
		runner:     &recordingCommandRunner{},
		output:     &bytes.Buffer{},
		logs:       observedLogs,
	}
	harness.builder = move.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return logger },
		ConfigurationProvider: func() move.WorkflowConfiguration { return configuration },
		WorkingDirectory:      testWorkingDirectoryConstant,
		FileSystem:            harness.fileSystem,
		CommandRunner:         harness.runner,
		HomeExpander:          newHomeExpander(),
	}
	return harness
}

func (harness *commandHarness) execute(testInstance *testing.T, arguments ...string) error {
	testInstance.Helper()

	command, buildError := harness.builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetOut(harness.output)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(flags.NormalizeToggleArguments(arguments))
	return command.Execute()
}

func TestCommandDryRunPrintsSixCommandGroups(testInstance *testing.T) {
	harness := newCommandHarness(testInstance, move.DefaultWorkflowConfiguration())

	executionError := harness.execute(testInstance, "--dry-run", "Core/A.cs", "Core/B.cs")

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, expectedDryRunOutputConstant, harness.output.String())
	require.Empty(testInstance, harness.runner.commands)

	sourceExists, sourceError := afero.Exists(harness.fileSystem, testRepositoryRootConstant+"/Core/A.cs")
	require.NoError(testInstance, sourceError)
	require.True(testInstance, sourceExists)
	destinationExists, destinationError := afero.Exists(harness.fileSystem, testRepositoryRootConstant+"/Core/B.cs")
	require.NoError(testInstance, destinationError)
	require.False(testInstance, destinationExists)
}

func TestCommandDryRunFromConfiguration(testInstance *testing.T) {
	configuration := move.DefaultWorkflowConfiguration()
	configuration.DryRun = true
	harness := newCommandHarness(testInstance, configuration)

	require.NoError(testInstance, harness.execute(testInstance, "Core/A.cs", "Core/B.cs"))
	require.Equal(testInstance, expectedDryRunOutputConstant, harness.output.String())
	require.Empty(testInstance, harness.runner.commands)
}

func TestCommandDryRunFlagOverridesConfiguration(testInstance *testing.T) {
	configuration := move.DefaultWorkflowConfiguration()
	configuration.DryRun = true
	harness := newCommandHarness(testInstance, configuration)

	require.NoError(testInstance, harness.execute(testInstance, "--dry-run", "no", "Core/A.cs", "Core/B.cs"))
	require.Len(testInstance, harness.runner.commands, 10)
}

func TestCommandExecutesGitCommands(testInstance *testing.T) {
	harness := newCommandHarness(testInstance, move.DefaultWorkflowConfiguration())

	require.NoError(testInstance, harness.execute(testInstance, "Core/A.cs", "Core/B.cs"))

	require.Equal(testInstance, []string{
		"checkout -b temp-move-file",
		"mv ../Core/A.cs ../Core/B.cs",
		"commit -m Move files to their new location",
		"checkout HEAD~ -- ../Core/A.cs",
		"commit -m Restore original files to keep their history",
		"checkout -",
		"merge --no-ff --no-edit temp-move-file",
		"rm ../Core/A.cs",
		"commit -m Remove original files after history-preserving move",
		"branch -D temp-move-file",
	}, harness.runner.argumentLines())
	for _, command := range harness.runner.commands {
		require.Equal(testInstance, execshell.CommandGit, command.Name)
		require.Equal(testInstance, testWorkingDirectoryConstant, command.Details.WorkingDirectory)
	}
	require.Equal(testInstance, "Moving ../Core/A.cs to ../Core/B.cs\n", harness.output.String())
	require.Equal(testInstance, 1, harness.logs.FilterMessage("move workflow completed").Len())
}

func TestCommandFlagOverrides(testInstance *testing.T) {
	harness := newCommandHarness(testInstance, move.DefaultWorkflowConfiguration())
	harness.builder.WorkingDirectory = testRepositoryRootConstant

	executionError := harness.execute(testInstance,
		"--branch", "relocate_scripts",
		"--prefix", "",
		"--required-directory", "project",
		"Core/A.cs", "Core/B.cs",
	)

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "checkout -b relocate_scripts", harness.runner.argumentLines()[0])
	require.Equal(testInstance, "mv Core/A.cs Core/B.cs", harness.runner.argumentLines()[1])
	require.Equal(testInstance, "branch -D relocate_scripts", harness.runner.argumentLines()[len(harness.runner.commands)-1])
}

func TestCommandAppendsManifestMoves(testInstance *testing.T) {
	harness := newCommandHarness(testInstance, move.DefaultWorkflowConfiguration())
	manifestContent := "moves:\n  - source: Core/C.cs\n    destination: Engine/C.cs\n"
	require.NoError(testInstance, harness.fileSystem.MkdirAll(testHomeDirectoryConstant, 0o755))
	require.NoError(testInstance, afero.WriteFile(harness.fileSystem, testManifestPathConstant, []byte(manifestContent), 0o644))

	require.NoError(testInstance, harness.execute(testInstance, "--manifest", "~/moves.yaml", "Core/A.cs", "Core/B.cs"))

	require.Equal(testInstance,
		"Moving ../Core/A.cs to ../Core/B.cs\nMoving ../Core/C.cs to ../Engine/C.cs\n",
		harness.output.String(),
	)
	require.Equal(testInstance, "mv ../Core/A.cs ../Core/B.cs", harness.runner.argumentLines()[1])
	require.Equal(testInstance, "mv ../Core/C.cs ../Engine/C.cs", harness.runner.argumentLines()[2])
}

func TestCommandAcceptsManifestWithoutArguments(testInstance *testing.T) {
	harness := newCommandHarness(testInstance, move.DefaultWorkflowConfiguration())
	require.NoError(testInstance, afero.WriteFile(harness.fileSystem, testManifestPathConstant, []byte("moves:\n  - source: Core/A.cs\n    destination: Core/B.cs\n"), 0o644))

	require.NoError(testInstance, harness.execute(testInstance, "--dry-run", "--manifest", testManifestPathConstant))
	require.Equal(testInstance, expectedDryRunOutputConstant, harness.output.String())
}

func TestCommandRejectsBeforeIssuingCommands(testInstance *testing.T) {
	testCases := []struct {
		name             string
		workingDirectory string
		arguments        []string
		verify           func(*testing.T, error)
	}{
		{
			name:             "wrong_directory",
			workingDirectory: testRepositoryRootConstant,
			arguments:        []string{"Core/A.cs", "Core/B.cs"},
			verify: func(t *testing.T, executionError error) {
				require.Equal(t, move.WrongDirectoryError{Expected: "Scripts", Actual: "project"}, executionError)
			},
		},
		{
			name:             "invalid_branch",
			workingDirectory: testWorkingDirectoryConstant,
			arguments:        []string{"--branch", "temp move", "Core/A.cs", "Core/B.cs"},
			verify: func(t *testing.T, executionError error) {
				require.Equal(t, move.InvalidBranchNameError{BranchName: "temp move"}, executionError)
			},
		},
		{
			name:             "odd_arguments",
			workingDirectory: testWorkingDirectoryConstant,
			arguments:        []string{"Core/A.cs"},
			verify: func(t *testing.T, executionError error) {
				require.True(t, move.IsUsageError(executionError))
			},
		},
		{
			name:             "missing_source",
			workingDirectory: testWorkingDirectoryConstant,
			arguments:        []string{"Core/Missing.cs", "Core/B.cs"},
			verify: func(t *testing.T, executionError error) {
				require.Equal(t, move.SourceNotFoundError{Path: "../Core/Missing.cs"}, executionError)
			},
		},
		{
			name:             "missing_manifest",
			workingDirectory: testWorkingDirectoryConstant,
			arguments:        []string{"--manifest", "~/absent.yaml", "Core/A.cs", "Core/B.cs"},
			verify: func(t *testing.T, executionError error) {
				var manifestError move.ManifestError
				require.ErrorAs(t, executionError, &manifestError)
				require.Equal(t, "/home/mover/absent.yaml", manifestError.Path)
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			harness := newCommandHarness(subTest, move.DefaultWorkflowConfiguration())
			harness.builder.WorkingDirectory = testCase.workingDirectory

			executionError := harness.execute(subTest, testCase.arguments...)

			require.Error(subTest, executionError)
			testCase.verify(subTest, executionError)
			require.Empty(subTest, harness.runner.commands)
			require.Empty(subTest, harness.output.String())
		})
	}
}

func TestCommandReportsGitFailures(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		arguments            []string
		expectedCommandCount int
	}{
		{name: "continues_by_default", arguments: []string{"Core/A.cs", "Core/B.cs"}, expectedCommandCount: 10},
		{name: "halts_when_requested", arguments: []string{"--halt-on-failure", "Core/A.cs", "Core/B.cs"}, expectedCommandCount: 2},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			harness := newCommandHarness(subTest, move.DefaultWorkflowConfiguration())
			harness.runner.exitCodes = map[string]int{"mv ../Core/A.cs ../Core/B.cs": 128}

			executionError := harness.execute(subTest, testCase.arguments...)

			require.Error(subTest, executionError)
			var stepError move.StepFailedError
			require.ErrorAs(subTest, executionError, &stepError)
			require.Equal(subTest, move.StepMoveAndCommit, stepError.Step)
			var failedError execshell.CommandFailedError
			require.True(subTest, errors.As(executionError, &failedError))
			require.Equal(subTest, 128, failedError.Result.ExitCode)
			require.Len(subTest, harness.runner.commands, testCase.expectedCommandCount)
		})
	}
}

func TestCommandUsesWorkingDirectoryFromContext(testInstance *testing.T) {
	harness := newCommandHarness(testInstance, move.DefaultWorkflowConfiguration())
	harness.builder.WorkingDirectory = ""

	command, buildError := harness.builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(utils.NewCommandContextAccessor().WithWorkingDirectory(context.Background(), testWorkingDirectoryConstant))
	command.SetOut(harness.output)
	command.SetArgs([]string{"--dry-run", "Core/A.cs", "Core/B.cs"})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, expectedDryRunOutputConstant, harness.output.String())
}
