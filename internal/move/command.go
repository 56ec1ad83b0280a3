package move

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitmove/internal/execshell"
	"github.com/temirov/gitmove/internal/ui"
	"github.com/temirov/gitmove/internal/utils"
	"github.com/temirov/gitmove/internal/utils/flags"
	pathutils "github.com/temirov/gitmove/internal/utils/path"
)

const (
	commandUseConstant                    = "git-move [flags] <source> <destination> [<source> <destination>...]"
	commandShortDescriptionConstant       = "Move files while preserving their git history"
	commandLongDescriptionConstant        = "git-move relocates files on a temporary branch, restores the originals there, merges the branch back without fast-forwarding and then removes the originals, so history stays reachable from both paths."
	commandExecutionErrorTemplateConstant = "move workflow failed: %w"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	workflowStartedLogMessageConstant     = "move workflow started"
	workflowCompletedLogMessageConstant   = "move workflow completed"
	logFieldBranchConstant                = "branch"
	logFieldPairCountConstant             = "pair_count"
	logFieldDryRunConstant                = "dry_run"
	logFieldHaltOnFailureConstant         = "halt_on_failure"
	logFieldWorkingDirectoryConstant      = "working_directory"
	logFieldConfigurationFileConstant     = "config_file"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configured workflow settings.
type ConfigurationProvider func() WorkflowConfiguration

// HumanReadableLoggingProvider reports whether git commands should also be described in plain language.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the Cobra command for the move workflow.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	// WorkingDirectory overrides the invocation directory; empty uses the command context or the process directory.
	WorkingDirectory string
	FileSystem       afero.Fs
	// CommandRunner overrides the runner used outside dry-run mode.
	CommandRunner execshell.CommandRunner
	HomeExpander  *pathutils.HomeExpander
}

// Build constructs the move command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultWorkflowConfiguration()

	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	flags.BindBranchFlags(command, flags.BranchFlagValues{Name: defaults.BranchName}, flags.BranchFlagDefinition{
		Name:    flags.BranchFlagName,
		Usage:   flags.BranchFlagUsage,
		Enabled: true,
	})
	flags.BindPathFlags(command, flags.PathFlagValues{
		Prefix:            defaults.PathPrefix,
		RequiredDirectory: defaults.RequiredDirectory,
	}, flags.DefaultPathFlagDefinitions())
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{
		DryRun:        defaults.DryRun,
		HaltOnFailure: defaults.HaltOnFailure,
	}, flags.DefaultExecutionFlagDefinitions())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.applyFlagOverrides(command, builder.resolveConfiguration())
	logger := builder.resolveLogger()

	workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory(command)
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	guard := NewBranchGuard(configuration.RequiredDirectory)
	if guardError := guard.Check(workingDirectory, configuration.BranchName); guardError != nil {
		return guardError
	}

	manifestPath, _ := command.Flags().GetString(flags.ManifestFlagName)
	if len(manifestPath) > 0 {
		manifestArguments, manifestError := NewManifestLoader(builder.FileSystem, builder.HomeExpander).LoadArguments(manifestPath)
		if manifestError != nil {
			return manifestError
		}
		arguments = append(append([]string{}, arguments...), manifestArguments...)
	}

	output := utils.NewFlushingWriter(command.OutOrStdout())
	outputStyle := ui.DetectOutputStyle(output)

	validator := NewValidator(ValidatorDependencies{
		FileSystem:   builder.FileSystem,
		NoticeWriter: output,
		NoticeStyler: outputStyle.Notice,
	})
	plan, validationError := validator.Validate(arguments, ValidationOptions{
		Prefix:           configuration.PathPrefix,
		WorkingDirectory: workingDirectory,
	})
	if validationError != nil {
		return validationError
	}

	var commandRunner execshell.CommandRunner
	var stepObserver StepObserver
	if configuration.DryRun {
		commandRunner = execshell.NewPrintingCommandRunner(output).WithLineStyler(outputStyle.CommandLine)
		stepObserver = newHeaderStepObserver(output, outputStyle)
	} else {
		commandRunner = builder.resolveCommandRunner()
	}

	shellExecutor, executorError := execshell.NewShellExecutorWithObserver(logger, commandRunner, builder.resolveCommandEventObserver(logger, configuration.DryRun))
	if executorError != nil {
		return executorError
	}

	sequencer, sequencerError := NewSequencer(SequencerDependencies{
		GitExecutor: shellExecutor,
		Logger:      logger,
		Observer:    stepObserver,
	})
	if sequencerError != nil {
		return sequencerError
	}

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Info(
		workflowStartedLogMessageConstant,
		zap.String(logFieldBranchConstant, configuration.BranchName),
		zap.Int(logFieldPairCountConstant, len(plan)),
		zap.Bool(logFieldDryRunConstant, configuration.DryRun),
		zap.Bool(logFieldHaltOnFailureConstant, configuration.HaltOnFailure),
		zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)

	_, runError := sequencer.Run(command.Context(), plan, SequenceOptions{
		BranchName:       configuration.BranchName,
		WorkingDirectory: workingDirectory,
		HaltOnFailure:    configuration.HaltOnFailure,
	})
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	logger.Info(workflowCompletedLogMessageConstant, zap.String(logFieldBranchConstant, configuration.BranchName))
	return nil
}

func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration WorkflowConfiguration) WorkflowConfiguration {
	overridden := configuration

	if flagValue, changed := changedStringFlag(command, flags.BranchFlagName); changed {
		overridden.BranchName = flagValue
	}
	if flagValue, changed := changedStringFlag(command, flags.PrefixFlagName); changed {
		overridden.PathPrefix = flagValue
	}
	if flagValue, changed := changedStringFlag(command, flags.RequiredDirectoryFlagName); changed {
		overridden.RequiredDirectory = flagValue
	}

	executionFlags := flags.ResolveExecutionFlags(command)
	if executionFlags.DryRunSet {
		overridden.DryRun = executionFlags.DryRun
	}
	if executionFlags.HaltOnFailureSet {
		overridden.HaltOnFailure = executionFlags.HaltOnFailure
	}

	return overridden.Sanitize()
}

func changedStringFlag(command *cobra.Command, flagName string) (string, bool) {
	flag := command.Flags().Lookup(flagName)
	if flag == nil || !flag.Changed {
		return "", false
	}
	return flag.Value.String(), true
}

func (builder *CommandBuilder) resolveConfiguration() WorkflowConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultWorkflowConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveWorkingDirectory(command *cobra.Command) (string, error) {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory, nil
	}
	if contextDirectory, available := utils.NewCommandContextAccessor().WorkingDirectory(command.Context()); available && len(contextDirectory) > 0 {
		return contextDirectory, nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}
	return workingDirectory, nil
}

func (builder *CommandBuilder) resolveCommandRunner() execshell.CommandRunner {
	if builder.CommandRunner != nil {
		return builder.CommandRunner
	}
	return execshell.NewOSCommandRunner()
}

func (builder *CommandBuilder) resolveCommandEventObserver(logger *zap.Logger, dryRun bool) execshell.CommandEventObserver {
	if dryRun || builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(logger)
}

// IsUsageError reports whether err stems from malformed arguments, so callers can print usage help.
func IsUsageError(err error) bool {
	var usageError UsageError
	return errors.As(err, &usageError)
}
