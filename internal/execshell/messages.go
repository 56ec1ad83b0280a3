package execshell

import (
	"fmt"
	"strconv"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	quotableCharactersConstant              = " \t\n\"'$`\\"
)

const (
	gitCheckoutSubcommandNameConstant = "checkout"
	gitBranchSubcommandNameConstant   = "branch"
	gitCommitSubcommandNameConstant   = "commit"
	gitMoveSubcommandNameConstant     = "mv"
	gitRemoveSubcommandNameConstant   = "rm"
	gitMergeSubcommandNameConstant    = "merge"
	gitCreateBranchFlagConstant       = "-b"
	gitPreviousBranchReferenceConst   = "-"
	gitPathspecSeparatorConstant      = "--"
	gitForceDeleteFlagConstant        = "-D"
	gitDeleteFlagConstant             = "--delete"
	gitShortDeleteFlagConstant        = "-d"
	gitMessageFlagConstant            = "-m"
)

const (
	gitCheckoutCreateStartTemplateConstant            = "Creating branch %s in %s"
	gitCheckoutCreateSuccessTemplateConstant          = "Created branch %s in %s"
	gitCheckoutCreateFailureTemplateConstant          = "Failed to create branch %s in %s (exit code %d%s)"
	gitCheckoutCreateExecutionFailureTemplateConstant = "Unable to create branch %s in %s: %s"
	gitCheckoutPreviousStartTemplateConstant          = "Switching %s back to the previous branch"
	gitCheckoutPreviousSuccessTemplateConstant        = "%s is back on the previous branch"
	gitCheckoutPreviousFailureTemplateConstant        = "Failed to switch %s back to the previous branch (exit code %d%s)"
	gitCheckoutPreviousExecutionFailureTemplate       = "Unable to switch %s back to the previous branch: %s"
	gitCheckoutRestoreStartTemplateConstant           = "Restoring %s from %s in %s"
	gitCheckoutRestoreSuccessTemplateConstant         = "Restored %s from %s in %s"
	gitCheckoutRestoreFailureTemplateConstant         = "Failed to restore %s from %s in %s (exit code %d%s)"
	gitCheckoutRestoreExecutionFailureTemplate        = "Unable to restore %s from %s in %s: %s"
	gitCheckoutStartTemplateConstant                  = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant                = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant                = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant       = "Unable to switch %s to branch %s: %s"
	gitMoveStartTemplateConstant                      = "Moving %s to %s in %s"
	gitMoveSuccessTemplateConstant                    = "Moved %s to %s in %s"
	gitMoveFailureTemplateConstant                    = "Failed to move %s to %s in %s (exit code %d%s)"
	gitMoveExecutionFailureTemplateConstant           = "Unable to move %s to %s in %s: %s"
	gitRemoveStartTemplateConstant                    = "Removing %s in %s"
	gitRemoveSuccessTemplateConstant                  = "Removed %s in %s"
	gitRemoveFailureTemplateConstant                  = "Failed to remove %s in %s (exit code %d%s)"
	gitRemoveExecutionFailureTemplateConstant         = "Unable to remove %s in %s: %s"
	gitMergeStartTemplateConstant                     = "Merging %s into the current branch in %s"
	gitMergeSuccessTemplateConstant                   = "Merged %s into the current branch in %s"
	gitMergeFailureTemplateConstant                   = "Failed to merge %s in %s (exit code %d%s)"
	gitMergeExecutionFailureTemplateConstant          = "Unable to merge %s in %s: %s"
	gitBranchDeletionStartTemplateConstant            = "Removing local branch %s in %s"
	gitBranchForceDeletionStartTemplateConstant       = "Force removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant          = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant          = "Failed to remove local branch %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant = "Unable to remove local branch %s in %s: %s"
	gitCommitStartTemplateConstant                    = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                  = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                  = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant         = "Unable to create commit in %s with message %q: %s"
)

// stageTemplates groups the four lifecycle templates of one command shape.
// Start and success templates receive the subject values followed by the
// working directory; failure templates additionally receive the exit code and
// standard error suffix, execution failure templates the failure description.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter renders human-readable descriptions of git commands used by the move workflow.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.describe(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage describes a command that exited with code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.describe(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.describe(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage describes a command that could not be run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.describe(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) describe(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch strings.TrimSpace(arguments[0]) {
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitMoveSubcommandNameConstant:
		operands := formatter.extractOperands(arguments[1:])
		source := formatter.ensureValue(formatter.argumentAtIndex(operands, 0))
		destination := formatter.ensureValue(formatter.argumentAtIndex(operands, 1))
		return formatter.render(stageTemplates{
			start:            gitMoveStartTemplateConstant,
			success:          gitMoveSuccessTemplateConstant,
			failure:          gitMoveFailureTemplateConstant,
			executionFailure: gitMoveExecutionFailureTemplateConstant,
		}, []any{source, destination, workingDirectory}, result, failure, stage)
	case gitRemoveSubcommandNameConstant:
		target := formatter.ensureValue(strings.Join(formatter.extractOperands(arguments[1:]), commandArgumentsJoinSeparatorConstant))
		return formatter.render(stageTemplates{
			start:            gitRemoveStartTemplateConstant,
			success:          gitRemoveSuccessTemplateConstant,
			failure:          gitRemoveFailureTemplateConstant,
			executionFailure: gitRemoveExecutionFailureTemplateConstant,
		}, []any{target, workingDirectory}, result, failure, stage)
	case gitMergeSubcommandNameConstant:
		operands := formatter.extractOperands(arguments[1:])
		branchName := formatter.ensureValue(formatter.argumentAtIndex(operands, len(operands)-1))
		return formatter.render(stageTemplates{
			start:            gitMergeStartTemplateConstant,
			success:          gitMergeSuccessTemplateConstant,
			failure:          gitMergeFailureTemplateConstant,
			executionFailure: gitMergeExecutionFailureTemplateConstant,
		}, []any{branchName, workingDirectory}, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		commitMessage := formatter.extractCommitMessage(arguments)
		return formatter.render(stageTemplates{
			start:            gitCommitStartTemplateConstant,
			success:          gitCommitSuccessTemplateConstant,
			failure:          gitCommitFailureTemplateConstant,
			executionFailure: gitCommitExecutionFailureTemplateConstant,
		}, []any{workingDirectory, commitMessage}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if createIndex := indexOfArgument(arguments, gitCreateBranchFlagConstant); createIndex >= 0 {
		branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, createIndex+1))
		return formatter.render(stageTemplates{
			start:            gitCheckoutCreateStartTemplateConstant,
			success:          gitCheckoutCreateSuccessTemplateConstant,
			failure:          gitCheckoutCreateFailureTemplateConstant,
			executionFailure: gitCheckoutCreateExecutionFailureTemplateConstant,
		}, []any{branchName, workingDirectory}, result, failure, stage)
	}

	if separatorIndex := indexOfArgument(arguments, gitPathspecSeparatorConstant); separatorIndex >= 0 {
		revision := formatter.ensureValue(formatter.argumentAtIndex(arguments[:separatorIndex], 1))
		paths := formatter.ensureValue(strings.Join(arguments[separatorIndex+1:], commandArgumentsJoinSeparatorConstant))
		return formatter.render(stageTemplates{
			start:            gitCheckoutRestoreStartTemplateConstant,
			success:          gitCheckoutRestoreSuccessTemplateConstant,
			failure:          gitCheckoutRestoreFailureTemplateConstant,
			executionFailure: gitCheckoutRestoreExecutionFailureTemplate,
		}, []any{paths, revision, workingDirectory}, result, failure, stage)
	}

	target := strings.TrimSpace(formatter.argumentAtIndex(arguments, 1))
	if target == gitPreviousBranchReferenceConst {
		return formatter.render(stageTemplates{
			start:            gitCheckoutPreviousStartTemplateConstant,
			success:          gitCheckoutPreviousSuccessTemplateConstant,
			failure:          gitCheckoutPreviousFailureTemplateConstant,
			executionFailure: gitCheckoutPreviousExecutionFailureTemplate,
		}, []any{workingDirectory}, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, formatter.ensureValue(target))
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, formatter.ensureValue(target))
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, formatter.ensureValue(target), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, formatter.ensureValue(target), formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	hasForceDelete := indexOfArgument(arguments, gitForceDeleteFlagConstant) >= 0
	hasDelete := hasForceDelete || indexOfArgument(arguments, gitDeleteFlagConstant) >= 0 || indexOfArgument(arguments, gitShortDeleteFlagConstant) >= 0
	if !hasDelete {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.argumentAtIndex(formatter.extractOperands(arguments[1:]), 0))
	startTemplate := gitBranchDeletionStartTemplateConstant
	if hasForceDelete {
		startTemplate = gitBranchForceDeletionStartTemplateConstant
	}

	return formatter.render(stageTemplates{
		start:            startTemplate,
		success:          gitBranchDeletionSuccessTemplateConstant,
		failure:          gitBranchDeletionFailureTemplateConstant,
		executionFailure: gitBranchDeletionExecutionFailureTemplateConstant,
	}, []any{branchName, workingDirectory}, result, failure, stage)
}

func (formatter CommandMessageFormatter) render(templates stageTemplates, subjects []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, append(subjects, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))...)
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, append(subjects, formatter.describeFailure(failure))...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	return fmt.Sprintf(commandLabelTemplateConstant, FormatCommandLine(command), formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return strings.TrimSpace(arguments[index])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// extractOperands drops flags so only positional operands remain.
func (formatter CommandMessageFormatter) extractOperands(arguments []string) []string {
	operands := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		operands = append(operands, trimmed)
	}
	return operands
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	messageIndex := indexOfArgument(arguments, gitMessageFlagConstant)
	if messageIndex < 0 || messageIndex+1 >= len(arguments) {
		return fallbackUnknownValueLabelConstant
	}
	return strings.TrimSpace(arguments[messageIndex+1])
}

func indexOfArgument(arguments []string, value string) int {
	for index, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return index
		}
	}
	return -1
}

// FormatCommandLine renders the command as a shell-ready line, quoting arguments that need it.
func FormatCommandLine(command ShellCommand) string {
	commandParts := make([]string, 0, len(command.Details.Arguments)+1)
	commandParts = append(commandParts, string(command.Name))
	for _, argument := range command.Details.Arguments {
		commandParts = append(commandParts, quoteArgument(argument))
	}
	return strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
}

func quoteArgument(argument string) string {
	if len(argument) == 0 || strings.ContainsAny(argument, quotableCharactersConstant) {
		return strconv.Quote(argument)
	}
	return argument
}
