package move

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/temirov/gitmove/internal/execshell"
)

const (
	gitCheckoutSubcommandConstant      = "checkout"
	gitCreateBranchFlagConstant        = "-b"
	gitMoveSubcommandConstant          = "mv"
	gitCommitSubcommandConstant        = "commit"
	gitMessageFlagConstant             = "-m"
	gitPreviousCommitReferenceConstant = "HEAD~"
	gitPathSeparatorArgumentConstant   = "--"
	gitPreviousBranchReferenceConstant = "-"
	gitMergeSubcommandConstant         = "merge"
	gitNoFastForwardFlagConstant       = "--no-ff"
	gitNoEditFlagConstant              = "--no-edit"
	gitRemoveSubcommandConstant        = "rm"
	gitBranchSubcommandConstant        = "branch"
	gitForceDeleteFlagConstant         = "-D"
	moveCommitMessageConstant          = "Move files to their new location"
	restoreCommitMessageConstant       = "Restore original files to keep their history"
	removeCommitMessageConstant        = "Remove original files after history-preserving move"
	stepStartedLogMessageConstant      = "workflow step started"
	stepCompletedLogMessageConstant    = "workflow step completed"
	commandFailureLogMessageConstant   = "git command failed; continuing with the next command"
	sequenceHaltedLogMessageConstant   = "git command failed; halting workflow"
	logFieldStepConstant               = "step"
	logFieldArgumentsConstant          = "arguments"
	logFieldCommandCountConstant       = "command_count"
	logFieldFailureCountConstant       = "failure_count"
)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// StepObserver is notified around every workflow step.
type StepObserver interface {
	StepStarted(step Step)
	StepCompleted(report StepReport)
}

// SequencerDependencies enumerates collaborators required by the Sequencer.
type SequencerDependencies struct {
	GitExecutor GitExecutor
	Logger      *zap.Logger
	Observer    StepObserver
}

// SequenceOptions configures a single workflow run.
type SequenceOptions struct {
	BranchName       string
	WorkingDirectory string
	HaltOnFailure    bool
}

// Sequencer issues the ordered git commands of the move workflow.
type Sequencer struct {
	executor GitExecutor
	logger   *zap.Logger
	observer StepObserver
}

type plannedStep struct {
	step     Step
	commands [][]string
}

// NewSequencer constructs a Sequencer from the provided dependencies.
func NewSequencer(dependencies SequencerDependencies) (*Sequencer, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{executor: dependencies.GitExecutor, logger: logger, observer: dependencies.Observer}, nil
}

// Run executes every step for plan. Failing commands are recorded and the run continues, unless
// HaltOnFailure is set, in which case the first failure stops the run with a StepFailedError.
// A cancelled context always stops the run.
func (sequencer *Sequencer) Run(executionContext context.Context, plan MovePlan, options SequenceOptions) (SequenceResult, error) {
	result := SequenceResult{}
	var aggregatedFailures error

	for _, planned := range planSteps(plan, options.BranchName) {
		sequencer.logger.Info(stepStartedLogMessageConstant, zap.String(logFieldStepConstant, string(planned.step)))
		if sequencer.observer != nil {
			sequencer.observer.StepStarted(planned.step)
		}

		report := StepReport{Step: planned.step}
		for _, arguments := range planned.commands {
			if contextError := executionContext.Err(); contextError != nil {
				result.Steps = append(result.Steps, report)
				return result, multierr.Append(aggregatedFailures, StepFailedError{Step: planned.step, Cause: contextError})
			}

			report.Commands = append(report.Commands, arguments)
			_, executionError := sequencer.executor.ExecuteGit(executionContext, execshell.CommandDetails{
				Arguments:        arguments,
				WorkingDirectory: options.WorkingDirectory,
			})
			if executionError == nil {
				continue
			}

			report.Failures = append(report.Failures, executionError)
			if options.HaltOnFailure {
				sequencer.logger.Error(sequenceHaltedLogMessageConstant, zap.String(logFieldStepConstant, string(planned.step)), zap.Strings(logFieldArgumentsConstant, arguments), zap.Error(executionError))
				sequencer.completeStep(report)
				result.Steps = append(result.Steps, report)
				return result, StepFailedError{Step: planned.step, Cause: executionError}
			}

			sequencer.logger.Warn(commandFailureLogMessageConstant, zap.String(logFieldStepConstant, string(planned.step)), zap.Strings(logFieldArgumentsConstant, arguments), zap.Error(executionError))
			aggregatedFailures = multierr.Append(aggregatedFailures, StepFailedError{Step: planned.step, Cause: executionError})
		}

		sequencer.completeStep(report)
		result.Steps = append(result.Steps, report)
	}

	return result, aggregatedFailures
}

func (sequencer *Sequencer) completeStep(report StepReport) {
	sequencer.logger.Info(
		stepCompletedLogMessageConstant,
		zap.String(logFieldStepConstant, string(report.Step)),
		zap.Int(logFieldCommandCountConstant, len(report.Commands)),
		zap.Int(logFieldFailureCountConstant, len(report.Failures)),
	)
	if sequencer.observer != nil {
		sequencer.observer.StepCompleted(report)
	}
}

func planSteps(plan MovePlan, branchName string) []plannedStep {
	moveCommands := make([][]string, 0, len(plan)+1)
	restoreCommands := make([][]string, 0, len(plan)+1)
	removeCommands := make([][]string, 0, len(plan)+1)
	for _, pair := range plan {
		moveCommands = append(moveCommands, []string{gitMoveSubcommandConstant, pair.Source, pair.Destination})
		restoreCommands = append(restoreCommands, []string{gitCheckoutSubcommandConstant, gitPreviousCommitReferenceConstant, gitPathSeparatorArgumentConstant, pair.Source})
		removeCommands = append(removeCommands, []string{gitRemoveSubcommandConstant, pair.Source})
	}
	moveCommands = append(moveCommands, commitArguments(moveCommitMessageConstant))
	restoreCommands = append(restoreCommands, commitArguments(restoreCommitMessageConstant))
	removeCommands = append(removeCommands, commitArguments(removeCommitMessageConstant))

	return []plannedStep{
		{step: StepCreateBranch, commands: [][]string{{gitCheckoutSubcommandConstant, gitCreateBranchFlagConstant, branchName}}},
		{step: StepMoveAndCommit, commands: moveCommands},
		{step: StepRestoreOriginals, commands: restoreCommands},
		{step: StepMergeBack, commands: [][]string{
			{gitCheckoutSubcommandConstant, gitPreviousBranchReferenceConstant},
			{gitMergeSubcommandConstant, gitNoFastForwardFlagConstant, gitNoEditFlagConstant, branchName},
		}},
		{step: StepDeleteOriginals, commands: removeCommands},
		{step: StepDeleteTempBranch, commands: [][]string{{gitBranchSubcommandConstant, gitForceDeleteFlagConstant, branchName}}},
	}
}

func commitArguments(message string) []string {
	return []string{gitCommitSubcommandConstant, gitMessageFlagConstant, message}
}
