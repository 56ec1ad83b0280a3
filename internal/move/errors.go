package move

import (
	"errors"
	"fmt"
)

const (
	usageErrorTemplateConstant                    = "usage: %s"
	wrongDirectoryErrorTemplateConstant           = "git-move must be run from the %q directory, not %q"
	invalidBranchNameErrorTemplateConstant        = "invalid branch name %q: only letters, digits, '-' and '_' are allowed"
	sourceNotFoundErrorTemplateConstant           = "source %s does not exist"
	destinationDirMissingErrorTemplateConstant    = "destination directory %s does not exist"
	mixedPathKindErrorTemplateConstant            = "%s and %s must both be files or both be directories"
	unsupportedDirectoryMoveErrorTemplateConstant = "moving directories is not supported: %s to %s"
	manifestErrorTemplateConstant                 = "manifest %s: %v"
	stepFailedErrorTemplateConstant               = "step %s failed: %v"
	missingArgumentsMessageConstant               = "provide at least one source and destination pair"
	oddArgumentsMessageConstant                   = "every source needs a destination; received %d arguments"
	gitExecutorMissingMessageConstant             = "git executor not configured"
)

// ErrGitExecutorNotConfigured indicates the sequencer was created without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// UsageError reports malformed command-line arguments.
type UsageError struct {
	Reason string
}

// Error describes the usage problem.
func (usageError UsageError) Error() string {
	return fmt.Sprintf(usageErrorTemplateConstant, usageError.Reason)
}

// WrongDirectoryError reports an invocation from a directory other than the required one.
type WrongDirectoryError struct {
	Expected string
	Actual   string
}

// Error describes the directory mismatch.
func (directoryError WrongDirectoryError) Error() string {
	return fmt.Sprintf(wrongDirectoryErrorTemplateConstant, directoryError.Expected, directoryError.Actual)
}

// InvalidBranchNameError reports a temporary branch name outside the allowed character set.
type InvalidBranchNameError struct {
	BranchName string
}

// Error describes the rejected branch name.
func (branchError InvalidBranchNameError) Error() string {
	return fmt.Sprintf(invalidBranchNameErrorTemplateConstant, branchError.BranchName)
}

// SourceNotFoundError reports a source path that does not exist.
type SourceNotFoundError struct {
	Path string
}

// Error names the missing source.
func (sourceError SourceNotFoundError) Error() string {
	return fmt.Sprintf(sourceNotFoundErrorTemplateConstant, sourceError.Path)
}

// DestinationDirMissingError reports a destination whose parent directory does not exist.
type DestinationDirMissingError struct {
	Path string
}

// Error names the missing directory.
func (destinationError DestinationDirMissingError) Error() string {
	return fmt.Sprintf(destinationDirMissingErrorTemplateConstant, destinationError.Path)
}

// MixedPathKindError reports a pair where one side is a directory and the other a file.
type MixedPathKindError struct {
	Source      string
	Destination string
}

// Error names both paths.
func (kindError MixedPathKindError) Error() string {
	return fmt.Sprintf(mixedPathKindErrorTemplateConstant, kindError.Source, kindError.Destination)
}

// UnsupportedDirectoryMoveError reports a pair that resolves to a directory move.
type UnsupportedDirectoryMoveError struct {
	Source      string
	Destination string
}

// Error names both paths.
func (directoryMoveError UnsupportedDirectoryMoveError) Error() string {
	return fmt.Sprintf(unsupportedDirectoryMoveErrorTemplateConstant, directoryMoveError.Source, directoryMoveError.Destination)
}

// ManifestError reports a manifest file that could not be read or decoded.
type ManifestError struct {
	Path  string
	Cause error
}

// Error names the manifest and the cause.
func (manifestError ManifestError) Error() string {
	return fmt.Sprintf(manifestErrorTemplateConstant, manifestError.Path, manifestError.Cause)
}

// Unwrap exposes the underlying cause.
func (manifestError ManifestError) Unwrap() error {
	return manifestError.Cause
}

// StepFailedError reports the step that halted the workflow.
type StepFailedError struct {
	Step  Step
	Cause error
}

// Error names the step and the cause.
func (stepError StepFailedError) Error() string {
	return fmt.Sprintf(stepFailedErrorTemplateConstant, stepError.Step, stepError.Cause)
}

// Unwrap exposes the underlying cause.
func (stepError StepFailedError) Unwrap() error {
	return stepError.Cause
}
