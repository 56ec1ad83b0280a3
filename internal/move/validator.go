package move

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	moveNoticeTemplateConstant = "Moving %s to %s"
	statErrorTemplateConstant  = "unable to inspect %s: %w"
)

// NoticeStyler decorates a notice line before it is written.
type NoticeStyler func(notice string) string

// ValidatorDependencies enumerates collaborators used by the Validator.
type ValidatorDependencies struct {
	FileSystem   afero.Fs
	NoticeWriter io.Writer
	NoticeStyler NoticeStyler
}

// ValidationOptions controls how arguments are resolved to paths.
type ValidationOptions struct {
	// Prefix is joined in front of every argument; empty uses the argument as is.
	Prefix string
	// WorkingDirectory anchors relative paths when inspecting the filesystem.
	WorkingDirectory string
}

// Validator converts source and destination arguments into a MovePlan.
type Validator struct {
	fileSystem   afero.Fs
	noticeWriter io.Writer
	noticeStyler NoticeStyler
}

// NewValidator constructs a Validator, defaulting to the operating system filesystem and discarding notices.
func NewValidator(dependencies ValidatorDependencies) *Validator {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	noticeWriter := dependencies.NoticeWriter
	if noticeWriter == nil {
		noticeWriter = io.Discard
	}
	return &Validator{
		fileSystem:   fileSystem,
		noticeWriter: noticeWriter,
		noticeStyler: dependencies.NoticeStyler,
	}
}

// Validate checks every (source, destination) pair and returns them in input order.
// Notices are written only once the whole list is accepted.
func (validator *Validator) Validate(arguments []string, options ValidationOptions) (MovePlan, error) {
	if len(arguments) == 0 {
		return nil, UsageError{Reason: missingArgumentsMessageConstant}
	}
	if len(arguments)%2 != 0 {
		return nil, UsageError{Reason: fmt.Sprintf(oddArgumentsMessageConstant, len(arguments))}
	}

	plan := make(MovePlan, 0, len(arguments)/2)
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex += 2 {
		pair := MovePair{
			Source:      joinPrefix(options.Prefix, arguments[argumentIndex]),
			Destination: joinPrefix(options.Prefix, arguments[argumentIndex+1]),
		}
		if pairError := validator.validatePair(pair, options.WorkingDirectory); pairError != nil {
			return nil, pairError
		}
		plan = append(plan, pair)
	}

	for _, pair := range plan {
		notice := fmt.Sprintf(moveNoticeTemplateConstant, pair.Source, pair.Destination)
		if validator.noticeStyler != nil {
			notice = validator.noticeStyler(notice)
		}
		if _, writeError := fmt.Fprintln(validator.noticeWriter, notice); writeError != nil {
			return nil, writeError
		}
	}

	return plan, nil
}

func (validator *Validator) validatePair(pair MovePair, workingDirectory string) error {
	sourceInfo, sourceExists, sourceError := validator.stat(anchorPath(workingDirectory, pair.Source))
	if sourceError != nil {
		return sourceError
	}
	if !sourceExists {
		return SourceNotFoundError{Path: pair.Source}
	}

	destinationParent := filepath.Dir(pair.Destination)
	parentInfo, parentExists, parentError := validator.stat(anchorPath(workingDirectory, destinationParent))
	if parentError != nil {
		return parentError
	}
	if !parentExists || !parentInfo.IsDir() {
		return DestinationDirMissingError{Path: destinationParent}
	}

	destinationInfo, destinationExists, destinationError := validator.stat(anchorPath(workingDirectory, pair.Destination))
	if destinationError != nil {
		return destinationError
	}

	sourceIsDirectory := sourceInfo.IsDir()
	destinationIsDirectory := sourceIsDirectory
	if destinationExists {
		destinationIsDirectory = destinationInfo.IsDir()
	}

	if sourceIsDirectory != destinationIsDirectory {
		return MixedPathKindError{Source: pair.Source, Destination: pair.Destination}
	}
	if sourceIsDirectory {
		return UnsupportedDirectoryMoveError{Source: pair.Source, Destination: pair.Destination}
	}

	return nil
}

func (validator *Validator) stat(path string) (os.FileInfo, bool, error) {
	fileInfo, statError := validator.fileSystem.Stat(path)
	if statError == nil {
		return fileInfo, true, nil
	}
	if errors.Is(statError, os.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf(statErrorTemplateConstant, path, statError)
}

func joinPrefix(prefix string, argument string) string {
	if len(prefix) == 0 {
		return argument
	}
	return filepath.Join(prefix, argument)
}

func anchorPath(workingDirectory string, path string) string {
	if len(workingDirectory) == 0 || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDirectory, path)
}
