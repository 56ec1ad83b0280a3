package move

import (
	"path/filepath"
	"regexp"
)

var branchNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// BranchGuard verifies the invocation context before anything is changed.
type BranchGuard struct {
	requiredDirectory string
}

// NewBranchGuard constructs a guard; an empty requiredDirectory disables the directory check.
func NewBranchGuard(requiredDirectory string) BranchGuard {
	return BranchGuard{requiredDirectory: requiredDirectory}
}

// Check confirms workingDirectory ends in the required directory and branchName is acceptable.
func (guard BranchGuard) Check(workingDirectory string, branchName string) error {
	if len(guard.requiredDirectory) > 0 {
		actualDirectory := filepath.Base(filepath.Clean(workingDirectory))
		if actualDirectory != guard.requiredDirectory {
			return WrongDirectoryError{Expected: guard.requiredDirectory, Actual: actualDirectory}
		}
	}

	if !branchNamePattern.MatchString(branchName) {
		return InvalidBranchNameError{BranchName: branchName}
	}

	return nil
}
