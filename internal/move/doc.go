// Package move relocates files inside a git repository while keeping their history reachable
// from both the old and the new path.
//
// Validator turns command-line arguments into an ordered MovePlan, BranchGuard checks the
// invocation directory and temporary branch name, and Sequencer issues the git commands that
// move the files on a temporary branch, restore the originals, merge the branch back without
// fast-forwarding, and remove the duplicates. CommandBuilder exposes the workflow as a Cobra
// command.
package move
