package move

const (
	stepCreateBranchTitleConstant     = "Create temporary branch"
	stepMoveAndCommitTitleConstant    = "Move files and commit"
	stepRestoreOriginalsTitleConstant = "Restore original files and commit"
	stepMergeBackTitleConstant        = "Return to the original branch and merge"
	stepDeleteOriginalsTitleConstant  = "Remove original files and commit"
	stepDeleteTempBranchTitleConstant = "Delete temporary branch"
)

// MovePair names a file to relocate. Both paths already include the configured prefix.
type MovePair struct {
	Source      string
	Destination string
}

// MovePlan is the ordered list of validated pairs handed from validation to sequencing.
type MovePlan []MovePair

// Sources lists the source paths in plan order.
func (plan MovePlan) Sources() []string {
	sources := make([]string, 0, len(plan))
	for _, pair := range plan {
		sources = append(sources, pair.Source)
	}
	return sources
}

// Step identifies one stage of the move workflow.
type Step string

// Workflow steps in execution order.
const (
	StepCreateBranch     Step = "create-branch"
	StepMoveAndCommit    Step = "move-and-commit"
	StepRestoreOriginals Step = "restore-originals"
	StepMergeBack        Step = "merge-back"
	StepDeleteOriginals  Step = "delete-originals"
	StepDeleteTempBranch Step = "delete-temp-branch"
)

var stepTitles = map[Step]string{
	StepCreateBranch:     stepCreateBranchTitleConstant,
	StepMoveAndCommit:    stepMoveAndCommitTitleConstant,
	StepRestoreOriginals: stepRestoreOriginalsTitleConstant,
	StepMergeBack:        stepMergeBackTitleConstant,
	StepDeleteOriginals:  stepDeleteOriginalsTitleConstant,
	StepDeleteTempBranch: stepDeleteTempBranchTitleConstant,
}

// OrderedSteps returns every workflow step in the order the sequencer runs them.
func OrderedSteps() []Step {
	return []Step{
		StepCreateBranch,
		StepMoveAndCommit,
		StepRestoreOriginals,
		StepMergeBack,
		StepDeleteOriginals,
		StepDeleteTempBranch,
	}
}

// Title returns a human-readable description of the step.
func (step Step) Title() string {
	if title, known := stepTitles[step]; known {
		return title
	}
	return string(step)
}

// StepReport records the git argument lists issued for a step and the failures they produced.
type StepReport struct {
	Step     Step
	Commands [][]string
	Failures []error
}

// Failed reports whether any command in the step failed.
func (report StepReport) Failed() bool {
	return len(report.Failures) > 0
}

// SequenceResult collects the reports of every step that ran.
type SequenceResult struct {
	Steps []StepReport
}

// CommandCount returns the number of git commands issued across all steps.
func (result SequenceResult) CommandCount() int {
	commandCount := 0
	for _, report := range result.Steps {
		commandCount += len(report.Commands)
	}
	return commandCount
}
