package move

import (
	"fmt"
	"io"

	"github.com/temirov/gitmove/internal/ui"
)

// headerStepObserver prints a header before each step so dry-run output reads as grouped commands.
type headerStepObserver struct {
	writer io.Writer
	style  ui.OutputStyle
}

func newHeaderStepObserver(writer io.Writer, style ui.OutputStyle) *headerStepObserver {
	return &headerStepObserver{writer: writer, style: style}
}

func (observer *headerStepObserver) StepStarted(step Step) {
	fmt.Fprintln(observer.writer, observer.style.StepHeader(step.Title()))
}

func (observer *headerStepObserver) StepCompleted(StepReport) {}
