package runners

import (
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// MainFrameRunner returns the ambient scope to the top-level document.
type MainFrameRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindMainFrame, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &MainFrameRunner{StepCtx: ctx}, nil
	})
}

func (r *MainFrameRunner) Validate() error { return nil }

func (r *MainFrameRunner) Run() (*steprunner.StepResult, error) {
	r.StepCtx.Logger.Info().Msg("Switching back to main frame")
	steprunner.StepSleep(r.StepCtx.Step.Sleep)
	return &steprunner.StepResult{ResetFrame: true}, nil
}
