package runners

import (
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// GotoRunner navigates the session to a URL. A navigation always resets
// the ambient frame context: the old frame handles are invalid after it.
type GotoRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindGoto, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &GotoRunner{StepCtx: ctx}, nil
	})
}

func (r *GotoRunner) Validate() error {
	if r.StepCtx.Step.URL == "" {
		return core.NewFatalConfigError(`goto step is missing "value" or "url"`)
	}
	return nil
}

func (r *GotoRunner) Run() (*steprunner.StepResult, error) {
	url := r.StepCtx.Step.URL
	if url == "" {
		// A missing navigation target is an authoring bug, fatal even
		// under a tolerance flag.
		return nil, core.NewFatalConfigError(`goto step is missing "value" or "url"`)
	}

	r.StepCtx.Logger.Info().Str("url", url).Msg("Navigating")
	if err := r.StepCtx.Session.Navigate(url); err != nil {
		return nil, &core.InteractionError{Op: "navigate", Err: err}
	}

	steprunner.StepSleep(r.StepCtx.Step.Sleep)
	return &steprunner.StepResult{ResetFrame: true}, nil
}
