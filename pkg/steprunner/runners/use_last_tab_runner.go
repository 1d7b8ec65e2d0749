package runners

import (
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// UseLastTabRunner makes the most recently opened tab the active page.
// Steps after this one run against that tab, starting from its main frame.
type UseLastTabRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindUseLastTab, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &UseLastTabRunner{StepCtx: ctx}, nil
	})
}

func (r *UseLastTabRunner) Validate() error { return nil }

func (r *UseLastTabRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	if err := ctx.Session.UseLastTab(); err != nil {
		return nil, err
	}
	ctx.Logger.Info().Str("url", ctx.Session.CurrentURL()).Msg("Switched to last opened tab")

	steprunner.StepSleep(ctx.Step.Sleep)
	return &steprunner.StepResult{ResetFrame: true}, nil
}
