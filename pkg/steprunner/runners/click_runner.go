package runners

import (
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// ClickRunner resolves and clicks a target element. When the step carries
// a condition and the condition holds, the condition's alternate click
// list executes instead of the primary click: exactly one of the two paths
// runs per invocation, never both, never neither.
type ClickRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindClick, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &ClickRunner{StepCtx: ctx}, nil
	})
}

func (r *ClickRunner) Validate() error {
	cond := r.StepCtx.Step.Condition
	if cond == nil {
		return nil
	}
	switch cond.Status {
	case "found", "not_found":
		return nil
	case "":
		return core.NewConfigError(`click condition is missing "status" (found/not_found)`)
	default:
		return core.NewConfigError("click condition has unknown status %q", cond.Status)
	}
}

func (r *ClickRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	if cond := ctx.Step.Condition; cond != nil {
		met, err := steprunner.EvaluateCondition(ctx.Root(), cond, ctx.Logger)
		if err != nil {
			return nil, err
		}
		if met {
			if err := r.runAlternates(cond.Alternate); err != nil {
				return nil, err
			}
			steprunner.StepSleep(ctx.Step.Sleep)
			return nil, nil
		}
	}

	el, selector, err := steprunner.ResolveTarget(ctx)
	if err != nil {
		return nil, err
	}

	logEvent := ctx.Logger.Info().Str("selector", selector)
	if ctx.Step.Selector.Text != "" {
		logEvent = logEvent.Str("has_text", ctx.Step.Selector.Text)
	}
	logEvent.Msg("Clicking")

	timeout := ctx.StepTimeout(ctx.Timeouts.Click)
	if err := steprunner.PrepareTarget(el, selector, timeout); err != nil {
		return nil, err
	}
	if err := steprunner.ClickTarget(ctx, el, timeout); err != nil {
		return nil, err
	}

	steprunner.StepSleep(ctx.Step.Sleep)
	return nil, nil
}

// runAlternates executes the alternate click list in order. Each alternate
// is a full click step and may itself carry a condition; its own tolerance
// flag decides whether its failure skips just that alternate.
func (r *ClickRunner) runAlternates(alternates []types.Step) error {
	for i, alt := range alternates {
		r.StepCtx.Logger.Info().Int("alternate", i+1).Msg("Executing alternative click due to condition")

		altCtx := r.StepCtx
		altCtx.Step = alt

		sub := &ClickRunner{StepCtx: altCtx}
		if _, err := sub.Run(); err != nil {
			if err = steprunner.Tolerate(&altCtx, err, "alternative click"); err != nil {
				return err
			}
		}
	}
	return nil
}
