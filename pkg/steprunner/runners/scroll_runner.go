package runners

import (
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// ScrollRunner scrolls to an absolute viewport position when x/y are
// given, otherwise scrolls a resolved element into view.
type ScrollRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindScroll, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &ScrollRunner{StepCtx: ctx}, nil
	})
}

func (r *ScrollRunner) Validate() error {
	step := r.StepCtx.Step
	if step.ScrollX == nil && step.ScrollY == nil && step.Selector.Empty() {
		return core.NewConfigError("scroll step requires either a position (x, y) or an element selector")
	}
	return nil
}

func (r *ScrollRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx
	step := ctx.Step

	if step.ScrollX != nil || step.ScrollY != nil {
		x, y := 0, 0
		if step.ScrollX != nil {
			x = *step.ScrollX
		}
		if step.ScrollY != nil {
			y = *step.ScrollY
		}
		ctx.Logger.Info().Int("x", x).Int("y", y).Msg("Scrolling to position")
		if err := ctx.Session.ScrollTo(x, y); err != nil {
			return nil, &core.InteractionError{Op: "scroll", Err: err}
		}
		steprunner.StepSleep(step.Sleep)
		return nil, nil
	}

	if step.Selector.Empty() {
		return nil, core.NewConfigError("scroll step requires either a position (x, y) or an element selector")
	}

	el, selector, err := steprunner.ResolveTarget(ctx)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Info().Str("selector", selector).Msg("Scrolling to element")

	if err := steprunner.PrepareTarget(el, selector, ctx.StepTimeout(ctx.Timeouts.Element)); err != nil {
		return nil, err
	}

	steprunner.StepSleep(step.Sleep)
	return nil, nil
}
