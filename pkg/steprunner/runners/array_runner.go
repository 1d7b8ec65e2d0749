package runners

import (
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// ArrayRunner resolves a set of parent elements and, for each selected
// parent, clicks every entry of a flat child list in order. Each child is
// resolved within its parent's scope and carries its own tolerance flag:
// a tolerated child failure skips only that child, never the remaining
// children or remaining parents.
type ArrayRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindArray, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &ArrayRunner{StepCtx: ctx}, nil
	})
}

func (r *ArrayRunner) Validate() error {
	if len(r.StepCtx.Step.ChildClicks) == 0 {
		return core.NewConfigError(`array step requires a non-empty "child_clicks" list`)
	}
	return nil
}

func (r *ArrayRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	if len(ctx.Step.ChildClicks) == 0 {
		return nil, core.NewConfigError(`array step requires a non-empty "child_clicks" list`)
	}

	parents, indices, _, err := resolveParents(ctx)
	if err != nil {
		return nil, err
	}

	timeout := ctx.StepTimeout(ctx.Timeouts.Element)

	for _, i := range indices {
		parent := parents.Nth(i)
		ctx.Logger.Info().Int("parent_index", i).Msg("Processing parent")

		for j, child := range ctx.Step.ChildClicks {
			// Children always take the first match inside their parent.
			child.SelectIndex = nil

			childCtx := *ctx
			childCtx.Step = child
			childCtx.Parent = parent
			childCtx.Tolerant = false

			el, childSelector, err := steprunner.ResolveTarget(&childCtx)
			if err == nil {
				childCtx.Logger.Info().
					Int("child", j+1).
					Str("selector", childSelector).
					Msg("Child click")
				if err = steprunner.PrepareTarget(el, childSelector, timeout); err == nil {
					err = steprunner.ClickTarget(&childCtx, el, timeout)
				}
			}
			if err != nil {
				if child.IgnoreOnError {
					ctx.Logger.Warn().Err(err).Int("child", j+1).Msg("Child click failed but ignoring")
					continue
				}
				return nil, err
			}

			steprunner.StepSleep(child.Sleep)
		}
	}

	steprunner.StepSleep(ctx.Step.Sleep)
	return nil, nil
}
