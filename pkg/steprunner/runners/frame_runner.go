package runners

import (
	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// FrameRunner switches the ambient scope into an iframe, located by CSS
// selector, name, URL substring, or index, in that precedence order.
type FrameRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindFrame, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &FrameRunner{StepCtx: ctx}, nil
	})
}

func (r *FrameRunner) Validate() error {
	ref := r.StepCtx.Step.Frame
	set := 0
	if ref.Selector != "" {
		set++
	}
	if ref.Name != "" {
		set++
	}
	if ref.URL != "" {
		set++
	}
	if ref.Index != nil {
		set++
	}
	switch {
	case set == 0:
		return core.NewConfigError(`frame step requires one of "selector", "name", "url", or "index"`)
	case set > 1:
		return core.NewConfigError(`frame step must set exactly one of "selector", "name", "url", or "index"`)
	}
	return nil
}

func (r *FrameRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx
	ref := ctx.Step.Frame

	var (
		scope browser.Scope
		err   error
	)

	switch {
	case ref.Selector != "":
		ctx.Logger.Info().Str("frame_selector", ref.Selector).Msg("Switching to frame by selector")
		scope = ctx.Session.FrameBySelector(ref.Selector)
	case ref.Name != "":
		ctx.Logger.Info().Str("frame_name", ref.Name).Msg("Switching to frame by name")
		scope, err = ctx.Session.FrameByName(ref.Name)
	case ref.URL != "":
		ctx.Logger.Info().Str("frame_url", ref.URL).Msg("Switching to frame by URL")
		scope, err = ctx.Session.FrameByURL(ref.URL)
	case ref.Index != nil:
		ctx.Logger.Info().Int("frame_index", *ref.Index).Msg("Switching to frame by index")
		scope, err = ctx.Session.FrameByIndex(*ref.Index)
	default:
		return nil, core.NewConfigError(`frame step requires one of "selector", "name", "url", or "index"`)
	}
	if err != nil {
		return nil, err
	}

	steprunner.StepSleep(ctx.Step.Sleep)
	return &steprunner.StepResult{Frame: scope}, nil
}
