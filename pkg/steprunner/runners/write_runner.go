package runners

import (
	"math/rand/v2"
	"time"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// WriteRunner types text into a resolved element with human pacing:
// a randomized delay after every character and a longer pause after
// spaces, so input handlers see keystrokes, not a paste.
type WriteRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindWrite, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &WriteRunner{StepCtx: ctx}, nil
	})
}

func (r *WriteRunner) Validate() error {
	if r.StepCtx.Step.WriteText == "" {
		return core.NewConfigError(`write step is missing "write" or "value"`)
	}
	return nil
}

func (r *WriteRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	text := ctx.Step.WriteText
	if text == "" {
		return nil, core.NewConfigError(`write step is missing "write" or "value"`)
	}

	el, selector, err := steprunner.ResolveTarget(ctx)
	if err != nil {
		return nil, err
	}

	ctx.Logger.Info().Str("selector", selector).Msgf("Writing %q", text)

	timeout := ctx.StepTimeout(ctx.Timeouts.Element)
	if err := steprunner.PrepareTarget(el, selector, timeout); err != nil {
		return nil, err
	}

	// Click to focus before typing.
	if err := el.Click(timeout); err != nil {
		return nil, &core.InteractionError{Op: "focus click", Err: err}
	}
	if ctx.Step.ClearInput() {
		if err := el.Clear(); err != nil {
			return nil, &core.InteractionError{Op: "clear", Err: err}
		}
	}

	if err := humanType(el, text); err != nil {
		return nil, &core.InteractionError{Op: "type", Err: err}
	}

	steprunner.StepSleep(ctx.Step.Sleep)
	return nil, nil
}

// humanType emits text one rune at a time, sleeping 50-250ms between
// characters and an extra 200-600ms after each space.
func humanType(el browser.Element, text string) error {
	for _, ch := range text {
		if err := el.TypeSequence(string(ch)); err != nil {
			return err
		}
		delay := time.Duration(50+rand.IntN(201)) * time.Millisecond
		if ch == ' ' {
			delay += time.Duration(200+rand.IntN(401)) * time.Millisecond
		}
		time.Sleep(delay)
	}
	return nil
}
