package runners

import (
	"fmt"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// GroupRunner is the recursive core of the interpreter: it resolves a set
// of parent elements and, for each selected parent, executes a full
// ordered list of nested steps through the same kind dispatch the run
// loop uses, with the matched parent as the ambient scope. Nesting depth
// is unbounded; a group action may contain further group actions.
type GroupRunner struct {
	StepCtx steprunner.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory(types.KindGroup, func(ctx steprunner.ExecutionContext) (steprunner.StepRunner, error) {
		return &GroupRunner{StepCtx: ctx}, nil
	})
}

func (r *GroupRunner) Validate() error {
	if len(r.StepCtx.Step.Actions) == 0 {
		return core.NewConfigError(`group_action step requires a non-empty "actions" list`)
	}
	return nil
}

func (r *GroupRunner) Run() (*steprunner.StepResult, error) {
	ctx := &r.StepCtx

	if len(ctx.Step.Actions) == 0 {
		return nil, core.NewConfigError(`group_action step requires a non-empty "actions" list`)
	}

	parents, indices, _, err := resolveParents(ctx)
	if err != nil {
		return nil, err
	}

	timeout := ctx.StepTimeout(ctx.Timeouts.Element)

	for _, i := range indices {
		parent := parents.Nth(i)
		ctx.Logger.Info().Int("parent_index", i).Msg("Processing group parent")

		// Best effort; a parent that never becomes visible still gets its
		// actions attempted against it.
		if err := parent.WaitVisible(timeout); err != nil {
			ctx.Logger.Debug().Err(err).Int("parent_index", i).Msg("Parent visibility wait timed out")
		}
		if err := parent.ScrollIntoView(); err != nil {
			ctx.Logger.Debug().Err(err).Int("parent_index", i).Msg("Parent scroll failed")
		}

		if err := r.runActions(parent, i); err != nil {
			return nil, err
		}
	}

	steprunner.StepSleep(ctx.Step.Sleep)
	return nil, nil
}

// runActions executes one parent's nested step list. The frame variable is
// local to this parent's list: a nested frame switch affects only the
// remaining siblings here, never another parent's iteration or the
// enclosing run loop.
func (r *GroupRunner) runActions(parent browser.Element, parentIndex int) error {
	ctx := &r.StepCtx
	localFrame := ctx.Frame

	for j, action := range ctx.Step.Actions {
		title := action.Title
		if title == "" {
			title = fmt.Sprintf("action #%d", j+1)
		}
		tolerated := action.IgnoreOnError || ctx.Tolerates()

		actionLogger := ctx.Logger.With().
			Str("action_title", title).
			Str("action_kind", action.RawKind).
			Int("parent_index", parentIndex).
			Logger()

		actionLogger.Info().Msgf("[group_action] Parent %d - Action %d: %s", parentIndex, j+1, title)

		if action.Kind == types.KindUnknown {
			err := unknownActionError(&action)
			if tolerated {
				actionLogger.Warn().Err(err).Msg("Nested action skipped")
				continue
			}
			return fmt.Errorf("nested action %q: %w", title, err)
		}

		childCtx := *ctx
		childCtx.Step = action
		childCtx.Logger = actionLogger
		childCtx.Frame = localFrame
		childCtx.Parent = parent
		childCtx.Tolerant = ctx.Tolerates()

		runner, err := steprunner.GetRunner(childCtx)
		if err != nil {
			return fmt.Errorf("nested action %q: %w", title, err)
		}

		result, err := runner.Run()
		if err != nil {
			if !core.AlwaysFatal(err) && tolerated {
				actionLogger.Warn().Err(err).Msg("Nested action failed but ignoring")
				continue
			}
			return fmt.Errorf("nested action %q: %w", title, err)
		}

		if result != nil {
			if result.ResetFrame {
				localFrame = nil
			}
			if result.Frame != nil {
				localFrame = result.Frame
			}
		}
	}
	return nil
}

func unknownActionError(action *types.Step) error {
	if action.RawKind == "" {
		return core.NewConfigError(`nested action is missing "kind"`)
	}
	return core.NewConfigError("unsupported nested action kind %q", action.RawKind)
}
