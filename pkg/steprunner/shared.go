package steprunner

import (
	"time"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// ResolveTarget runs the resolution algorithm shared by the element-acting
// step kinds: build the selector, resolve the set in the ambient scope,
// apply the text filter, then disambiguate by select_index (default 0).
// Returns the selected element and the selector string for logging.
func ResolveTarget(ctx *ExecutionContext) (browser.Element, string, error) {
	return resolveIn(ctx.Root(), ctx.Step.Selector, ctx.Step.SelectIndex)
}

func resolveIn(root browser.Scope, sel types.Selector, index *int) (browser.Element, string, error) {
	selector := core.SelectorFor(sel)

	set := root.Locator(selector)
	if sel.Text != "" {
		set = set.FilterByText(sel.Text)
	}

	count, err := set.Count()
	if err != nil {
		return nil, selector, &core.InteractionError{Op: "count", Err: err}
	}
	if count == 0 {
		return nil, selector, &core.NotFoundError{Selector: selector, Text: sel.Text}
	}

	idx := 0
	if index != nil {
		idx = *index
		if idx < 0 || idx >= count {
			return nil, selector, &core.IndexOutOfRangeError{Index: idx, Count: count}
		}
	}

	return set.Nth(idx), selector, nil
}

// PrepareTarget waits for the element to become visible and scrolls it
// into view.
func PrepareTarget(el browser.Element, selector string, timeout time.Duration) error {
	if err := el.WaitVisible(timeout); err != nil {
		return &core.TimeoutError{Op: "visibility", Selector: selector, Err: err}
	}
	if err := el.ScrollIntoView(); err != nil {
		return &core.InteractionError{Op: "scroll into view", Err: err}
	}
	return nil
}

// ClickTarget clicks a resolved element. When the element exposes a
// navigation reference it waits for the resulting navigation to settle,
// falling back to a fixed delay; that wait never fails the step.
func ClickTarget(ctx *ExecutionContext, el browser.Element, timeout time.Duration) error {
	// Best effort: a missing href just means no post-click settle wait.
	href, _ := el.GetAttribute("href")

	if err := el.Click(timeout); err != nil {
		return &core.InteractionError{Op: "click", Err: err}
	}

	if href != "" {
		if err := ctx.Session.WaitForQuiescence(ctx.Timeouts.NavigationSettle); err != nil {
			ctx.Logger.Debug().Err(err).Msg("Post-click settle wait timed out, applying fixed delay")
			time.Sleep(2 * time.Second)
		}
	}
	return nil
}

// EvaluateCondition resolves the condition's selector in the given scope
// and reports element-count truthiness. A missing or unknown status is a
// configuration error.
func EvaluateCondition(root browser.Scope, cond *types.Condition, logger types.Logger) (bool, error) {
	selector := core.SelectorFor(cond.Selector)

	set := root.Locator(selector)
	if cond.Selector.Text != "" {
		set = set.FilterByText(cond.Selector.Text)
	}

	count, err := set.Count()
	if err != nil {
		return false, &core.InteractionError{Op: "condition count", Err: err}
	}

	logger.Info().
		Str("selector", selector).
		Str("status", cond.Status).
		Int("found", count).
		Msg("Condition check")

	switch cond.Status {
	case "found":
		return count > 0, nil
	case "not_found":
		return count == 0, nil
	case "":
		return false, core.NewConfigError(`condition is missing "status" (found/not_found)`)
	default:
		return false, core.NewConfigError("unknown condition status %q", cond.Status)
	}
}

// Tolerate applies the propagation policy: a tolerated failure is logged
// as a warning and swallowed, everything else (and any always-fatal
// configuration error) propagates.
func Tolerate(ctx *ExecutionContext, err error, what string) error {
	if err == nil {
		return nil
	}
	if !core.AlwaysFatal(err) && ctx.Tolerates() {
		ctx.Logger.Warn().Err(err).Msgf("%s failed but ignoring", what)
		return nil
	}
	return err
}

// StepSleep applies a step's optional post-step delay.
func StepSleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
