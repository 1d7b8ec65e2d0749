package runners

import (
	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
)

// resolveParents runs the parent-resolution algorithm shared by the array
// and group kinds: resolve the parent set in the ambient scope, apply the
// inner-text filter, then select either one parent (by index) or all.
func resolveParents(ctx *steprunner.ExecutionContext) (browser.ElementSet, []int, string, error) {
	step := ctx.Step
	selector := core.SelectorFor(step.Selector)

	set := ctx.Root().Locator(selector)
	if step.FilterTextInside != "" {
		set = set.FilterByText(step.FilterTextInside)
	}

	total, err := set.Count()
	if err != nil {
		return nil, nil, selector, &core.InteractionError{Op: "count parents", Err: err}
	}
	if total == 0 {
		return nil, nil, selector, &core.NotFoundError{Selector: selector, Text: step.FilterTextInside}
	}

	ctx.Logger.Info().Str("selector", selector).Int("found", total).Msg("Resolved parent elements")

	if step.SelectIndex != nil {
		idx := *step.SelectIndex
		if idx < 0 || idx >= total {
			return nil, nil, selector, &core.IndexOutOfRangeError{Index: idx, Count: total}
		}
		return set, []int{idx}, selector, nil
	}

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}
	return set, indices, selector, nil
}
