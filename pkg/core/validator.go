package core

import (
	"fmt"

	"github.com/stepdriver/stepdriver/pkg/types"
)

// ValidateWorkflowStructure checks every step of a decoded document for the
// authoring errors that would otherwise surface mid-run as configuration
// failures: missing navigation targets, empty nested lists, bad condition
// statuses, ambiguous frame locators, unsupported kinds. Every problem is
// rejected regardless of tolerance flags; this is the lint gate.
func ValidateWorkflowStructure(wf *Workflow) error {
	return validateWorkflow(wf, true)
}

// ValidateRunnableWorkflow checks only what a run could never recover from.
// A step under an ignore_on_error flag (its own or an enclosing group's)
// keeps its per-kind configuration problems for the engine's warn-and-skip
// path; a goto without a URL is rejected here regardless, matching its
// always-fatal runtime behavior.
func ValidateRunnableWorkflow(wf *Workflow) error {
	return validateWorkflow(wf, false)
}

func validateWorkflow(wf *Workflow, strict bool) error {
	if len(wf.Steps) == 0 {
		return fmt.Errorf("workflow has no steps")
	}
	for i := range wf.Steps {
		if err := validateStep(&wf.Steps[i], strict, false); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, stepLabel(&wf.Steps[i]), err)
		}
	}
	return nil
}

func stepLabel(step *Step) string {
	if step.Title != "" {
		return step.Title
	}
	if step.RawKind != "" {
		return step.RawKind
	}
	return "untitled"
}

// validateStep applies the per-kind checks. tolerated carries the enclosing
// group's tolerance down the nesting, mirroring how the engine ORs flags at
// run time; outside strict mode a tolerated step's problems pass through so
// the engine can warn and skip them.
func validateStep(step *Step, strict, tolerated bool) error {
	tolerated = tolerated || step.IgnoreOnError
	skip := !strict && tolerated

	switch step.Kind {
	case types.KindUnknown:
		if tolerated {
			return nil
		}
		if step.RawKind == "" {
			return fmt.Errorf("step is missing 'kind'")
		}
		return fmt.Errorf("unsupported step kind %q", step.RawKind)

	case types.KindGoto:
		// A missing navigation target aborts the run even under a
		// tolerance flag, so no mode relaxes this check.
		if step.URL == "" {
			return fmt.Errorf("goto step requires 'value' or 'url'")
		}

	case types.KindClick:
		if step.Condition != nil {
			if err := validateCondition(step.Condition, strict, tolerated); err != nil {
				return err
			}
		}

	case types.KindWrite:
		if step.WriteText == "" && !skip {
			return fmt.Errorf("write step requires 'write' or 'value'")
		}

	case types.KindScroll:
		if step.ScrollX == nil && step.ScrollY == nil && step.Selector.Empty() && !skip {
			return fmt.Errorf("scroll step requires either a position (x, y) or an element selector")
		}

	case types.KindArray:
		if len(step.ChildClicks) == 0 && !skip {
			return fmt.Errorf("array step requires a non-empty 'child_clicks' list")
		}

	case types.KindGroup:
		if len(step.Actions) == 0 && !skip {
			return fmt.Errorf("group_action step requires a non-empty 'actions' list")
		}
		for i := range step.Actions {
			if err := validateStep(&step.Actions[i], strict, tolerated); err != nil {
				return fmt.Errorf("action %d (%s): %w", i+1, stepLabel(&step.Actions[i]), err)
			}
		}

	case types.KindFrame:
		if err := validateFrameRef(step.Frame); err != nil && !skip {
			return err
		}

	case types.KindDownloadPage:
		switch step.Download.Mode {
		case "", "html", "text", "txt":
		default:
			if !skip {
				return fmt.Errorf("download_page 'mode' must be \"html\" or \"text\", got %q", step.Download.Mode)
			}
		}
	}
	return nil
}

func validateCondition(cond *Condition, strict, tolerated bool) error {
	switch cond.Status {
	case "found", "not_found":
	case "":
		if strict || !tolerated {
			return fmt.Errorf(`condition is missing 'status' ("found" or "not_found")`)
		}
	default:
		if strict || !tolerated {
			return fmt.Errorf("unknown condition status %q", cond.Status)
		}
	}
	for i := range cond.Alternate {
		if err := validateStep(&cond.Alternate[i], strict, tolerated); err != nil {
			return fmt.Errorf("condition click %d: %w", i+1, err)
		}
	}
	return nil
}

func validateFrameRef(ref FrameRef) error {
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
		return fmt.Errorf("frame step requires one of 'selector', 'name', 'url', or 'index'")
	case set > 1:
		return fmt.Errorf("frame step must set exactly one of 'selector', 'name', 'url', or 'index'")
	}
	return nil
}
