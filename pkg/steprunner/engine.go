package steprunner

import (
	"fmt"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// WorkflowEngine executes a decoded workflow against a browser session.
// The only state carried across top-level steps is the current frame
// scope; a matched parent never survives outside a single group call.
type WorkflowEngine struct {
	Logger      types.Logger
	Session     browser.Session
	Timeouts    Timeouts
	DownloadDir string
}

func NewWorkflowEngine(logger types.Logger, session browser.Session) *WorkflowEngine {
	return &WorkflowEngine{
		Logger:   logger,
		Session:  session,
		Timeouts: DefaultTimeouts(),
	}
}

// ExecuteWorkflow runs the step list in order, dispatching each step by
// kind and stopping at the first unrecovered failure. Already-performed
// page mutations are never rolled back.
func (e *WorkflowEngine) ExecuteWorkflow(wf *types.Workflow) error {
	var currentFrame browser.Scope

	for i := range wf.Steps {
		step := wf.Steps[i]
		title := step.Title
		if title == "" {
			title = fmt.Sprintf("Step #%d", i+1)
		}

		scopedLogger := e.Logger.With().
			Str("step_title", title).
			Str("step_kind", step.RawKind).
			Logger()

		scopedLogger.Info().Msgf("--- Step %d: %s ---", i+1, title)

		if step.Kind == types.KindUnknown {
			err := unknownKindError(&step)
			if step.IgnoreOnError {
				scopedLogger.Warn().Err(err).Msg("Step skipped")
				continue
			}
			scopedLogger.Error().Err(err).Msg("Step failed")
			return fmt.Errorf("step %q: %w", title, err)
		}

		ctx := ExecutionContext{
			Step:        step,
			Logger:      scopedLogger,
			Session:     e.Session,
			Frame:       currentFrame,
			Timeouts:    e.Timeouts,
			DownloadDir: e.DownloadDir,
		}

		runner, err := GetRunner(ctx)
		if err != nil {
			return fmt.Errorf("getting runner for step %q: %w", title, err)
		}

		result, err := runner.Run()
		if err != nil {
			if !core.AlwaysFatal(err) && step.IgnoreOnError {
				scopedLogger.Warn().Err(err).Msg("Step failed but ignoring")
				continue
			}
			scopedLogger.Error().Err(err).Msg("Step failed")
			return fmt.Errorf("step %q: %w", title, err)
		}

		if result != nil {
			if result.ResetFrame {
				currentFrame = nil
			}
			if result.Frame != nil {
				currentFrame = result.Frame
			}
		}
	}

	e.Logger.Info().Msg("=== Workflow completed successfully ===")
	return nil
}

func unknownKindError(step *types.Step) error {
	if step.RawKind == "" {
		return core.NewConfigError(`step is missing "kind"`)
	}
	return core.NewConfigError("unsupported step kind %q", step.RawKind)
}

// ValidateWorkflowRunners instantiates each top-level step's runner and
// runs its static checks, rejecting every problem regardless of tolerance
// flags. Used by lint before any browser exists.
func ValidateWorkflowRunners(wf *types.Workflow) error {
	return validateRunners(wf, true)
}

// ValidateRunnableSteps is the run-time pre-flight variant: a tolerated
// step keeps its configuration problems for the engine's warn-and-skip
// path, while an always-fatal error (a goto without a URL) still rejects
// the workflow up front.
func ValidateRunnableSteps(wf *types.Workflow) error {
	return validateRunners(wf, false)
}

func validateRunners(wf *types.Workflow, strict bool) error {
	for i := range wf.Steps {
		step := wf.Steps[i]
		if step.Kind == types.KindUnknown {
			if step.IgnoreOnError {
				continue
			}
			return fmt.Errorf("step %d: %w", i+1, unknownKindError(&step))
		}

		runner, err := GetRunner(ExecutionContext{Step: step, Timeouts: DefaultTimeouts()})
		if err != nil {
			return fmt.Errorf("getting runner for step %d: %w", i+1, err)
		}
		if err := runner.Validate(); err != nil {
			if strict || core.AlwaysFatal(err) || !step.IgnoreOnError {
				return fmt.Errorf("validating step %d: %w", i+1, err)
			}
		}
	}
	return nil
}
