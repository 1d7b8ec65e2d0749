package steprunner

import (
	"time"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// Timeouts holds the per-concern default waits. The workflow document can
// override any of them per step via the step's own timeout field.
type Timeouts struct {
	Click            time.Duration
	Element          time.Duration
	Download         time.Duration
	NavigationSettle time.Duration
}

// DefaultTimeouts mirrors the defaults authors have come to rely on:
// clicks wait longer than plain element waits, downloads longest of all.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Click:            45 * time.Second,
		Element:          35 * time.Second,
		Download:         70 * time.Second,
		NavigationSettle: 20 * time.Second,
	}
}

// ExecutionContext carries everything a runner needs for one step: the
// decoded step, the ambient scope (frame and, inside a group iteration,
// the matched parent element), and the inherited tolerance flag.
type ExecutionContext struct {
	Step    types.Step
	Logger  types.Logger
	Session browser.Session

	// Frame is the current frame scope, nil when in the main frame.
	Frame browser.Scope
	// Parent is the matched parent element, set only inside a group or
	// array iteration.
	Parent browser.Element

	// Tolerant is the enclosing group's tolerance flag; it ORs with the
	// step's own ignore_on_error.
	Tolerant bool

	Timeouts    Timeouts
	DownloadDir string
}

// Tolerates reports whether a failure of this step should be logged and
// skipped rather than abort the run.
func (c *ExecutionContext) Tolerates() bool {
	return c.Tolerant || c.Step.IgnoreOnError
}

// Root returns the scope selectors resolve against, applying the
// parent > frame > page precedence.
func (c *ExecutionContext) Root() browser.Scope {
	var parent browser.Scope
	if c.Parent != nil {
		parent = c.Parent
	}
	return browser.Root(c.Session.Page(), c.Frame, parent)
}

// StepTimeout returns the step's own timeout when set, else the given
// default.
func (c *ExecutionContext) StepTimeout(def time.Duration) time.Duration {
	if c.Step.Timeout > 0 {
		return c.Step.Timeout
	}
	return def
}

// StepResult reports scope transitions back to the caller: a frame step
// yields the resolved frame, goto and main_frame reset the frame context.
type StepResult struct {
	Frame      browser.Scope
	ResetFrame bool
}
