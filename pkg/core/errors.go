package core

import (
	"errors"
	"fmt"
)

// The interpreter distinguishes five failure classes. All of them respect a
// step's tolerance flag except a ConfigError marked AlwaysFatal (a missing
// navigation target is an authoring bug, not a transient condition).

// NotFoundError reports a selector that matched zero elements.
type NotFoundError struct {
	Selector string
	Text     string
}

func (e *NotFoundError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("no elements matched %q with text %q", e.Selector, e.Text)
	}
	return fmt.Sprintf("no elements matched %q", e.Selector)
}

// IndexOutOfRangeError reports an explicit select_index outside the match count.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("select_index %d is out of range (found %d)", e.Index, e.Count)
}

// TimeoutError reports an exceeded visibility, navigation, or download wait.
type TimeoutError struct {
	Op       string
	Selector string
	Err      error
}

func (e *TimeoutError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("timed out waiting for %s on %q", e.Op, e.Selector)
	}
	return fmt.Sprintf("timed out waiting for %s", e.Op)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ConfigError reports a missing or invalid required field in the workflow
// document itself.
type ConfigError struct {
	Msg         string
	AlwaysFatal bool
}

func (e *ConfigError) Error() string { return e.Msg }

// NewConfigError builds a tolerable configuration error.
func NewConfigError(format string, v ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, v...)}
}

// NewFatalConfigError builds a configuration error that aborts the run even
// under a tolerance flag.
func NewFatalConfigError(format string, v ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, v...), AlwaysFatal: true}
}

// InteractionError wraps an unexpected failure from the automation surface
// during a click, type, or navigate call.
type InteractionError struct {
	Op  string
	Err error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }

// AlwaysFatal reports whether err must abort the run regardless of any
// tolerance flag on the step or its ancestors.
func AlwaysFatal(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.AlwaysFatal
}
