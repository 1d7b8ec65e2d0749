package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stepdriver/stepdriver/pkg/types"
)

// MaxNestingDepth bounds step-list recursion so a malformed or
// machine-generated document fails fast at load time instead of exhausting
// the call stack during a run.
const MaxNestingDepth = 32

// LoadWorkflowFromFile reads a workflow document, interpolates varfile
// placeholders, and decodes the step records. The document must be a JSON
// array of objects.
func LoadWorkflowFromFile(path string, vars VarContext) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow file %q: %w", path, err)
	}
	wf, err := ParseWorkflow(data, vars)
	if err != nil {
		return nil, fmt.Errorf("parsing workflow file %q: %w", path, err)
	}
	return wf, nil
}

// ParseWorkflow decodes a workflow document from raw JSON.
func ParseWorkflow(data []byte, vars VarContext) (*Workflow, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing workflow JSON: %w", err)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("workflow must be a JSON array of step records")
	}

	if len(vars) > 0 {
		list = InterpolateValue(list, vars).([]any)
	}

	steps, err := decodeSteps(list, 0)
	if err != nil {
		return nil, err
	}
	return &Workflow{Steps: steps}, nil
}

func decodeSteps(list []any, depth int) ([]Step, error) {
	if depth > MaxNestingDepth {
		return nil, NewFatalConfigError("step nesting exceeds the maximum depth of %d", MaxNestingDepth)
	}

	steps := make([]Step, 0, len(list))
	for i, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, NewConfigError("step %d is not a JSON object", i+1)
		}
		step, err := decodeStep(record, depth)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// decodeStep resolves every tolerated field alias once, here, so the rest
// of the interpreter only ever sees canonical typed fields.
func decodeStep(record map[string]any, depth int) (Step, error) {
	rawKind := strings.TrimSpace(StringField(record, "kind", "type"))

	step := Step{
		Kind:          kindFromString(rawKind),
		RawKind:       rawKind,
		Title:         StringField(record, "title"),
		Selector:      decodeSelector(record),
		IgnoreOnError: BoolField(record, "ignore_on_error", "ignore"),
		Timeout:       SecondsField(record, "timeout"),
		Sleep:         SecondsField(record, "sleep"),
		SelectIndex:   IntField(record, "select_index", "array_select_one"),
	}

	switch step.Kind {
	case types.KindGoto:
		step.URL = StringField(record, "value", "url")

	case types.KindClick:
		cond, err := decodeCondition(record, depth)
		if err != nil {
			return step, err
		}
		step.Condition = cond

	case types.KindWrite:
		step.WriteText = StringField(record, "write", "value", "text")
		if v := GetField(record, "clear"); v != nil {
			b := BoolField(record, "clear")
			step.Clear = &b
		}

	case types.KindScroll:
		step.ScrollX = IntField(record, "x")
		step.ScrollY = IntField(record, "y")

	case types.KindArray:
		step.FilterTextInside = StringField(record, "filter_text_inside", "if_find_text_inside")
		children, err := decodeNestedList(record, depth, types.KindClick, "child_clicks", "click")
		if err != nil {
			return step, err
		}
		step.ChildClicks = children

	case types.KindGroup:
		step.FilterTextInside = StringField(record, "filter_text_inside", "if_find_text_inside")
		actions, err := decodeNestedList(record, depth, types.KindUnknown, "actions", "steps")
		if err != nil {
			return step, err
		}
		step.Actions = actions

	case types.KindFrame:
		step.Frame = FrameRef{
			Selector: StringField(record, "selector"),
			Name:     StringField(record, "name"),
			URL:      StringField(record, "url"),
			Index:    IntField(record, "index"),
		}

	case types.KindDownloadFromLink, types.KindDownloadPage:
		step.Download = types.DownloadSpec{
			Dir:      StringField(record, "download_dir", "dir"),
			Filename: StringField(record, "filename", "file_name", "file"),
			Mode:     strings.ToLower(StringField(record, "mode", "format", "as")),
		}
	}

	return step, nil
}

func decodeSelector(record map[string]any) Selector {
	return Selector{
		Tag:       StringField(record, "tag"),
		Class:     StringField(record, "class"),
		Attribute: StringField(record, "attribute", "attr", "arrt"),
		Value:     StringField(record, "value"),
		Text:      StringField(record, "text"),
	}
}

// decodeNestedList decodes an ordered nested step list. When defaultKind is
// not KindUnknown, records without a kind of their own decode to it (array
// child clicks are plain click specs).
func decodeNestedList(record map[string]any, depth int, defaultKind Kind, key string, aliases ...string) ([]Step, error) {
	v := GetField(record, key, aliases...)
	if v == nil {
		return nil, nil
	}

	list, ok := v.([]any)
	if !ok {
		// A single object is accepted as a one-element list.
		if single, isObj := v.(map[string]any); isObj {
			list = []any{single}
		} else {
			return nil, NewConfigError("%q must be a list of step records", key)
		}
	}

	if depth+1 > MaxNestingDepth {
		return nil, NewFatalConfigError("step nesting exceeds the maximum depth of %d", MaxNestingDepth)
	}

	steps := make([]Step, 0, len(list))
	for i, item := range list {
		childRecord, isObj := item.(map[string]any)
		if !isObj {
			return nil, NewConfigError("%q entry %d is not a JSON object", key, i+1)
		}
		child, err := decodeStep(childRecord, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", key, i+1, err)
		}
		if child.RawKind == "" && defaultKind != types.KindUnknown {
			child.Kind = defaultKind
			child.RawKind = defaultKind.String()
		}
		steps = append(steps, child)
	}
	return steps, nil
}

func decodeCondition(record map[string]any, depth int) (*Condition, error) {
	v := GetField(record, "condition", "if")
	if v == nil {
		return nil, nil
	}
	condRecord, ok := v.(map[string]any)
	if !ok {
		return nil, NewConfigError(`"condition" must be a JSON object`)
	}

	cond := &Condition{
		Selector: decodeSelector(condRecord),
		Status:   strings.ToLower(StringField(condRecord, "status")),
	}

	alt, err := decodeNestedList(condRecord, depth, types.KindClick, "click", "steps")
	if err != nil {
		return nil, err
	}
	cond.Alternate = alt
	return cond, nil
}

func kindFromString(s string) Kind {
	switch strings.ToLower(s) {
	case "goto":
		return types.KindGoto
	case "click":
		return types.KindClick
	case "write":
		return types.KindWrite
	case "scroll":
		return types.KindScroll
	case "array":
		return types.KindArray
	case "group_action", "group":
		return types.KindGroup
	case "frame":
		return types.KindFrame
	case "main_frame":
		return types.KindMainFrame
	case "use_last_tab":
		return types.KindUseLastTab
	case "download_from_link":
		return types.KindDownloadFromLink
	case "download_page", "save_page":
		return types.KindDownloadPage
	default:
		return types.KindUnknown
	}
}
