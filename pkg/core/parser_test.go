package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepdriver/stepdriver/pkg/core"
	"github.com/stepdriver/stepdriver/pkg/types"
)

func TestParseWorkflowBasics(t *testing.T) {
	doc := `[
		{"kind": "goto", "value": "https://example.com", "sleep": 1},
		{"type": "click", "tag": "button", "class": "submit primary", "timeout": 10},
		{"kind": "write", "tag": "input", "attribute": "name", "value": "q", "write": "hello", "clear": false}
	]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, wf.Steps, 3)

	assert.Equal(t, types.KindGoto, wf.Steps[0].Kind)
	assert.Equal(t, "https://example.com", wf.Steps[0].URL)
	assert.Equal(t, time.Second, wf.Steps[0].Sleep)

	// "type" is accepted as an alias for "kind"
	assert.Equal(t, types.KindClick, wf.Steps[1].Kind)
	assert.Equal(t, "submit primary", wf.Steps[1].Selector.Class)
	assert.Equal(t, 10*time.Second, wf.Steps[1].Timeout)

	write := wf.Steps[2]
	assert.Equal(t, types.KindWrite, write.Kind)
	assert.Equal(t, "hello", write.WriteText)
	require.NotNil(t, write.Clear)
	assert.False(t, *write.Clear)
	assert.Equal(t, "name", write.Selector.Attribute)
}

func TestParseWorkflowRejectsNonArray(t *testing.T) {
	_, err := core.ParseWorkflow([]byte(`{"kind": "goto"}`), nil)
	assert.Error(t, err)

	_, err = core.ParseWorkflow([]byte(`not json`), nil)
	assert.Error(t, err)
}

func TestParseWorkflowUnknownKindIsPreserved(t *testing.T) {
	doc := `[{"kind": "teleport", "ignore": true}]`
	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, wf.Steps, 1)

	assert.Equal(t, types.KindUnknown, wf.Steps[0].Kind)
	assert.Equal(t, "teleport", wf.Steps[0].RawKind)
	assert.True(t, wf.Steps[0].IgnoreOnError)
}

func TestParseWorkflowArrayChildren(t *testing.T) {
	doc := `[{
		"kind": "array",
		"tag": "section",
		"class": ".clsQuestion",
		"if_find_text_inside": "What color?",
		"click": [{"tag": "label", "text": "Blue"}],
		"array_select_one": 0
	}]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	step := wf.Steps[0]

	assert.Equal(t, types.KindArray, step.Kind)
	assert.Equal(t, "What color?", step.FilterTextInside)
	require.NotNil(t, step.SelectIndex)
	assert.Equal(t, 0, *step.SelectIndex)

	require.Len(t, step.ChildClicks, 1)
	// children without a kind of their own decode as clicks
	assert.Equal(t, types.KindClick, step.ChildClicks[0].Kind)
	assert.Equal(t, "Blue", step.ChildClicks[0].Selector.Text)
}

func TestParseWorkflowSingleChildObjectBecomesList(t *testing.T) {
	doc := `[{
		"kind": "array",
		"tag": "div",
		"click": {"tag": "a", "text": "Next"}
	}]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, wf.Steps[0].ChildClicks, 1)
	assert.Equal(t, "Next", wf.Steps[0].ChildClicks[0].Selector.Text)
}

func TestParseWorkflowGroupActions(t *testing.T) {
	doc := `[{
		"kind": "group_action",
		"tag": "div",
		"class": "card",
		"actions": [
			{"kind": "click", "tag": "a"},
			{"kind": "group", "tag": "ul", "actions": [{"kind": "click", "tag": "li"}]}
		]
	}]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	step := wf.Steps[0]

	assert.Equal(t, types.KindGroup, step.Kind)
	require.Len(t, step.Actions, 2)
	assert.Equal(t, types.KindClick, step.Actions[0].Kind)

	nested := step.Actions[1]
	assert.Equal(t, types.KindGroup, nested.Kind)
	require.Len(t, nested.Actions, 1)
	assert.Equal(t, types.KindClick, nested.Actions[0].Kind)
}

func TestParseWorkflowCondition(t *testing.T) {
	doc := `[{
		"kind": "click",
		"tag": "button",
		"condition": {
			"tag": "div",
			"class": "modal",
			"status": "found",
			"click": [{"tag": "button", "text": "Dismiss"}]
		}
	}]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	cond := wf.Steps[0].Condition

	require.NotNil(t, cond)
	assert.Equal(t, "found", cond.Status)
	assert.Equal(t, "modal", cond.Selector.Class)
	require.Len(t, cond.Alternate, 1)
	assert.Equal(t, "Dismiss", cond.Alternate[0].Selector.Text)
}

func TestParseWorkflowFrameFields(t *testing.T) {
	doc := `[
		{"kind": "frame", "name": "content"},
		{"kind": "frame", "index": 2},
		{"kind": "main_frame"},
		{"kind": "use_last_tab"}
	]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)

	assert.Equal(t, "content", wf.Steps[0].Frame.Name)
	require.NotNil(t, wf.Steps[1].Frame.Index)
	assert.Equal(t, 2, *wf.Steps[1].Frame.Index)
	assert.Equal(t, types.KindMainFrame, wf.Steps[2].Kind)
	assert.Equal(t, types.KindUseLastTab, wf.Steps[3].Kind)
}

func TestParseWorkflowDownloadFields(t *testing.T) {
	doc := `[
		{"kind": "download_from_link", "tag": "a", "download_dir": "files", "filename": "report.pdf"},
		{"kind": "save_page", "mode": "TEXT"}
	]`

	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)

	assert.Equal(t, types.KindDownloadFromLink, wf.Steps[0].Kind)
	assert.Equal(t, "files", wf.Steps[0].Download.Dir)
	assert.Equal(t, "report.pdf", wf.Steps[0].Download.Filename)

	assert.Equal(t, types.KindDownloadPage, wf.Steps[1].Kind)
	assert.Equal(t, "text", wf.Steps[1].Download.Mode)
}

func TestParseWorkflowInterpolation(t *testing.T) {
	doc := `[{"kind": "goto", "value": "{{ base_url }}/login"}]`
	vars := core.VarContext{"base_url": "https://portal.example.com"}

	wf, err := core.ParseWorkflow([]byte(doc), vars)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com/login", wf.Steps[0].URL)
}

func TestParseWorkflowDepthGuard(t *testing.T) {
	inner := `{"kind": "click", "tag": "a"}`
	for i := 0; i < core.MaxNestingDepth+2; i++ {
		inner = `{"kind": "group", "tag": "div", "actions": [` + inner + `]}`
	}
	_, err := core.ParseWorkflow([]byte(`[`+inner+`]`), nil)
	require.Error(t, err)
	assert.True(t, core.AlwaysFatal(err))
}
