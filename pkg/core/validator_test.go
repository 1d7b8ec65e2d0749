package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepdriver/stepdriver/pkg/core"
)

func parseSteps(t *testing.T, doc string) *core.Workflow {
	t.Helper()
	wf, err := core.ParseWorkflow([]byte(doc), nil)
	require.NoError(t, err)
	return wf
}

func TestValidateWorkflowStructure(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "valid workflow passes",
			doc: `[
				{"kind": "goto", "value": "https://example.com"},
				{"kind": "click", "tag": "button"},
				{"kind": "frame", "name": "content"},
				{"kind": "main_frame"}
			]`,
		},
		{
			name:    "empty workflow",
			doc:     `[]`,
			wantErr: "no steps",
		},
		{
			name:    "goto without url",
			doc:     `[{"kind": "goto"}]`,
			wantErr: "goto step requires",
		},
		{
			name:    "write without text",
			doc:     `[{"kind": "write", "tag": "input"}]`,
			wantErr: "write step requires",
		},
		{
			name:    "scroll without position or selector",
			doc:     `[{"kind": "scroll"}]`,
			wantErr: "scroll step requires",
		},
		{
			name: "scroll with position passes",
			doc:  `[{"kind": "scroll", "x": 0, "y": 500}]`,
		},
		{
			name:    "array without children",
			doc:     `[{"kind": "array", "tag": "div"}]`,
			wantErr: "child_clicks",
		},
		{
			name:    "group without actions",
			doc:     `[{"kind": "group_action", "tag": "div"}]`,
			wantErr: "actions",
		},
		{
			name:    "nested group error is surfaced",
			doc:     `[{"kind": "group", "tag": "div", "actions": [{"kind": "goto"}]}]`,
			wantErr: "goto step requires",
		},
		{
			name:    "frame without locator",
			doc:     `[{"kind": "frame"}]`,
			wantErr: "frame step requires",
		},
		{
			name:    "frame with two locators",
			doc:     `[{"kind": "frame", "name": "a", "index": 0}]`,
			wantErr: "exactly one",
		},
		{
			name:    "condition without status",
			doc:     `[{"kind": "click", "tag": "a", "condition": {"tag": "div"}}]`,
			wantErr: "status",
		},
		{
			name:    "condition with bad status",
			doc:     `[{"kind": "click", "tag": "a", "condition": {"tag": "div", "status": "maybe"}}]`,
			wantErr: "unknown condition status",
		},
		{
			name:    "unknown kind without tolerance",
			doc:     `[{"kind": "teleport"}]`,
			wantErr: "unsupported step kind",
		},
		{
			name: "unknown kind with tolerance passes",
			doc:  `[{"kind": "teleport", "ignore_on_error": true}]`,
		},
		{
			name:    "download_page with bad mode",
			doc:     `[{"kind": "download_page", "mode": "pdf"}]`,
			wantErr: "mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.ValidateWorkflowStructure(parseSteps(t, tt.doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateRunnableWorkflow(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "tolerated write without text passes",
			doc:  `[{"kind": "write", "tag": "input", "ignore_on_error": true}]`,
		},
		{
			name: "tolerated empty group passes",
			doc:  `[{"kind": "group_action", "tag": "div", "ignore_on_error": true}]`,
		},
		{
			name: "tolerated empty array passes",
			doc:  `[{"kind": "array", "tag": "div", "ignore_on_error": true}]`,
		},
		{
			name: "tolerated frame without locator passes",
			doc:  `[{"kind": "frame", "ignore_on_error": true}]`,
		},
		{
			name: "tolerated bare scroll passes",
			doc:  `[{"kind": "scroll", "ignore_on_error": true}]`,
		},
		{
			name: "tolerated bad download mode passes",
			doc:  `[{"kind": "download_page", "mode": "pdf", "ignore_on_error": true}]`,
		},
		{
			name: "tolerated condition without status passes",
			doc:  `[{"kind": "click", "tag": "a", "ignore_on_error": true, "condition": {"tag": "div"}}]`,
		},
		{
			name: "group tolerance covers nested actions",
			doc: `[{
				"kind": "group",
				"tag": "div",
				"ignore_on_error": true,
				"actions": [{"kind": "write", "tag": "input"}]
			}]`,
		},
		{
			name:    "goto without url fails even when tolerated",
			doc:     `[{"kind": "goto", "ignore_on_error": true}]`,
			wantErr: "goto step requires",
		},
		{
			name: "nested goto without url fails under group tolerance",
			doc: `[{
				"kind": "group",
				"tag": "div",
				"ignore_on_error": true,
				"actions": [{"kind": "goto"}]
			}]`,
			wantErr: "goto step requires",
		},
		{
			name:    "untolerated write without text still fails",
			doc:     `[{"kind": "write", "tag": "input"}]`,
			wantErr: "write step requires",
		},
		{
			name:    "untolerated frame without locator still fails",
			doc:     `[{"kind": "frame"}]`,
			wantErr: "frame step requires",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := parseSteps(t, tt.doc)
			err := core.ValidateRunnableWorkflow(wf)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				// These documents never pass the strict gate.
				assert.Error(t, core.ValidateWorkflowStructure(wf))
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
