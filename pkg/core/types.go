package core

import "github.com/stepdriver/stepdriver/pkg/types"

type Workflow = types.Workflow

type Step = types.Step

type Selector = types.Selector

type Condition = types.Condition

type FrameRef = types.FrameRef

type Kind = types.Kind

type Level = types.Level

// Level constants
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
