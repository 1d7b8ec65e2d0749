package types

import "time"

// Kind identifies a supported step kind. Unsupported kinds decode to
// KindUnknown with the raw string preserved for the tolerate/fail decision.
type Kind int

const (
	KindUnknown Kind = iota
	KindGoto
	KindClick
	KindWrite
	KindScroll
	KindArray
	KindGroup
	KindFrame
	KindMainFrame
	KindUseLastTab
	KindDownloadFromLink
	KindDownloadPage
)

func (k Kind) String() string {
	switch k {
	case KindGoto:
		return "goto"
	case KindClick:
		return "click"
	case KindWrite:
		return "write"
	case KindScroll:
		return "scroll"
	case KindArray:
		return "array"
	case KindGroup:
		return "group_action"
	case KindFrame:
		return "frame"
	case KindMainFrame:
		return "main_frame"
	case KindUseLastTab:
		return "use_last_tab"
	case KindDownloadFromLink:
		return "download_from_link"
	case KindDownloadPage:
		return "download_page"
	default:
		return "unknown"
	}
}

// Selector holds the element-matching fields shared by most step kinds.
// Text is a post-hoc inner-text filter, not part of the CSS selector.
type Selector struct {
	Tag       string
	Class     string
	Attribute string
	Value     string
	Text      string
}

// Empty reports whether no selector field is set at all.
func (s Selector) Empty() bool {
	return s.Tag == "" && s.Class == "" && s.Attribute == "" && s.Value == "" && s.Text == ""
}

// FrameRef locates an iframe. Exactly one field should be set; the
// resolution precedence is Selector > Name > URL > Index.
type FrameRef struct {
	Selector string
	Name     string
	URL      string
	Index    *int
}

// Empty reports whether no frame locator field is set.
func (f FrameRef) Empty() bool {
	return f.Selector == "" && f.Name == "" && f.URL == "" && f.Index == nil
}

// Condition is a presence predicate attached to a click step. When it
// holds, the Alternate steps run instead of the primary click.
type Condition struct {
	Selector  Selector
	Status    string // "found" or "not_found"
	Alternate []Step
}

// DownloadSpec holds artifact-persistence fields for the download kinds.
type DownloadSpec struct {
	Dir      string
	Filename string
	Mode     string // download_page: "html" or "text"/"txt"
}

// Step is one decoded instruction of a workflow document. Field aliases
// and case-insensitive keys are resolved at decode time, never here.
type Step struct {
	Kind    Kind
	RawKind string
	Title   string

	Selector Selector

	IgnoreOnError bool
	Timeout       time.Duration // 0 means the kind's default applies
	Sleep         time.Duration
	SelectIndex   *int

	// click
	Condition *Condition

	// write
	WriteText string
	Clear     *bool // nil means clear (the default)

	// scroll
	ScrollX *int
	ScrollY *int

	// goto
	URL string

	// array / group_action
	FilterTextInside string
	ChildClicks      []Step // array: flat child click list
	Actions          []Step // group_action: full nested step list

	// frame
	Frame FrameRef

	// downloads
	Download DownloadSpec
}

// ClearInput reports whether a write step should clear the target before
// typing. Absent means yes.
func (s *Step) ClearInput() bool {
	return s.Clear == nil || *s.Clear
}

// Workflow is a parsed workflow document: an ordered list of steps.
type Workflow struct {
	Steps []Step
}
