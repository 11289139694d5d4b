package hunkgrep

type LineKind int

const (
	KindOther LineKind = iota // git metadata and anything outside a hunk
	KindMinusHeader
	KindPlusHeader
	KindHunkHeader
	KindContext
	KindRemoved
	KindAdded
)

var lineKindNames = [...]string{
	KindOther:       "other",
	KindMinusHeader: "minus-header",
	KindPlusHeader:  "plus-header",
	KindHunkHeader:  "hunk-header",
	KindContext:     "context",
	KindRemoved:     "removed",
	KindAdded:       "added",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return "unknown"
	}
	return lineKindNames[k]
}

// Line is one input line together with its classification. Text keeps the
// leading marker so the line can be re-emitted byte for byte.
type Line struct {
	Kind   LineKind
	Text   string
	Number int
}

// Content returns the text after the leading marker character.
func (l Line) Content() string {
	if l.Text == "" {
		return ""
	}
	return l.Text[1:]
}

// Batch holds the lines of exactly one hunk: the ---, +++ and @@ headers
// followed by its body, in input order.
type Batch struct {
	Lines []Line
}

func (b Batch) Headers() []Line {
	if len(b.Lines) < 3 {
		return b.Lines
	}
	return b.Lines[:3]
}

func (b Batch) Body() []Line {
	if len(b.Lines) < 3 {
		return nil
	}
	return b.Lines[3:]
}

// Complete reports whether the batch starts with the header triad in order.
func (b Batch) Complete() bool {
	if len(b.Lines) < 3 {
		return false
	}
	return b.Lines[0].Kind == KindMinusHeader &&
		b.Lines[1].Kind == KindPlusHeader &&
		b.Lines[2].Kind == KindHunkHeader
}

type ScannerState int

const (
	AwaitingMinus ScannerState = iota
	AwaitingPlus
	AwaitingAt
	InHunkBody
)

func (s ScannerState) String() string {
	switch s {
	case AwaitingMinus:
		return "awaiting-minus"
	case AwaitingPlus:
		return "awaiting-plus"
	case AwaitingAt:
		return "awaiting-at"
	case InHunkBody:
		return "in-hunk-body"
	default:
		return "unknown"
	}
}

type WarningKind int

const (
	WarnEmptyLine WarningKind = iota
	WarnExpectedPlus
	WarnExpectedAt
	WarnBadHunkLine
)

func (k WarningKind) Message() string {
	switch k {
	case WarnEmptyLine:
		return "unexpected empty line"
	case WarnExpectedPlus:
		return "expected a +++ line"
	case WarnExpectedAt:
		return "expected a @@ line"
	case WarnBadHunkLine:
		return "unexpected content in hunk body"
	default:
		return "unexpected line"
	}
}

// Warning describes a malformed input line that the scanner dropped.
type Warning struct {
	Kind  WarningKind
	Line  int
	Text  string
	State ScannerState
}

type ScanStats struct {
	Lines    int
	Empty    int
	Dropped  int
	Batched  int
	Warnings int
	Batches  int
}

type FilterStats struct {
	Selected int
	Rejected int
}

type Summary struct {
	Source  string
	Mode    SelectionMode
	Scan    ScanStats
	Filter  FilterStats
	Message string
}
