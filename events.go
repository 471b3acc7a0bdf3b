package tmd

// Block event, the unit the scanner classifies source lines into.
type Event interface {
	Tagged
	event()
}

// Heading line
type HeadingEvent struct {
	Indent int
	Level  int
	Tokens []Token
}

const HeadingEventTag = Tag("HeadingEvent")

func (e *HeadingEvent) Tag() Tag { return HeadingEventTag }
func (e *HeadingEvent) event()   {}

// Text line
type LineEvent struct {
	Indent int
	Tokens []Token
}

const LineEventTag = Tag("LineEvent")

func (e *LineEvent) Tag() Tag { return LineEventTag }
func (e *LineEvent) event()   {}

// Start of a list item. Content is the rest of the marker line, either a
// *LineEvent with indent 0 or a *CodeEvent.
type ItemEvent struct {
	Indent  int
	Kind    ListKind
	Check   Check
	Content Event
}

const ItemEventTag = Tag("ItemEvent")

func (e *ItemEvent) Tag() Tag { return ItemEventTag }
func (e *ItemEvent) event()   {}

// Fenced code block
type CodeEvent struct {
	Indent int
	Lang   Lang
	Text   string
}

const CodeEventTag = Tag("CodeEvent")

func (e *CodeEvent) Tag() Tag { return CodeEventTag }
func (e *CodeEvent) event()   {}

// Include line
type IncludeEvent struct {
	Indent int
	Path   string
}

const IncludeEventTag = Tag("IncludeEvent")

func (e *IncludeEvent) Tag() Tag { return IncludeEventTag }
func (e *IncludeEvent) event()   {}

var HRE = &RuleEvent{}

// Horizontal rule line. Rules are only recognized at column 0.
type RuleEvent struct{}

const RuleEventTag = Tag("RuleEvent")

func (*RuleEvent) Tag() Tag { return RuleEventTag }
func (*RuleEvent) event()   {}

var BLE = &BlankEvent{}

// Blank line. Blank lines carry no indentation.
type BlankEvent struct{}

const BlankEventTag = Tag("BlankEvent")

func (*BlankEvent) Tag() Tag { return BlankEventTag }
func (*BlankEvent) event()   {}

// ----------- inline tokens -------------

// Inline token, a classified character run of one text line.
type Token interface {
	token()
}

// Plain text run
type TextToken struct {
	Text string
}

func (*TextToken) token() {}

// Modifier flag, opens or closes a modifier span
type ModToken struct {
	Kind ModKind
}

func (*ModToken) token() {}

// Link
type LinkToken struct {
	Alias  string
	Target string
}

func (*LinkToken) token() {}

var BT = &BreakToken{}

// Line break
type BreakToken struct{}

func (*BreakToken) token() {}
