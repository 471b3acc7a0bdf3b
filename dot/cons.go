// Package dot provides terse constructors for TurboMD trees and event
// streams, mostly to keep tests and tree rewrites readable.
package dot

import tmd "github.com/growler/go-tmd"

var (
	Continue = tmd.WalkContinue
	Replace  = tmd.WalkReplace
	Skip     = tmd.WalkSkip
	Stop     = tmd.WalkStop
)

func Blocks(b ...tmd.Block) []tmd.Block {
	return b
}

func Inlines(i ...tmd.Inline) []tmd.Inline {
	return i
}

// Document root (list of blocks)
func Doc(b ...tmd.Block) *tmd.Root {
	return &tmd.Root{Blocks: b}
}

// ----------- inlines -------------

// Text (string)
func Str(s string) tmd.Inline {
	return &tmd.Str{Text: s}
}

func Bold(i ...tmd.Inline) *tmd.Mod {
	return &tmd.Mod{Kind: tmd.Bold, Inlines: i}
}

func Cursive(i ...tmd.Inline) *tmd.Mod {
	return &tmd.Mod{Kind: tmd.Cursive, Inlines: i}
}

func Strike(i ...tmd.Inline) *tmd.Mod {
	return &tmd.Mod{Kind: tmd.Strike, Inlines: i}
}

// Inline code. Unlike a code block its content is a list of inlines.
func CodeSpan(i ...tmd.Inline) *tmd.Mod {
	return &tmd.Mod{Kind: tmd.Code, Inlines: i}
}

// Hyperlink. Pass an empty alias to show the target.
func Link(alias, target string) *tmd.Link {
	return &tmd.Link{Alias: alias, Target: target}
}

// Hard line break
func Break() tmd.Inline { return tmd.LB }

func Span(i ...tmd.Inline) *tmd.Span {
	return &tmd.Span{Inlines: i}
}

// ----------- blocks -------------

// Paragraph (list of inlines)
func Para(i ...tmd.Inline) *tmd.Para {
	return &tmd.Para{Inlines: i}
}

// Header. The first argument is the level.
func Header(level int, i ...tmd.Inline) *tmd.Header {
	return &tmd.Header{Level: level, Inlines: i}
}

func List(kind tmd.ListKind, items ...*tmd.ListItem) *tmd.List {
	return &tmd.List{Kind: kind, Items: items}
}

// List item without a checkbox
func Item(b ...tmd.Block) *tmd.ListItem {
	return &tmd.ListItem{Blocks: b}
}

// Checklist item
func Task(done bool, b ...tmd.Block) *tmd.ListItem {
	check := tmd.Unchecked
	if done {
		check = tmd.Checked
	}
	return &tmd.ListItem{Check: check, Blocks: b}
}

// Code block. The first argument is the language.
func Code(lang tmd.Lang, text string) *tmd.CodeBlock {
	return &tmd.CodeBlock{Lang: lang, Text: text}
}

// Horizontal rule
func HR() tmd.Block { return tmd.HR }

// Blank line
func Blank() tmd.Block { return tmd.BL }

func Include(path string) *tmd.IncludeRef {
	return &tmd.IncludeRef{Path: path}
}

// ----------- list kinds -------------

var Bullets = tmd.ListKind{Style: tmd.Bullet}

func BulletsOf(b tmd.BulletType) tmd.ListKind {
	return tmd.ListKind{Style: tmd.Bullet, Bullet: b}
}

// Ordered list kind. The first argument is the style.
func Numbered(style tmd.ListStyle, start int) tmd.ListKind {
	return tmd.ListKind{Style: style, Start: start}
}

// ----------- events -------------

func Events(e ...tmd.Event) []tmd.Event {
	return e
}

func Tokens(t ...tmd.Token) []tmd.Token {
	return t
}

// Text line. The first argument is the indentation.
func Line(indent int, t ...tmd.Token) *tmd.LineEvent {
	return &tmd.LineEvent{Indent: indent, Tokens: t}
}

// Text line holding a single text run.
func Text(indent int, s string) *tmd.LineEvent {
	return Line(indent, T(s))
}

func Heading(indent, level int, t ...tmd.Token) *tmd.HeadingEvent {
	return &tmd.HeadingEvent{Indent: indent, Level: level, Tokens: t}
}

// List item start with plain text content.
func ItemStart(indent int, kind tmd.ListKind, s string) *tmd.ItemEvent {
	return &tmd.ItemEvent{Indent: indent, Kind: kind, Content: Text(0, s)}
}

// Checklist item start with plain text content.
func TaskStart(indent int, kind tmd.ListKind, done bool, s string) *tmd.ItemEvent {
	ev := ItemStart(indent, kind, s)
	ev.Check = tmd.Unchecked
	if done {
		ev.Check = tmd.Checked
	}
	return ev
}

func Fence(indent int, lang tmd.Lang, text string) *tmd.CodeEvent {
	return &tmd.CodeEvent{Indent: indent, Lang: lang, Text: text}
}

func IncludeLine(indent int, path string) *tmd.IncludeEvent {
	return &tmd.IncludeEvent{Indent: indent, Path: path}
}

func Rule() tmd.Event { return tmd.HRE }

func BlankLine() tmd.Event { return tmd.BLE }

// ----------- tokens -------------

// Text run
func T(s string) tmd.Token {
	return &tmd.TextToken{Text: s}
}

// Modifier flag
func M(k tmd.ModKind) tmd.Token {
	return &tmd.ModToken{Kind: k}
}

func L(alias, target string) tmd.Token {
	return &tmd.LinkToken{Alias: alias, Target: target}
}

func BR() tmd.Token { return tmd.BT }
