// Package tmd assembles documents written in TurboMD, a small indentation
// based markup language, into a document tree.
//
// Source text is first classified into a flat list of block events (see
// [Scan]), which [Assemble] then folds into a nested tree of blocks and
// inline spans. The tree is plain data; renderers such as the html
// subpackage walk it to produce output.
package tmd

import (
	"fmt"
	"strings"
)

// A convenience function to check if an element is of a particular type.
//
// Example:
//
//	if tmd.Is[tmd.Str](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(*P)
	return ok
}

// Document tree element interface
type Element interface {
	dumpable
	element()
}

type inlinesContainer interface {
	inlines() []Inline
}

type blocksContainer interface {
	blocks() []Block
}

// Document tree object tag
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// Document tree object with tag
type Tagged interface {
	Tag() Tag
}

// Inline element
type Inline interface {
	Element
	Tagged
	inline()
}

// Block element
type Block interface {
	Element
	Tagged
	block()
}

// Document metadata, taken from the front matter.
type Meta map[string]any

// Document root
type Root struct {
	Meta   Meta
	Blocks []Block
}

const RootTag = Tag("Root")

func (r *Root) Tag() Tag        { return RootTag }
func (r *Root) element()        {}
func (r *Root) blocks() []Block { return r.Blocks }

// Returns the document title from the metadata, if there is one.
func (r *Root) Title() string {
	if r.Meta == nil {
		return ""
	}
	if t, ok := r.Meta["title"].(string); ok {
		return t
	}
	return ""
}

// ----------- inlines -------------

// Text (string)
type Str struct {
	Text string
}

const StrTag = Tag("Str")

func (s *Str) Tag() Tag { return StrTag }
func (s *Str) inline()  {}
func (s *Str) element() {}

// Text modifier kind
type ModKind uint8

const (
	Bold ModKind = iota
	Cursive
	Strike
	Code
)

var modKinds = [...]struct {
	name   string
	marker byte
}{
	Bold:    {"Bold", '*'},
	Cursive: {"Cursive", '_'},
	Strike:  {"Strike", '~'},
	Code:    {"Code", '`'},
}

func (k ModKind) String() string {
	if int(k) < len(modKinds) {
		return modKinds[k].name
	}
	return fmt.Sprintf("ModKind(%d)", int(k))
}

// Marker returns the source character toggling the modifier.
func (k ModKind) Marker() byte {
	if int(k) < len(modKinds) {
		return modKinds[k].marker
	}
	return 0
}

// Modified text (list of inlines)
type Mod struct {
	Kind    ModKind
	Inlines []Inline
}

const ModTag = Tag("Mod")

func (m *Mod) Tag() Tag          { return ModTag }
func (m *Mod) inlines() []Inline { return m.Inlines }
func (m *Mod) inline()           {}
func (m *Mod) element()          {}

// Hyperlink. The alias is plain text, an empty alias means the target is
// shown instead.
type Link struct {
	Alias  string
	Target string
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag { return LinkTag }
func (l *Link) inline()  {}
func (l *Link) element() {}

// Label returns the text a link is displayed with.
func (l *Link) Label() string {
	if l.Alias != "" {
		return l.Alias
	}
	return l.Target
}

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag { return LineBreakTag }
func (*LineBreak) inline()  {}
func (*LineBreak) element() {}

// Inline container, the result of resolving one run of inline tokens.
type Span struct {
	Inlines []Inline
}

const SpanTag = Tag("Span")

func (s *Span) Tag() Tag          { return SpanTag }
func (s *Span) inlines() []Inline { return s.Inlines }
func (s *Span) inline()           {}
func (s *Span) element()          {}

// Text returns the plain text of the span.
func (s *Span) Text() string {
	return plainText(s)
}

// ----------- blocks -------------

// Paragraph (list of inlines)
type Para struct {
	Inlines []Inline
}

const ParaTag = Tag("Para")

func (p *Para) Tag() Tag          { return ParaTag }
func (p *Para) inlines() []Inline { return p.Inlines }
func (p *Para) block()            {}
func (p *Para) element()          {}

// Text returns the plain text of the paragraph.
func (p *Para) Text() string {
	return plainText(p)
}

// Header - level (integer) and text (inlines)
type Header struct {
	Level   int
	Inlines []Inline
}

const HeaderTag = Tag("Header")

func (h *Header) Tag() Tag          { return HeaderTag }
func (h *Header) inlines() []Inline { return h.Inlines }
func (h *Header) block()            {}
func (h *Header) element()          {}

func (h *Header) Title() string {
	return plainText(h)
}

func plainText(e Element) string {
	var sb strings.Builder
	Query(e, func(i Inline) WalkResult {
		switch i := i.(type) {
		case *Str:
			sb.WriteString(i.Text)
		case *Link:
			sb.WriteString(i.Label())
		case *LineBreak:
			sb.WriteByte('\n')
		}
		return WalkContinue
	})
	return sb.String()
}

// Checkbox state of a list item
type Check uint8

const (
	NoCheck Check = iota
	Unchecked
	Checked
)

func (c Check) String() string {
	switch c {
	case Unchecked:
		return "[ ]"
	case Checked:
		return "[x]"
	default:
		return ""
	}
}

// List (kind and a list of items)
type List struct {
	Kind  ListKind
	Items []*ListItem
}

const ListTag = Tag("List")

func (l *List) Tag() Tag { return ListTag }
func (l *List) block()   {}
func (l *List) element() {}

// List item (checkbox state and a list of blocks). List items only ever
// appear in List.Items.
type ListItem struct {
	Check  Check
	Blocks []Block
}

const ListItemTag = Tag("ListItem")

func (i *ListItem) Tag() Tag        { return ListItemTag }
func (i *ListItem) blocks() []Block { return i.Blocks }
func (i *ListItem) block()          {}
func (i *ListItem) element()        {}

// Code block (literal)
type CodeBlock struct {
	Lang Lang
	Text string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) block()   {}
func (b *CodeBlock) element() {}

var HR = &HorizontalRule{}

// Horizontal rule
type HorizontalRule struct{}

const HorizontalRuleTag = Tag("HorizontalRule")

func (*HorizontalRule) Tag() Tag { return HorizontalRuleTag }
func (*HorizontalRule) block()   {}
func (*HorizontalRule) element() {}

var BL = &Blank{}

// Blank line
type Blank struct{}

const BlankTag = Tag("Blank")

func (*Blank) Tag() Tag { return BlankTag }
func (*Blank) block()   {}
func (*Blank) element() {}

// Unresolved reference to another document. Nothing in this module expands
// it; a later pass has to substitute it before rendering.
type IncludeRef struct {
	Path string
}

const IncludeRefTag = Tag("IncludeRef")

func (r *IncludeRef) Tag() Tag { return IncludeRefTag }
func (r *IncludeRef) block()   {}
func (r *IncludeRef) element() {}

// ----------- list kinds -------------

type ListStyle uint8

const (
	Bullet ListStyle = iota
	Decimal
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

var listStyles = [...]string{
	Bullet:     "Bullet",
	Decimal:    "Decimal",
	LowerAlpha: "LowerAlpha",
	UpperAlpha: "UpperAlpha",
	LowerRoman: "LowerRoman",
	UpperRoman: "UpperRoman",
}

func (s ListStyle) String() string {
	if int(s) < len(listStyles) {
		return listStyles[s]
	}
	return fmt.Sprintf("ListStyle(%d)", int(s))
}

// Bullet subtype of unordered lists
type BulletType uint8

const (
	BulletDefault BulletType = iota
	BulletNone
	BulletCircle
	BulletDisc
	BulletSquare
)

var bulletTypes = [...]string{
	BulletDefault: "",
	BulletNone:    "none",
	BulletCircle:  "circle",
	BulletDisc:    "disc",
	BulletSquare:  "square",
}

func (b BulletType) String() string {
	if int(b) < len(bulletTypes) {
		return bulletTypes[b]
	}
	return fmt.Sprintf("BulletType(%d)", int(b))
}

// ParseBulletType maps a bullet name as written in `-{name}` markers.
func ParseBulletType(name string) (BulletType, bool) {
	for i, n := range bulletTypes {
		if n != "" && n == name {
			return BulletType(i), true
		}
	}
	return BulletDefault, false
}

// ListKind identifies a list. Two items belong to the same list only if
// their kinds are equal, which includes the bullet subtype and the start
// index of ordered lists.
type ListKind struct {
	Style  ListStyle
	Bullet BulletType // unordered lists only
	Start  int        // ordered lists only
}

func (k ListKind) Ordered() bool {
	return k.Style != Bullet
}

func (k ListKind) String() string {
	switch {
	case !k.Ordered() && k.Bullet == BulletDefault:
		return k.Style.String()
	case !k.Ordered():
		return k.Style.String() + " " + k.Bullet.String()
	default:
		return fmt.Sprintf("%s %d", k.Style, k.Start)
	}
}

func (k ListKind) validate() error {
	if int(k.Style) >= len(listStyles) {
		return unsupportedf("list style %s", k.Style)
	}
	if int(k.Bullet) >= len(bulletTypes) || (k.Ordered() && k.Bullet != BulletDefault) {
		return unsupportedf("bullet type %s for %s list", k.Bullet, k.Style)
	}
	if !k.Ordered() && k.Start != 0 {
		return unsupportedf("start index %d for unordered list", k.Start)
	}
	return nil
}

// ----------- code languages -------------

// Code block language tag, canonicalized by ParseLang.
type Lang string

const (
	LangTurbo   Lang = "turbo"
	LangKaTeX   Lang = "katex"
	LangMermaid Lang = "mermaid"
	LangRust    Lang = "rust"
	LangNim     Lang = "nim"
	LangPython  Lang = "python"
	LangC       Lang = "c"
	LangCPP     Lang = "cpp"
)

var langAliases = map[string]Lang{
	"math": LangKaTeX,
	"c++":  LangCPP,
	"py":   LangPython,
}

func ParseLang(s string) Lang {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := langAliases[s]; ok {
		return l
	}
	return Lang(s)
}
