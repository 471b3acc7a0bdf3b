package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	tmd "github.com/growler/go-tmd"
)

// Options control the HTML output.
type Options struct {
	Standalone bool   // wrap the output in a complete HTML document
	Title      string // document title, defaults to the "title" front matter entry
	Head       string // HTML fragment added to the head of standalone documents
	HeadingIDs bool   // give headings an id derived from their text
}

// Render writes root as HTML to w.
func Render(w io.Writer, root *tmd.Root, opts Options) error {
	r := newRenderer(opts)
	tracer().Debugf("rendering %d blocks, standalone=%v", len(root.Blocks), opts.Standalone)
	body := &xhtml.Node{Type: xhtml.ElementNode, DataAtom: atom.Body, Data: "body"}
	if err := r.blocks(body, root.Blocks); err != nil {
		return err
	}
	if !opts.Standalone {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := xhtml.Render(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	doc, err := r.document(root, body)
	if err != nil {
		return err
	}
	return xhtml.Render(w, doc)
}

// RenderString renders root to a string.
func RenderString(root *tmd.Root, opts Options) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, root, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type renderer struct {
	opts       Options
	checkboxes int
	slugs      map[string]int
	fold       transform.Transformer // strips diacritics for heading ids
}

func newRenderer(opts Options) *renderer {
	return &renderer{
		opts:  opts,
		slugs: make(map[string]int),
		fold:  transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

func (r *renderer) document(root *tmd.Root, body *xhtml.Node) (*xhtml.Node, error) {
	head := element(atom.Head)
	title := r.opts.Title
	if title == "" {
		title = root.Title()
	}
	t := element(atom.Title)
	t.AppendChild(text(title))
	appendLine(head, t)
	if r.opts.Head != "" {
		nodes, err := xhtml.ParseFragment(strings.NewReader(r.opts.Head), element(atom.Head))
		if err != nil {
			return nil, errors.Wrap(err, "parsing head fragment")
		}
		for _, n := range nodes {
			head.AppendChild(n)
		}
	}
	page := element(atom.Html)
	appendLine(page, head)
	appendLine(page, body)
	doc := &xhtml.Node{Type: xhtml.DocumentNode}
	doc.AppendChild(&xhtml.Node{Type: xhtml.DoctypeNode, Data: "html"})
	doc.AppendChild(text("\n"))
	appendLine(doc, page)
	return doc, nil
}

func (r *renderer) blocks(parent *xhtml.Node, blocks []tmd.Block) error {
	for _, b := range blocks {
		n, err := r.block(b)
		if err != nil {
			return err
		}
		if n != nil {
			appendLine(parent, n)
		}
	}
	return nil
}

// block renders one block. Blank lines render to nothing.
func (r *renderer) block(b tmd.Block) (*xhtml.Node, error) {
	switch b := b.(type) {
	case *tmd.Para:
		p := element(atom.P)
		r.inlines(p, b.Inlines)
		return p, nil
	case *tmd.Header:
		return r.header(b)
	case *tmd.List:
		return r.list(b)
	case *tmd.ListItem:
		return r.item(b)
	case *tmd.CodeBlock:
		return code(b), nil
	case *tmd.HorizontalRule:
		return element(atom.Hr), nil
	case *tmd.Blank:
		return nil, nil
	case *tmd.IncludeRef:
		return nil, errors.Wrapf(tmd.ErrUnresolvedInclude, "@[%s]", b.Path)
	default:
		return nil, errors.Wrapf(tmd.ErrUnsupported, "block %T", b)
	}
}

var headings = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (r *renderer) header(h *tmd.Header) (*xhtml.Node, error) {
	if h.Level < 1 || h.Level > len(headings) {
		return nil, errors.Wrapf(tmd.ErrUnsupported, "heading level %d", h.Level)
	}
	n := element(headings[h.Level-1])
	if r.opts.HeadingIDs {
		n.Attr = append(n.Attr, attr("id", r.slug(h.Title())))
	}
	r.inlines(n, h.Inlines)
	return n, nil
}

// slug derives a unique element id from a heading title.
func (r *renderer) slug(title string) string {
	folded, _, err := transform.String(r.fold, title)
	if err != nil {
		folded = title
	}
	var sb strings.Builder
	gap := false
	for _, c := range strings.ToLower(folded) {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			gap = true
			continue
		}
		if gap && sb.Len() > 0 {
			sb.WriteByte('-')
		}
		gap = false
		sb.WriteRune(c)
	}
	id := sb.String()
	if id == "" {
		id = "section"
	}
	n := r.slugs[id]
	r.slugs[id] = n + 1
	if n > 0 {
		id = fmt.Sprintf("%s-%d", id, n)
	}
	return id
}

var orderedTypes = map[tmd.ListStyle]string{
	tmd.Decimal:    "1",
	tmd.LowerAlpha: "a",
	tmd.UpperAlpha: "A",
	tmd.LowerRoman: "i",
	tmd.UpperRoman: "I",
}

func (r *renderer) list(l *tmd.List) (*xhtml.Node, error) {
	var n *xhtml.Node
	if l.Kind.Ordered() {
		typ, ok := orderedTypes[l.Kind.Style]
		if !ok {
			return nil, errors.Wrapf(tmd.ErrUnsupported, "list style %s", l.Kind.Style)
		}
		n = element(atom.Ol, attr("type", typ))
		if l.Kind.Start != 1 {
			n.Attr = append(n.Attr, attr("start", strconv.Itoa(l.Kind.Start)))
		}
	} else {
		n = element(atom.Ul)
		if l.Kind.Bullet != tmd.BulletDefault {
			n.Attr = append(n.Attr, attr("style", "list-style-type:"+l.Kind.Bullet.String()))
		}
	}
	n.AppendChild(text("\n"))
	for _, item := range l.Items {
		li, err := r.item(item)
		if err != nil {
			return nil, err
		}
		appendLine(n, li)
	}
	return n, nil
}

// item renders a list item. A paragraph or heading opening a checklist item
// becomes the label of its checkbox.
func (r *renderer) item(item *tmd.ListItem) (*xhtml.Node, error) {
	li := element(atom.Li)
	blocks := item.Blocks
	if item.Check != tmd.NoCheck {
		r.checkboxes++
		id := "checkbox" + strconv.Itoa(r.checkboxes)
		input := element(atom.Input, attr("type", "checkbox"), attr("id", id))
		if item.Check == tmd.Checked {
			input.Attr = append(input.Attr, attr("checked", "checked"))
		}
		label := element(atom.Label, attr("for", id))
		if len(blocks) > 0 {
			switch b := blocks[0].(type) {
			case *tmd.Para:
				r.inlines(label, b.Inlines)
				blocks = blocks[1:]
			case *tmd.Header:
				h, err := r.header(b)
				if err != nil {
					return nil, err
				}
				label.AppendChild(h)
				blocks = blocks[1:]
			}
		}
		li.AppendChild(input)
		appendLine(li, label)
	} else {
		li.AppendChild(text("\n"))
	}
	if err := r.blocks(li, blocks); err != nil {
		return nil, err
	}
	return li, nil
}

func code(b *tmd.CodeBlock) *xhtml.Node {
	switch b.Lang {
	case tmd.LangKaTeX:
		div := element(atom.Div, attr("class", "katex"))
		div.AppendChild(text("\n$$\n" + b.Text + "$$\n"))
		return div
	case tmd.LangMermaid:
		div := element(atom.Div, attr("class", "mermaid"))
		div.AppendChild(text("\n" + b.Text))
		return div
	}
	c := element(atom.Code)
	if b.Lang != "" {
		c.Attr = append(c.Attr, attr("class", "language-"+string(b.Lang)))
	}
	c.AppendChild(text(b.Text))
	pre := element(atom.Pre)
	pre.AppendChild(c)
	return pre
}

var modifiers = map[tmd.ModKind]atom.Atom{
	tmd.Bold:    atom.B,
	tmd.Cursive: atom.I,
	tmd.Strike:  atom.Del,
	tmd.Code:    atom.Code,
}

func (r *renderer) inlines(parent *xhtml.Node, inlines []tmd.Inline) {
	for _, i := range inlines {
		switch i := i.(type) {
		case *tmd.Str:
			parent.AppendChild(text(i.Text))
		case *tmd.Mod:
			a, ok := modifiers[i.Kind]
			if !ok {
				tracer().Errorf("no HTML element for modifier %s", i.Kind)
				a = atom.Span
			}
			n := element(a)
			r.inlines(n, i.Inlines)
			parent.AppendChild(n)
		case *tmd.Link:
			a := element(atom.A, attr("href", i.Target))
			a.AppendChild(text(i.Label()))
			parent.AppendChild(a)
		case *tmd.LineBreak:
			parent.AppendChild(element(atom.Br))
		case *tmd.Span:
			r.inlines(parent, i.Inlines)
		}
	}
}

func element(a atom.Atom, attrs ...xhtml.Attribute) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}

func attr(key, val string) xhtml.Attribute {
	return xhtml.Attribute{Key: key, Val: val}
}

// appendLine appends n followed by a line feed.
func appendLine(parent, n *xhtml.Node) {
	parent.AppendChild(n)
	parent.AppendChild(text("\n"))
}
