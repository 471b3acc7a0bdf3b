package tmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type dumpable interface {
	dump(d *dumper)
}

// interface check

var _ []Element = []Element{
	&Root{},
	&Str{},
	&Mod{},
	&Link{},
	&LineBreak{},
	&Span{},
	&Para{},
	&Header{},
	&List{},
	&ListItem{},
	&CodeBlock{},
	&HorizontalRule{},
	&Blank{},
	&IncludeRef{},
}

// dumper writes one node per line, indented by two spaces per level. The
// first write error sticks and silences the rest of the dump.
type dumper struct {
	w     io.Writer
	depth int
	err   error
}

func (d *dumper) line(tag Tag, format string, args ...any) {
	if d.err != nil {
		return
	}
	var sb strings.Builder
	for i := 0; i < d.depth; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(string(tag))
	if format != "" {
		sb.WriteByte(' ')
		fmt.Fprintf(&sb, format, args...)
	}
	sb.WriteByte('\n')
	_, d.err = io.WriteString(d.w, sb.String())
}

func dumpAll[T dumpable](d *dumper, lst []T) {
	d.depth++
	for _, e := range lst {
		e.dump(d)
	}
	d.depth--
}

func (r *Root) dump(d *dumper) {
	d.line(r.Tag(), "")
	if len(r.Meta) > 0 {
		keys := make([]string, 0, len(r.Meta))
		for k := range r.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d.depth++
		for _, k := range keys {
			d.line("Meta", "%s: %v", k, r.Meta[k])
		}
		d.depth--
	}
	dumpAll(d, r.Blocks)
}

func (s *Str) dump(d *dumper) {
	d.line(s.Tag(), "%q", s.Text)
}

func (m *Mod) dump(d *dumper) {
	d.line(m.Tag(), "%s", m.Kind)
	dumpAll(d, m.Inlines)
}

func (l *Link) dump(d *dumper) {
	if l.Alias == "" {
		d.line(l.Tag(), "%q", l.Target)
	} else {
		d.line(l.Tag(), "%q -> %q", l.Alias, l.Target)
	}
}

func (b *LineBreak) dump(d *dumper) {
	d.line(b.Tag(), "")
}

func (s *Span) dump(d *dumper) {
	d.line(s.Tag(), "")
	dumpAll(d, s.Inlines)
}

func (p *Para) dump(d *dumper) {
	d.line(p.Tag(), "")
	dumpAll(d, p.Inlines)
}

func (h *Header) dump(d *dumper) {
	d.line(h.Tag(), "%d", h.Level)
	dumpAll(d, h.Inlines)
}

func (l *List) dump(d *dumper) {
	d.line(l.Tag(), "%s", l.Kind)
	dumpAll(d, l.Items)
}

func (i *ListItem) dump(d *dumper) {
	if i.Check == NoCheck {
		d.line(i.Tag(), "")
	} else {
		d.line(i.Tag(), "%s", i.Check)
	}
	dumpAll(d, i.Blocks)
}

func (b *CodeBlock) dump(d *dumper) {
	d.line(b.Tag(), "%s %q", b.Lang, b.Text)
}

func (r *HorizontalRule) dump(d *dumper) {
	d.line(r.Tag(), "")
}

func (b *Blank) dump(d *dumper) {
	d.line(b.Tag(), "")
}

func (r *IncludeRef) dump(d *dumper) {
	d.line(r.Tag(), "%q", r.Path)
}

// Dump writes an indented, human readable rendition of elt and all its
// descendants to w.
//
// Example:
//
//	if err := tmd.Dump(os.Stdout, doc); err != nil {
//		log.Fatal(err)
//	}
func Dump[E Element](w io.Writer, elt E) error {
	d := &dumper{w: w}
	elt.dump(d)
	return d.err
}

func (r *Root) String() string {
	var sb strings.Builder
	_ = Dump(&sb, r)
	return sb.String()
}
