package tmd

// listScope is the context of a call assembling the items of one list.
// counter distinguishes the call collecting the list's items (1) from the
// call collecting the blocks of a sibling item (2); a sibling item never
// absorbs an item at its own indentation.
type listScope struct {
	kind    ListKind
	counter int
}

// ends reports whether an event at indent leaves a list scope governed by
// governing. Outside a list scope nothing ends here.
func (s *listScope) ends(indent, governing int) bool {
	return s != nil && indent <= governing
}

type assembler struct {
	conf  Conf
	depth int
}

// Assemble builds the document tree for a stream of block events.
//
// Indentation decides nesting: a node opened at indentation d only absorbs
// the events following it at an indentation greater than d. Indentation is
// the raw count of leading spaces.
func Assemble(events []Event, conf Conf) (*Root, error) {
	a := &assembler{conf: conf.withDefaults()}
	root := &Root{}
	for pos := 0; pos < len(events); {
		blk, next, err := a.block(events, pos, 0, nil)
		if err != nil {
			return nil, err
		}
		if blk == nil {
			return nil, structuralf("%s at event %d does not fit into the document scope",
				events[pos].Tag(), pos)
		}
		root.Blocks = append(root.Blocks, blk)
		pos = next
	}
	tracer().Debugf("assembled %d events into %d blocks", len(events), len(root.Blocks))
	return root, nil
}

// block assembles the node starting at events[pos] within the scope given by
// the governing indentation and the list scope. A nil block means the event
// does not belong to the scope; it is left for the caller and the returned
// position is pos.
func (a *assembler) block(events []Event, pos, governing int, scope *listScope) (Block, int, error) {
	switch ev := events[pos].(type) {
	case *HeadingEvent:
		if scope.ends(ev.Indent, governing) {
			return nil, pos, nil
		}
		return &Header{Level: ev.Level, Inlines: Resolve(ev.Tokens).Inlines}, pos + 1, nil
	case *LineEvent:
		if scope != nil && ev.Indent <= governing || scope == nil && ev.Indent != governing {
			return nil, pos, nil
		}
		return a.paragraph(events, pos)
	case *ItemEvent:
		return a.list(events, pos, governing, scope)
	case *CodeEvent:
		if scope.ends(ev.Indent, governing) {
			return nil, pos, nil
		}
		return &CodeBlock{Lang: ev.Lang, Text: ev.Text}, pos + 1, nil
	case *IncludeEvent:
		if scope.ends(ev.Indent, governing) {
			return nil, pos, nil
		}
		return &IncludeRef{Path: ev.Path}, pos + 1, nil
	case *RuleEvent:
		if scope.ends(0, governing) {
			return nil, pos, nil
		}
		return HR, pos + 1, nil
	case *BlankEvent:
		return BL, pos + 1, nil
	case nil:
		return nil, pos, structuralf("nil event at %d", pos)
	default:
		return nil, pos, unsupportedf("event %T at %d", ev, pos)
	}
}

// paragraph merges the text line at pos with all directly following lines of
// the same indentation, separated by a single space.
func (a *assembler) paragraph(events []Event, pos int) (Block, int, error) {
	first := events[pos].(*LineEvent)
	tokens := append([]Token(nil), first.Tokens...)
	next := pos + 1
	for ; next < len(events); next++ {
		line, ok := events[next].(*LineEvent)
		if !ok || line.Indent != first.Indent {
			break
		}
		tokens = append(tokens, &TextToken{Text: " "})
		tokens = append(tokens, line.Tokens...)
	}
	return &Para{Inlines: Resolve(tokens).Inlines}, next, nil
}

// list handles a list item event. Within an enclosing list of the same kind
// and indentation it returns the item as a *ListItem for the caller to add;
// otherwise it opens a new *List.
func (a *assembler) list(events []Event, pos, governing int, scope *listScope) (Block, int, error) {
	ev := events[pos].(*ItemEvent)
	if err := ev.Kind.validate(); err != nil {
		return nil, pos, err
	}
	sibling := false
	if scope != nil {
		if ev.Indent < governing {
			return nil, pos, nil
		}
		if ev.Indent == governing {
			if scope.counter > 1 || ev.Kind != scope.kind {
				return nil, pos, nil
			}
			sibling = true
		}
	}
	if a.depth >= a.conf.MaxDepth {
		return nil, pos, structuralf("list nesting exceeds %d levels at event %d", a.conf.MaxDepth, pos)
	}
	a.depth++
	defer func() { a.depth-- }()

	if ev.Content == nil {
		return nil, pos, structuralf("list item without content at event %d", pos)
	}
	first, _, err := a.block([]Event{ev.Content}, 0, 0, nil)
	if err != nil {
		return nil, pos, err
	}
	if first == nil {
		return nil, pos, structuralf("%s cannot start a list item at event %d", ev.Content.Tag(), pos)
	}
	blocks := []Block{first}

	inner := &listScope{kind: ev.Kind, counter: 1}
	if sibling {
		inner.counter = scope.counter + 1
	}
	next := pos + 1
	for next < len(events) {
		blk, n, err := a.block(events, next, ev.Indent, inner)
		if err != nil {
			return nil, pos, err
		}
		if blk == nil {
			break
		}
		blocks = append(blocks, blk)
		next = n
	}

	if sibling {
		return &ListItem{Check: ev.Check, Blocks: blocks}, next, nil
	}
	tracer().Debugf("%s list at indent %d spans events %d..%d", ev.Kind, ev.Indent, pos, next-1)
	return newList(ev.Kind, ev.Check, blocks), next, nil
}

// newList builds a list from the blocks collected for its first item. Blocks
// up to the first sibling item belong to the first item, blocks after a
// sibling to that sibling.
func newList(kind ListKind, check Check, blocks []Block) *List {
	last := &ListItem{Check: check}
	list := &List{Kind: kind, Items: []*ListItem{last}}
	for _, b := range blocks {
		if item, ok := b.(*ListItem); ok {
			list.Items = append(list.Items, item)
			last = item
		} else {
			last.Blocks = append(last.Blocks, b)
		}
	}
	return list
}
