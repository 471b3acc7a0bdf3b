package tmd

// modSet is the set of modifier kinds open along one branch of the
// resolution. It is passed by value, so sibling branches never see each
// other's state.
type modSet uint8

func (s modSet) has(k ModKind) bool     { return s&(1<<k) != 0 }
func (s modSet) with(k ModKind) modSet { return s | 1<<k }

// Resolve turns a run of inline tokens into a span tree.
//
// A modifier flag whose kind is not open starts a nested Mod that lasts
// until a flag of any kind open along the current branch shows up; that flag
// closes the innermost Mod and is consumed. A kind can therefore never nest
// inside itself. Modifiers still open at the end of input are closed
// silently.
func Resolve(tokens []Token) *Span {
	inlines, _ := resolve(tokens, 0, 0)
	return &Span{Inlines: inlines}
}

// resolve collects the inlines of tokens[pos:] and returns them together
// with the position of the closing flag, or len(tokens).
func resolve(tokens []Token, pos int, open modSet) ([]Inline, int) {
	var inlines []Inline
	for pos < len(tokens) {
		switch t := tokens[pos].(type) {
		case *TextToken:
			inlines = append(inlines, &Str{Text: t.Text})
		case *BreakToken:
			inlines = append(inlines, LB)
		case *LinkToken:
			inlines = append(inlines, &Link{Alias: t.Alias, Target: t.Target})
		case *ModToken:
			if open.has(t.Kind) {
				return inlines, pos
			}
			var children []Inline
			children, pos = resolve(tokens, pos+1, open.with(t.Kind))
			inlines = append(inlines, &Mod{Kind: t.Kind, Inlines: children})
			if pos >= len(tokens) {
				return inlines, pos
			}
		}
		pos++
	}
	return inlines, pos
}

// Flatten turns inlines back into tokens. Resolving the result yields an
// equivalent tree.
func Flatten(inlines []Inline) []Token {
	var tokens []Token
	for _, i := range inlines {
		tokens = flatten(tokens, i)
	}
	return tokens
}

func flatten(tokens []Token, i Inline) []Token {
	switch i := i.(type) {
	case *Str:
		tokens = append(tokens, &TextToken{Text: i.Text})
	case *LineBreak:
		tokens = append(tokens, BT)
	case *Link:
		tokens = append(tokens, &LinkToken{Alias: i.Alias, Target: i.Target})
	case *Mod:
		tokens = append(tokens, &ModToken{Kind: i.Kind})
		for _, c := range i.Inlines {
			tokens = flatten(tokens, c)
		}
		tokens = append(tokens, &ModToken{Kind: i.Kind})
	case *Span:
		for _, c := range i.Inlines {
			tokens = flatten(tokens, c)
		}
	}
	return tokens
}
