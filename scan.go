package tmd

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Line scanner classifying TurboMD source into block events.
//
// Every physical line yields at most one event. The exceptions are code
// fences, whose body lines are consumed verbatim, and lines ending in a
// backslash, which continue on the next physical line.

type scanner struct {
	src  []byte             // source text
	pos  int                // next unread byte
	line int                // number of the last line read, 1-based
	runs map[int]orderedRun // open ordered lists by indentation
}

// orderedRun is a sequence of ordered items at one indentation.
type orderedRun struct {
	kind ListKind // kind shared by all items of the run
	last int      // number of the last item
}

// Scan classifies src into block events.
//
// The items of an ordered list share one ListKind: an item numbered like the
// previous item at its indentation, or one higher, continues that list and
// carries the Start of its first item.
func Scan(src []byte) ([]Event, error) {
	s := &scanner{src: bytes.TrimPrefix(src, []byte("\ufeff")), runs: make(map[int]orderedRun)}
	var events []Event
	for {
		line, ok := s.readLine()
		if !ok {
			break
		}
		ev, err := s.event(line)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	tracer().Debugf("scanned %d lines into %d events", s.line, len(events))
	return events, nil
}

func (s *scanner) readLine() (string, bool) {
	if s.pos >= len(s.src) {
		return "", false
	}
	var line []byte
	if end := bytes.IndexByte(s.src[s.pos:], '\n'); end >= 0 {
		line = s.src[s.pos : s.pos+end]
		s.pos += end + 1
	} else {
		line = s.src[s.pos:]
		s.pos = len(s.src)
	}
	s.line++
	return string(bytes.TrimSuffix(line, []byte{'\r'})), true
}

func (s *scanner) event(line string) (Event, error) {
	if strings.TrimSpace(line) == "" {
		return BLE, nil
	}
	rest := strings.TrimLeft(line, " ")
	indent := len(line) - len(rest)
	switch {
	case indent == 0 && isRule(rest):
		s.closeRuns(0)
		return HRE, nil
	case rest[0] != '#' && !isFence(rest) && !isInclude(rest):
		kind, n, ok, err := marker(rest)
		if err != nil {
			return nil, &PosError{Line: s.line, Err: err}
		}
		if ok {
			s.closeRuns(indent + 1)
			return s.item(indent, s.number(indent, kind), rest[n:])
		}
	}
	s.closeRuns(indent)
	switch {
	case rest[0] == '#':
		level := len(rest) - len(strings.TrimLeft(rest, "#"))
		text := strings.TrimPrefix(rest[level:], " ")
		return &HeadingEvent{Indent: indent, Level: level, Tokens: s.inline(text)}, nil
	case isFence(rest):
		return s.code(indent, rest)
	case isInclude(rest):
		rest = strings.TrimRight(rest, " \t")
		return &IncludeEvent{Indent: indent, Path: rest[2 : len(rest)-1]}, nil
	}
	return &LineEvent{Indent: indent, Tokens: s.inline(rest)}, nil
}

// closeRuns ends the ordered runs at indentation indent and deeper.
func (s *scanner) closeRuns(indent int) {
	for i := range s.runs {
		if i >= indent {
			delete(s.runs, i)
		}
	}
}

// number gives an ordered item the kind of the run it continues, or opens a
// new run. kind.Start holds the item's own number on entry. A single letter
// that reads as both a letter and a roman numeral takes the reading that
// continues the run.
func (s *scanner) number(indent int, kind ListKind) ListKind {
	if !kind.Ordered() {
		delete(s.runs, indent)
		return kind
	}
	run, ok := s.runs[indent]
	continues := func(k ListKind) bool {
		return ok && k.Style == run.kind.Style && (k.Start == run.last || k.Start == run.last+1)
	}
	if alt, isAlt := otherReading(kind); isAlt && !continues(kind) && continues(alt) {
		kind = alt
	}
	if continues(kind) {
		run.last = kind.Start
		s.runs[indent] = run
		return run.kind
	}
	s.runs[indent] = orderedRun{kind: kind, last: kind.Start}
	return kind
}

func isRule(s string) bool {
	s = strings.TrimRight(s, " \t")
	return len(s) >= 3 && strings.Trim(s, "-") == ""
}

func isFence(s string) bool {
	return strings.HasPrefix(s, ":::") && strings.TrimSpace(s[3:]) != ""
}

func isInclude(s string) bool {
	s = strings.TrimRight(s, " \t")
	return strings.HasPrefix(s, "@[") && strings.HasSuffix(s, "]")
}

// code reads a fenced code block whose opening line is fence. The body is
// kept verbatim, one "\n" terminated line per source line.
func (s *scanner) code(indent int, fence string) (Event, error) {
	start := s.line
	lang := ParseLang(fence[3:])
	var body strings.Builder
	for {
		line, ok := s.readLine()
		if !ok {
			return nil, &PosError{Line: start, Err: errors.Wrapf(ErrUnterminated, "%s code block", lang)}
		}
		if strings.HasPrefix(strings.TrimLeft(line, " "), ":::") {
			break
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	return &CodeEvent{Indent: indent, Lang: lang, Text: body.String()}, nil
}

func (s *scanner) item(indent int, kind ListKind, rest string) (Event, error) {
	ev := &ItemEvent{Indent: indent, Kind: kind}
	switch {
	case strings.HasPrefix(rest, "[ ]"):
		ev.Check = Unchecked
	case strings.HasPrefix(rest, "[x]"), strings.HasPrefix(rest, "[X]"):
		ev.Check = Checked
	}
	if ev.Check != NoCheck {
		rest = strings.TrimPrefix(rest[3:], " ")
	}
	if isFence(rest) {
		content, err := s.code(0, rest)
		if err != nil {
			return nil, err
		}
		ev.Content = content
	} else {
		ev.Content = &LineEvent{Tokens: s.inline(rest)}
	}
	return ev, nil
}

// marker recognizes a list item marker at the start of s and returns the
// list kind and the length of the marker including the following space.
// The Start of an ordered kind is the item's own number.
func marker(s string) (ListKind, int, bool, error) {
	// a marker is followed by a space or ends the line
	end := func(n int) (int, bool) {
		switch {
		case n == len(s):
			return n, true
		case s[n] == ' ':
			return n + 1, true
		}
		return 0, false
	}
	switch c := s[0]; {
	case c == '-':
		if len(s) > 1 && s[1] == '{' {
			rb := strings.IndexByte(s, '}')
			if rb < 0 {
				return ListKind{}, 0, false, nil
			}
			n, ok := end(rb + 1)
			if !ok {
				return ListKind{}, 0, false, nil
			}
			name := s[2:rb]
			bullet, known := ParseBulletType(name)
			if !known {
				return ListKind{}, 0, false, unsupportedf("bullet type %q", name)
			}
			return ListKind{Style: Bullet, Bullet: bullet}, n, true, nil
		}
		n, ok := end(1)
		return ListKind{Style: Bullet}, n, ok, nil
	case c >= '0' && c <= '9':
		digits := len(s) - len(strings.TrimLeft(s, "0123456789"))
		if digits == len(s) || s[digits] != '.' {
			break
		}
		start, err := strconv.Atoi(s[:digits])
		if err != nil {
			break
		}
		if n, ok := end(digits + 1); ok {
			return ListKind{Style: Decimal, Start: start}, n, true, nil
		}
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		dot := strings.IndexByte(s, '.')
		if dot < 1 {
			break
		}
		n, ok := end(dot + 1)
		if !ok {
			break
		}
		word := s[:dot]
		upper := c < 'a'
		if v, ok := romanValue(word); ok && (len(word) > 1 || c == 'i' || c == 'I') {
			if upper {
				return ListKind{Style: UpperRoman, Start: v}, n, true, nil
			}
			return ListKind{Style: LowerRoman, Start: v}, n, true, nil
		}
		if len(word) > 1 {
			break
		}
		if upper {
			return ListKind{Style: UpperAlpha, Start: int(c-'A') + 1}, n, true, nil
		}
		return ListKind{Style: LowerAlpha, Start: int(c-'a') + 1}, n, true, nil
	}
	return ListKind{}, 0, false, nil
}

var romanNumerals = []struct {
	value   int
	numeral string
}{{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"}}

// roman formats v in lower case roman numerals.
func roman(v int) string {
	var sb strings.Builder
	for _, r := range romanNumerals {
		for ; v >= r.value; v -= r.value {
			sb.WriteString(r.numeral)
		}
	}
	return sb.String()
}

// romanValue parses a roman numeral below 40 in canonical form, written in
// either case.
func romanValue(s string) (int, bool) {
	lower := strings.ToLower(s)
	if s != lower && s != strings.ToUpper(s) {
		return 0, false
	}
	digit := func(c byte) int {
		switch c {
		case 'i':
			return 1
		case 'v':
			return 5
		case 'x':
			return 10
		}
		return 0
	}
	v := 0
	for i := 0; i < len(lower); i++ {
		d := digit(lower[i])
		switch {
		case d == 0:
			return 0, false
		case i+1 < len(lower) && d < digit(lower[i+1]):
			v -= d
		default:
			v += d
		}
	}
	if v <= 0 || v >= 40 || roman(v) != lower {
		return 0, false
	}
	return v, true
}

// otherReading returns the alternative kind of an item whose marker is one of
// the letters i, v and x.
func otherReading(k ListKind) (ListKind, bool) {
	switch k.Style {
	case LowerAlpha, UpperAlpha:
		if k.Start < 1 || k.Start > 26 {
			break
		}
		if v, ok := romanValue(string(rune('a' + k.Start - 1))); ok {
			if k.Style == UpperAlpha {
				return ListKind{Style: UpperRoman, Start: v}, true
			}
			return ListKind{Style: LowerRoman, Start: v}, true
		}
	case LowerRoman, UpperRoman:
		if r := roman(k.Start); len(r) == 1 {
			if k.Style == UpperRoman {
				return ListKind{Style: UpperAlpha, Start: int(r[0]-'a') + 1}, true
			}
			return ListKind{Style: LowerAlpha, Start: int(r[0]-'a') + 1}, true
		}
	}
	return ListKind{}, false
}

// inline lexes text into inline tokens, pulling in the following physical
// lines as long as a line ends in a backslash.
func (s *scanner) inline(text string) []Token {
	var tokens []Token
	for {
		lexed, more := lexInline(text)
		tokens = append(tokens, lexed...)
		if !more {
			return tokens
		}
		next, ok := s.readLine()
		if !ok {
			return tokens
		}
		text = next
	}
}

// characters a backslash turns into literal text
const escapable = "*_~`-[\\#@"

// lexInline lexes one physical line. It reports whether the line ends in a
// backslash, i.e. continues on the next line.
func lexInline(line string) ([]Token, bool) {
	var (
		tokens []Token
		text   strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, &TextToken{Text: text.String()})
			text.Reset()
		}
	}
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == '\\':
			if i+1 == len(line) {
				flush()
				return append(tokens, BT), true
			}
			next := line[i+1]
			if next == '{' {
				if rb := strings.IndexByte(line[i+2:], '}'); rb >= 0 {
					text.WriteString(line[i+2 : i+2+rb])
					i += rb + 3
					continue
				}
			}
			if strings.IndexByte(escapable, next) >= 0 {
				text.WriteByte(next)
				i += 2
				continue
			}
			text.WriteByte(c)
			i++
		case c == '[':
			if alias, target, n, ok := link(line[i:]); ok {
				flush()
				tokens = append(tokens, &LinkToken{Alias: alias, Target: target})
				i += n
				continue
			}
			text.WriteByte(c)
			i++
		default:
			if kind, ok := modKindOf(c); ok {
				flush()
				tokens = append(tokens, &ModToken{Kind: kind})
			} else {
				text.WriteByte(c)
			}
			i++
		}
	}
	flush()
	return tokens, false
}

// link recognizes `[alias](target)` at the start of s.
func link(s string) (alias, target string, n int, ok bool) {
	rb := strings.IndexByte(s, ']')
	if rb < 0 || rb+1 >= len(s) || s[rb+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(s[rb+2:], ')')
	if end < 0 {
		return "", "", 0, false
	}
	return s[1:rb], s[rb+2 : rb+2+end], rb + end + 3, true
}

func modKindOf(c byte) (ModKind, bool) {
	for k := range modKinds {
		if modKinds[k].marker == c {
			return ModKind(k), true
		}
	}
	return 0, false
}
