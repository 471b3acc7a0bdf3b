package tmd_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmd "github.com/growler/go-tmd"
	. "github.com/growler/go-tmd/dot"
)

func TestScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tmd")
	defer teardown()

	tests := []struct {
		name string
		src  string
		want []tmd.Event
	}{{
		name: "empty",
		src:  "",
		want: nil,
	}, {
		name: "heading",
		src:  "# Title\n",
		want: Events(Heading(0, 1, T("Title"))),
	}, {
		name: "heading without space",
		src:  "  ###deep\n",
		want: Events(Heading(2, 3, T("deep"))),
	}, {
		name: "rule and blanks",
		src:  "----\n\n   \n",
		want: Events(Rule(), BlankLine(), BlankLine()),
	}, {
		name: "indented dashes are text",
		src:  "  ---\n",
		want: Events(Text(2, "---")),
	}, {
		name: "text with modifiers",
		src:  "Hello *World* and _~text~_\n",
		want: Events(Line(0, T("Hello "), bold, T("World"), bold, T(" and "), cursive, strike, T("text"), strike, cursive)),
	}, {
		name: "escapes",
		src:  `and more \* text \{***} \\ \# \@ \q` + "\n",
		want: Events(Text(0, `and more * text *** \ # @ \q`)),
	}, {
		name: "link",
		src:  "just [google](https://google.com) it\n",
		want: Events(Line(0, T("just "), L("google", "https://google.com"), T(" it"))),
	}, {
		name: "link without alias",
		src:  "[](https://go.dev)\n",
		want: Events(Line(0, L("", "https://go.dev"))),
	}, {
		name: "unmatched bracket",
		src:  "a [b] c [d\n",
		want: Events(Text(0, "a [b] c [d")),
	}, {
		name: "continuation",
		src:  "## multiline\\\nheading\nnext\n",
		want: Events(Heading(0, 2, T("multiline"), BR(), T("heading")), Text(0, "next")),
	}, {
		name: "crlf",
		src:  "a\r\n\r\nb",
		want: Events(Text(0, "a"), BlankLine(), Text(0, "b")),
	}, {
		name: "include",
		src:  "@[chapter1]\n    @[parts/two]  \n",
		want: Events(IncludeLine(0, "chapter1"), IncludeLine(4, "parts/two")),
	}, {
		name: "bullet items",
		src:  "- one\n  - [ ] two\n    - [x] three\n",
		want: Events(
			ItemStart(0, Bullets, "one"),
			TaskStart(2, Bullets, false, "two"),
			TaskStart(4, Bullets, true, "three"),
		),
	}, {
		name: "bullet subtypes",
		src:  "-{square} a\n-{none} b\n",
		want: Events(
			ItemStart(0, BulletsOf(tmd.BulletSquare), "a"),
			ItemStart(0, BulletsOf(tmd.BulletNone), "b"),
		),
	}, {
		name: "ordered items",
		src:  "3. three\nb. bee\nB. Bee\ni. one\nI. One\n",
		want: Events(
			ItemStart(0, Numbered(tmd.Decimal, 3), "three"),
			ItemStart(0, Numbered(tmd.LowerAlpha, 2), "bee"),
			ItemStart(0, Numbered(tmd.UpperAlpha, 2), "Bee"),
			ItemStart(0, Numbered(tmd.LowerRoman, 1), "one"),
			ItemStart(0, Numbered(tmd.UpperRoman, 1), "One"),
		),
	}, {
		name: "numbered run shares its kind",
		src:  "1. a\n2. b\n2. c\n5. d\n",
		want: Events(
			ItemStart(0, Numbered(tmd.Decimal, 1), "a"),
			ItemStart(0, Numbered(tmd.Decimal, 1), "b"),
			ItemStart(0, Numbered(tmd.Decimal, 1), "c"),
			ItemStart(0, Numbered(tmd.Decimal, 5), "d"),
		),
	}, {
		name: "letter run",
		src:  "b. x\nc. y\nB. z\n",
		want: Events(
			ItemStart(0, Numbered(tmd.LowerAlpha, 2), "x"),
			ItemStart(0, Numbered(tmd.LowerAlpha, 2), "y"),
			ItemStart(0, Numbered(tmd.UpperAlpha, 2), "z"),
		),
	}, {
		name: "roman numerals",
		src:  "i. one\nii. two\niii. three\niv. four\nv. five\nIV. Four\n",
		want: Events(
			ItemStart(0, Numbered(tmd.LowerRoman, 1), "one"),
			ItemStart(0, Numbered(tmd.LowerRoman, 1), "two"),
			ItemStart(0, Numbered(tmd.LowerRoman, 1), "three"),
			ItemStart(0, Numbered(tmd.LowerRoman, 1), "four"),
			ItemStart(0, Numbered(tmd.LowerRoman, 1), "five"),
			ItemStart(0, Numbered(tmd.UpperRoman, 4), "Four"),
		),
	}, {
		name: "ambiguous letters follow the run",
		src:  "h. eight\ni. nine\nix. nine\nx. ten\nv. vee\n",
		want: Events(
			ItemStart(0, Numbered(tmd.LowerAlpha, 8), "eight"),
			ItemStart(0, Numbered(tmd.LowerAlpha, 8), "nine"),
			ItemStart(0, Numbered(tmd.LowerRoman, 9), "nine"),
			ItemStart(0, Numbered(tmd.LowerRoman, 9), "ten"),
			ItemStart(0, Numbered(tmd.LowerAlpha, 22), "vee"),
		),
	}, {
		name: "runs end at shallower events",
		src:  "1. a\n   1. x\n2. b\n   2. y\ntext\n3. c\n\n4. d\n",
		want: Events(
			ItemStart(0, Numbered(tmd.Decimal, 1), "a"),
			ItemStart(3, Numbered(tmd.Decimal, 1), "x"),
			ItemStart(0, Numbered(tmd.Decimal, 1), "b"),
			ItemStart(3, Numbered(tmd.Decimal, 2), "y"),
			Text(0, "text"),
			ItemStart(0, Numbered(tmd.Decimal, 3), "c"),
			BlankLine(),
			ItemStart(0, Numbered(tmd.Decimal, 3), "d"),
		),
	}, {
		name: "not a marker",
		src:  "-5 degrees\n3.14 is pi\nok.\nmix. well\niiii. four\n",
		want: Events(
			Text(0, "-5 degrees"), Text(0, "3.14 is pi"), Text(0, "ok."),
			Text(0, "mix. well"), Text(0, "iiii. four"),
		),
	}, {
		name: "code fence",
		src:  "::: c++\nint main() {\n  return 0;\n}\n:::\nafter\n",
		want: Events(Fence(0, tmd.LangCPP, "int main() {\n  return 0;\n}\n"), Text(0, "after")),
	}, {
		name: "code body is verbatim",
		src:  "  ::: math\n# not a heading *x*\n\n- y\n  :::\n",
		want: Events(Fence(2, tmd.LangKaTeX, "# not a heading *x*\n\n- y\n")),
	}, {
		name: "fence without language is text",
		src:  ":::\n",
		want: Events(Text(0, ":::")),
	}, {
		name: "item with code",
		src:  "- ::: rust\n  fn main() {}\n  :::\n",
		want: Events(&tmd.ItemEvent{
			Kind:    Bullets,
			Content: Fence(0, tmd.LangRust, "  fn main() {}\n"),
		}),
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tmd.Scan([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tmd")
	defer teardown()

	tests := []struct {
		name string
		src  string
		err  error
		line int
	}{{
		name: "unterminated code",
		src:  "text\n::: rust\nfn main() {}\n",
		err:  tmd.ErrUnterminated,
		line: 2,
	}, {
		name: "unterminated code in item",
		src:  "- ::: rust\n",
		err:  tmd.ErrUnterminated,
		line: 1,
	}, {
		name: "unknown bullet",
		src:  "- a\n-{star} b\n",
		err:  tmd.ErrUnsupported,
		line: 2,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := tmd.Scan([]byte(tt.src))
			assert.Nil(t, events)
			assert.ErrorIs(t, err, tt.err)
			var pos *tmd.PosError
			if assert.True(t, errors.As(err, &pos)) {
				assert.Equal(t, tt.line, pos.Line)
			}
		})
	}
}

func TestParseLang(t *testing.T) {
	for in, want := range map[string]tmd.Lang{
		"math":    tmd.LangKaTeX,
		"c++":     tmd.LangCPP,
		" Py ":    tmd.LangPython,
		"rust":    tmd.LangRust,
		"mermaid": tmd.LangMermaid,
		"go":      tmd.Lang("go"),
	} {
		assert.Equal(t, want, tmd.ParseLang(in), in)
	}
}
