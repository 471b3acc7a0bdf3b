package html_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmd "github.com/growler/go-tmd"
	. "github.com/growler/go-tmd/dot"
	"github.com/growler/go-tmd/html"
)

func render(t *testing.T, root *tmd.Root, opts html.Options) (string, *goquery.Document) {
	t.Helper()
	out, err := html.RenderString(root, opts)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return out, doc
}

func TestRenderInlines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tmd.html")
	defer teardown()

	out, doc := render(t, Doc(Para(
		Str("a < b "),
		Bold(Str("bold"), Cursive(Str("both"))),
		Strike(Str("gone")),
		CodeSpan(Str("x := 1")),
		Break(),
		Link("docs", "https://go.dev/doc?a=1&b=2"),
		Link("", "/plain"),
	)), html.Options{})

	assert.Equal(t, "boldboth", doc.Find("p > b").Text())
	assert.Equal(t, "both", doc.Find("p > b > i").Text())
	assert.Equal(t, "gone", doc.Find("p > del").Text())
	assert.Equal(t, "x := 1", doc.Find("p > code").Text())
	assert.Equal(t, 1, doc.Find("p > br").Length())
	href, _ := doc.Find("a").First().Attr("href")
	assert.Equal(t, "https://go.dev/doc?a=1&b=2", href)
	assert.Equal(t, "docs", doc.Find("a").First().Text())
	assert.Equal(t, "/plain", doc.Find("a").Last().Text())
	assert.Contains(t, out, "a &lt; b ")
	assert.Contains(t, out, "<br/>")
}

func TestRenderBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tmd.html")
	defer teardown()

	out, doc := render(t, Doc(
		Header(2, Str("Section")),
		Blank(),
		HR(),
		Code(tmd.LangCPP, "int main() {\n  return 0;\n}\n"),
		Code(tmd.LangKaTeX, "e^{i\\pi} + 1 = 0\n"),
		Code(tmd.LangMermaid, "graph TD\n"),
		Code("", "plain\n"),
	), html.Options{})

	assert.Equal(t, "Section", doc.Find("h2").Text())
	_, hasID := doc.Find("h2").Attr("id")
	assert.False(t, hasID)
	assert.Equal(t, 1, doc.Find("hr").Length())
	class, _ := doc.Find("pre > code").First().Attr("class")
	assert.Equal(t, "language-cpp", class)
	assert.Equal(t, "int main() {\n  return 0;\n}\n", doc.Find("pre > code").First().Text())
	_, hasClass := doc.Find("pre > code").Last().Attr("class")
	assert.False(t, hasClass)
	assert.Equal(t, "\n$$\ne^{i\\pi} + 1 = 0\n$$\n", doc.Find("div.katex").Text())
	assert.Equal(t, "\ngraph TD\n", doc.Find("div.mermaid").Text())
	assert.True(t, strings.HasPrefix(out, "<h2>Section</h2>\n<hr/>\n"), out)

	out, err := html.RenderString(Doc(Blank()), html.Options{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderLists(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tmd.html")
	defer teardown()

	_, doc := render(t, Doc(
		List(Bullets,
			Item(Para(Str("one")), List(Numbered(tmd.UpperRoman, 1), Item(Para(Str("nested"))))),
			Item(Para(Str("two"))),
		),
		List(BulletsOf(tmd.BulletSquare), Item(Para(Str("square")))),
		List(Numbered(tmd.LowerAlpha, 3), Item(Para(Str("c")))),
	), html.Options{})

	assert.Equal(t, 3, doc.Find("ul > li").Length())
	assert.Equal(t, "one", doc.Find("ul > li > p").First().Text())
	typ, _ := doc.Find("ul > li > ol").Attr("type")
	assert.Equal(t, "I", typ)
	_, hasStart := doc.Find("ul > li > ol").Attr("start")
	assert.False(t, hasStart)
	style, _ := doc.Find("ul").Eq(1).Attr("style")
	assert.Equal(t, "list-style-type:square", style)
	start, _ := doc.Find("body > ol").Attr("start")
	assert.Equal(t, "3", start)
	typ, _ = doc.Find("body > ol").Attr("type")
	assert.Equal(t, "a", typ)
}

func TestRenderChecklist(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tmd.html")
	defer teardown()

	_, doc := render(t, Doc(List(Bullets,
		Task(false, Para(Str("todo"))),
		Task(true, Para(Bold(Str("done"))), Para(Str("details"))),
	)), html.Options{})

	inputs := doc.Find("li > input[type=checkbox]")
	require.Equal(t, 2, inputs.Length())
	id, _ := inputs.Eq(0).Attr("id")
	assert.Equal(t, "checkbox1", id)
	_, checked := inputs.Eq(0).Attr("checked")
	assert.False(t, checked)
	id, _ = inputs.Eq(1).Attr("id")
	assert.Equal(t, "checkbox2", id)
	_, checked = inputs.Eq(1).Attr("checked")
	assert.True(t, checked)

	labels := doc.Find("li > label")
	forID, _ := labels.Eq(1).Attr("for")
	assert.Equal(t, "checkbox2", forID)
	assert.Equal(t, "todo", labels.Eq(0).Text())
	assert.Equal(t, "done", labels.Eq(1).Find("b").Text())
	assert.Equal(t, "details", doc.Find("li > p").Text())

	_, doc = render(t, Doc(List(Bullets,
		Task(true, Header(3, Str("Release")), Para(Str("notes"))),
	)), html.Options{})
	assert.Equal(t, "Release", doc.Find("li > label > h3").Text())
	assert.Equal(t, "notes", doc.Find("li > p").Text())
	assert.Equal(t, 0, doc.Find("li > h3").Length())
}

func TestRenderHeadingIDs(t *testing.T) {
	_, doc := render(t, Doc(
		Header(1, Str("Café au "), Bold(Str("lait"))),
		Header(2, Str("Café au lait!")),
		Header(3, Str("***")),
	), html.Options{HeadingIDs: true})

	ids := doc.Find("h1, h2, h3").Map(func(_ int, s *goquery.Selection) string {
		id, _ := s.Attr("id")
		return id
	})
	assert.Equal(t, []string{"cafe-au-lait", "cafe-au-lait-1", "section"}, ids)
}

func TestRenderStandalone(t *testing.T) {
	root := Doc(Para(Str("body text")))
	root.Meta = tmd.Meta{"title": "From front matter"}

	out, doc := render(t, root, html.Options{
		Standalone: true,
		Head:       `<meta charset="utf-8"><link rel="stylesheet" href="style.css">`,
	})
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html>"), out)
	assert.Equal(t, "From front matter", doc.Find("head > title").Text())
	charset, _ := doc.Find("head > meta").Attr("charset")
	assert.Equal(t, "utf-8", charset)
	assert.Equal(t, 1, doc.Find("head > link[rel=stylesheet]").Length())
	assert.Equal(t, "body text", doc.Find("body > p").Text())

	_, doc = render(t, root, html.Options{Standalone: true, Title: "Explicit"})
	assert.Equal(t, "Explicit", doc.Find("title").Text())
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		root *tmd.Root
		err  error
	}{{
		name: "heading label level",
		root: Doc(List(Bullets, Task(false, Header(9, Str("x"))))),
		err:  tmd.ErrUnsupported,
	}, {
		name: "include",
		root: Doc(Para(Str("x")), Include("chapter1")),
		err:  tmd.ErrUnresolvedInclude,
	}, {
		name: "nested include",
		root: Doc(List(Bullets, Item(Para(Str("x")), Include("chapter1")))),
		err:  tmd.ErrUnresolvedInclude,
	}, {
		name: "heading level",
		root: Doc(Header(7, Str("deep"))),
		err:  tmd.ErrUnsupported,
	}, {
		name: "list style",
		root: Doc(List(tmd.ListKind{Style: tmd.ListStyle(42)}, Item(Para(Str("x"))))),
		err:  tmd.ErrUnsupported,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			err := html.Render(&sb, tt.root, html.Options{})
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, sb.String(), "nothing is written for a failing document")
		})
	}
}

func TestRenderDocument(t *testing.T) {
	root, err := tmd.ReadString("# Tasks\n- [x] write\n- [ ] test\n  *soon*\n", tmd.DefaultConf)
	require.NoError(t, err)
	_, doc := render(t, root, html.Options{})
	assert.Equal(t, "Tasks", doc.Find("h1").Text())
	assert.Equal(t, 2, doc.Find("ul > li").Length())
	assert.Equal(t, "soon", doc.Find("ul > li").Last().Find("p > b").Text())
}
