package extract

import (
	"strings"
	"testing"
)

func mustText(t *testing.T, input string) string {
	t.Helper()
	doc, err := FromHTML([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc.Text()
}

func TestFromHTML_GroupsContentUnderHeadings(t *testing.T) {
	input := `<body><h2>Overview</h2><p>Hello</p><p>World</p><a href="https://twitter.com/x">tw</a></body>`
	want := "=== OVERVIEW ===\nHello World\n\n=== SOCIAL MEDIA LINKS ===\nhttps://twitter.com/x"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_NoHeadingsJoinsWithNewlines(t *testing.T) {
	input := `<body><p>Just text</p></body>`
	if got := mustText(t, input); got != "Just text" {
		t.Fatalf("got %q, want %q", got, "Just text")
	}

	input = `<body><p>First line</p><p>Second line</p></body>`
	want := "First line\nSecond line"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_MultipleHeadingsInDocumentOrder(t *testing.T) {
	input := `<body>
	  <h1>First</h1><p>one</p>
	  <h2>Second</h2><p>two</p>
	  <h3>Third</h3><p>three</p>
	</body>`
	want := "=== FIRST ===\none\n\n=== SECOND ===\ntwo\n\n=== THIRD ===\nthree"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_DenylistedSubtreesContributeNothing(t *testing.T) {
	input := `<body>
	  <header>Site header</header>
	  <nav><a href="https://facebook.com/hidden">fb</a><p>menu item</p></nav>
	  <h2>Content</h2>
	  <p>Visible</p>
	  <script>var x = "script text";</script>
	  <style>.c { color: red }</style>
	  <form><p>form text</p></form>
	  <noscript>enable js</noscript>
	  <svg><text>vector</text></svg>
	  <aside>sidebar</aside>
	  <dialog>popup</dialog>
	  <iframe>frame</iframe>
	  <footer>Site footer</footer>
	</body>`
	got := mustText(t, input)
	want := "=== CONTENT ===\nVisible"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	for _, banned := range []string{"Site header", "menu item", "script text", "color", "form text", "enable js", "vector", "sidebar", "popup", "frame", "Site footer", "facebook.com"} {
		if strings.Contains(got, banned) {
			t.Fatalf("denylisted content %q leaked into output %q", banned, got)
		}
	}
}

func TestFromHTML_HeadingWithEmptyBodyIsDropped(t *testing.T) {
	input := `<body><h2>Empty</h2><p>   </p><span></span><h2>Full</h2><p>text</p></body>`
	want := "=== FULL ===\ntext"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_TextBeforeFirstHeadingIsDropped(t *testing.T) {
	// A heading starts a fresh collection context; pre-heading text only
	// survives when the document has no headings at all.
	input := `<body><p>intro</p><h2>Section</h2><p>body</p></body>`
	want := "=== SECTION ===\nbody"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_HeadingsUppercasedAndTrimmed(t *testing.T) {
	input := `<body><h1>  My Page </h1><p>a</p></body>`
	want := "=== MY PAGE ===\na"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_NestedContainersDuplicateText(t *testing.T) {
	// The walk visits every descendant, so a <p> inside a <div> contributes
	// its text twice: once through the div and once on its own.
	input := `<body><h2>T</h2><div><p>x</p></div></body>`
	want := "=== T ===\nx x"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_SocialLinksDeduplicatedAndSorted(t *testing.T) {
	input := `<body>
	  <p>hello</p>
	  <a href="https://twitter.com/x">tw</a>
	  <a href="https://twitter.com/x">tw again</a>
	  <a href="https://facebook.com/page">fb</a>
	  <a href="https://t.me/chan">tg</a>
	  <a href="https://example.com/other">not social</a>
	</body>`
	want := "hello\n\n=== SOCIAL MEDIA LINKS ===\nhttps://facebook.com/page\nhttps://t.me/chan\nhttps://twitter.com/x"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_NoSocialBlockWithoutLinks(t *testing.T) {
	got := mustText(t, `<body><p>plain</p><a href="https://example.com">x</a></body>`)
	if strings.Contains(got, "SOCIAL MEDIA LINKS") {
		t.Fatalf("unexpected social block in %q", got)
	}
}

func TestFromHTML_Idempotent(t *testing.T) {
	input := `<body><h2>Overview</h2><p>Hello</p><a href="https://youtube.com/c">yt</a><p>World</p></body>`
	first := mustText(t, input)
	second := mustText(t, input)
	if first != second {
		t.Fatalf("extraction not deterministic: %q vs %q", first, second)
	}
}

func TestFromHTML_ListItemsAndSpans(t *testing.T) {
	input := `<body><h2>Agenda</h2><ul><li>one</li><li>two</li></ul><span>closing</span></body>`
	want := "=== AGENDA ===\none two closing"
	if got := mustText(t, input); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_MalformedHTMLDoesNotFail(t *testing.T) {
	doc, err := FromHTML([]byte(`<h2>Broken</h2><p>unclosed`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Text(); got != "=== BROKEN ===\nunclosed" {
		t.Fatalf("got %q", got)
	}
}
