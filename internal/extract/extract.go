package extract

import (
	"bytes"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// noiseSelector matches the elements excised, descendants included, before
// any link collection or text traversal.
const noiseSelector = "script, style, header, footer, nav, form, noscript, svg, aside, dialog, iframe"

// socialDomains are substring markers that qualify an anchor href as a
// social-media link.
var socialDomains = []string{
	"facebook.com",
	"twitter.com",
	"linkedin.com",
	"instagram.com",
	"youtube.com",
	"t.me",
	"wa.me",
}

const socialHeading = "SOCIAL MEDIA LINKS"

var upper = cases.Upper(language.Und)

// Document is the structured plain-text form of a scraped page: formatted
// content blocks in encounter order, with the social-links block last.
type Document struct {
	Blocks []string
}

// Text renders the document as a single string with a blank line between
// blocks. Rendering is deterministic: identical HTML input yields identical
// output bytes.
func (d Document) Text() string {
	return strings.Join(d.Blocks, "\n\n")
}

// FromHTML parses raw HTML and partitions the visible text into
// heading-labeled blocks. Elements matching noiseSelector are removed first,
// then anchors are scanned for social-media links, then all descendants of
// <body> are walked in document order grouping text under the nearest
// preceding heading. Malformed or partial HTML is parsed best-effort; only a
// reader-level failure returns an error.
func FromHTML(input []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Document{}, err
	}
	doc.Find(noiseSelector).Remove()

	links := socialLinks(doc)

	w := &walker{}
	if body := doc.Find("body").First(); len(body.Nodes) > 0 {
		for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			w.visit(c)
		}
	}
	blocks := w.finish()

	if len(links) > 0 {
		blocks = append(blocks, "=== "+socialHeading+" ===\n"+strings.Join(links, "\n"))
	}
	return Document{Blocks: blocks}, nil
}

// socialLinks collects hrefs containing a known social domain marker into a
// deduplicated, lexicographically sorted list. Exact-string dedup only: no
// scheme or trailing-slash normalization.
func socialLinks(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		for _, domain := range socialDomains {
			if strings.Contains(href, domain) {
				seen[strings.TrimSpace(href)] = struct{}{}
				break
			}
		}
	})
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for link := range seen {
		out = append(out, link)
	}
	sort.Strings(out)
	return out
}

// walker groups text-bearing elements under the nearest preceding heading.
// State is explicit so the traversal is testable on its own: the current
// heading title, the pending block, and the flushed blocks.
type walker struct {
	heading    string
	hasHeading bool
	block      []string
	blocks     []string
}

// visit dispatches one node and then descends. Traversal covers all
// descendants, so a container nested inside another container is visited
// separately and its text lands in the block twice. The duplication is
// intentional and kept as-is.
func (w *walker) visit(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.onHeading(n)
		case "p", "li", "div", "span":
			w.onContainer(n)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.visit(c)
	}
}

// onHeading flushes the pending block under the previous heading, when both
// exist, and starts a fresh collection context. Text gathered before the
// first heading is deliberately not flushed here; it only surfaces through
// the no-heading path in finish.
func (w *walker) onHeading(n *html.Node) {
	if w.hasHeading && len(w.block) > 0 {
		w.flush()
	}
	w.heading = upper.String(nodeText(n))
	w.hasHeading = true
	w.block = nil
}

func (w *walker) onContainer(n *html.Node) {
	if text := nodeText(n); text != "" {
		w.block = append(w.block, text)
	}
}

func (w *walker) flush() {
	w.blocks = append(w.blocks, "=== "+w.heading+" ===\n"+strings.TrimSpace(strings.Join(w.block, " ")))
}

// finish performs the terminal flush and returns the non-empty blocks. A
// residual block with no heading at all is joined by newlines rather than
// spaces; the asymmetry is intentional.
func (w *walker) finish() []string {
	switch {
	case w.hasHeading && len(w.block) > 0:
		w.flush()
	case len(w.block) > 0:
		w.blocks = append(w.blocks, strings.TrimSpace(strings.Join(w.block, "\n")))
	}
	out := make([]string, 0, len(w.blocks))
	for _, b := range w.blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

// nodeText returns the element's visible text: every descendant text chunk
// individually trimmed, non-empty chunks concatenated without a separator.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(cur.Data))
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return b.String()
}
