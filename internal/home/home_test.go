package home

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/Shivam0504-hash/rcc-documentation/internal/model"
)

var testSite = model.SiteConfig{
	Title:       "RCC Documentation",
	Description: "Reusable React Native components",
	BaseURL:     "/",
}

func renderDoc(t *testing.T, site model.SiteConfig) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, site))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func element(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, _ := attr(n, "class")
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var sb strings.Builder
	for _, t := range findAll(n, func(n *html.Node) bool { return n.Type == html.TextNode }) {
		sb.WriteString(t.Data)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func TestRenderTitleHeading(t *testing.T) {
	doc := renderDoc(t, testSite)

	var titles []*html.Node
	for _, h := range findAll(doc, isHeading) {
		if text(h) == "React Native Reusable Component" {
			titles = append(titles, h)
		}
	}
	require.Len(t, titles, 1)
	assert.Equal(t, "h1", titles[0].Data)
}

func TestRenderCallToAction(t *testing.T) {
	doc := renderDoc(t, testSite)

	var ctas []*html.Node
	for _, a := range findAll(doc, element("a")) {
		if text(a) == "Let's Start" {
			ctas = append(ctas, a)
		}
	}
	require.Len(t, ctas, 1)

	href, ok := attr(ctas[0], "href")
	require.True(t, ok, "call to action must carry an href attribute")
	assert.Equal(t, "", href)
}

func TestRenderContributors(t *testing.T) {
	doc := renderDoc(t, testSite)

	cards := findAll(doc, hasClass("contributor"))
	require.Len(t, cards, 3)

	for i, card := range cards {
		headings := findAll(card, element("h2"))
		require.Len(t, headings, 1, "card %d", i)
		assert.Equal(t, "Contributor", text(headings[0]))
		assert.Contains(t, text(card), "Name: John Doe", "card %d", i)

		links := findAll(card, element("a"))
		require.Len(t, links, 1, "card %d", i)
		href, _ := attr(links[0], "href")
		assert.Equal(t, "mailto:john.doe@example.com", href)
		assert.Equal(t, "john.doe@example.com", text(links[0]))
	}
}

func TestRenderUsesSiteConfig(t *testing.T) {
	doc := renderDoc(t, testSite)

	titles := findAll(doc, element("title"))
	require.Len(t, titles, 1)
	assert.Equal(t, "Hello from RCC Documentation", text(titles[0]))

	var description string
	for _, m := range findAll(doc, element("meta")) {
		if name, _ := attr(m, "name"); name == "description" {
			description, _ = attr(m, "content")
		}
	}
	assert.Equal(t, "Reusable React Native components", description)
}

func TestRenderEscapesSiteConfig(t *testing.T) {
	var buf bytes.Buffer
	site := testSite
	site.Title = `<script>alert("x")</script>`
	require.NoError(t, Render(&buf, site))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestRenderIsIdempotent(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Render(&first, testSite))
	require.NoError(t, Render(&second, testSite))
	assert.Equal(t, first.String(), second.String())
}

func TestRenderConcurrent(t *testing.T) {
	var want bytes.Buffer
	require.NoError(t, Render(&want, testSite))

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			if err := Render(&buf, testSite); err == nil {
				results[i] = buf.String()
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want.String(), got)
	}
}

func TestRenderCustomContributors(t *testing.T) {
	page := New(testSite)
	page.Contributors = []model.ContributorRecord{
		{Name: "Ada", Email: "ada@example.com"},
	}

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	cards := findAll(doc, hasClass("contributor"))
	require.Len(t, cards, 1)
	assert.Contains(t, text(cards[0]), "Ada")
}

func TestContributorView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ContributorView(&buf, "John Doe", "john.doe@example.com"))

	out := buf.String()
	assert.Contains(t, out, "<h2>Contributor</h2>")
	assert.Contains(t, out, `href="mailto:john.doe@example.com"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestRenderWriterError(t *testing.T) {
	assert.Error(t, Render(failingWriter{}, testSite))
}

func TestRenderWithoutWorkingTree(t *testing.T) {
	var want bytes.Buffer
	require.NoError(t, Render(&want, testSite))

	// An empty working directory: no templates or assets on disk to read.
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var got bytes.Buffer
	require.NoError(t, Render(&got, testSite))
	assert.Equal(t, want.String(), got.String())
	assert.Len(t, findAll(renderDoc(t, testSite), hasClass("contributor")), 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "render must not create files")
}
