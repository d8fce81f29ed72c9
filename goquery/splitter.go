// Package goquery provides a goquery-based implementation of docsem.Splitter
// for decomposing documentation pages into section-level chunks.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docsem/docsem"
	"golang.org/x/net/html"
)

// DefaultContainerSelector locates the main content container on
// Sphinx-style documentation pages (docs.djangoproject.com among them).
const DefaultContainerSelector = "article#docs-content"

// FallbackPageTitle is used when the container has no h1 heading.
const FallbackPageTitle = "Untitled"

// Ensure Splitter implements docsem.Splitter at compile time.
var _ docsem.Splitter = (*Splitter)(nil)

// Splitter splits an HTML documentation page into h2-delimited sections.
// It is stateless; splitting the same document twice yields the same result.
type Splitter struct {
	containerSelector string
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithContainerSelector overrides the CSS selector used to locate the main
// content container. Defaults to DefaultContainerSelector.
func WithContainerSelector(selector string) Option {
	return func(s *Splitter) {
		s.containerSelector = selector
	}
}

// NewSplitter creates a new Splitter.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{
		containerSelector: DefaultContainerSelector,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split parses the page and returns its title and h2-delimited sections in
// document order.
//
// The page title is the trimmed text of the first h1 inside the content
// container, or FallbackPageTitle if absent. Each section's text is the
// whitespace-normalized text of every sibling node between its h2 and the
// next h2 (or end of container). A section's anchor is the h2's id
// attribute, or a slugified form of its title when the id is missing.
func (s *Splitter) Split(rawHTML string) (string, []docsem.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", nil, docsem.Errorf(docsem.EINVALID, "failed to parse HTML: %v", err)
	}

	container := doc.Find(s.containerSelector).First()
	if container.Length() == 0 {
		return "", nil, docsem.Errorf(docsem.ENOTFOUND,
			"content container %q not found; the page structure may have changed", s.containerSelector)
	}

	pageTitle := strings.TrimSpace(container.Find("h1").First().Text())
	if pageTitle == "" {
		pageTitle = FallbackPageTitle
	}

	var sections []docsem.Section
	container.Find("h2").Each(func(_ int, heading *goquery.Selection) {
		title := strings.TrimSpace(heading.Text())

		anchor, ok := heading.Attr("id")
		if !ok || anchor == "" {
			anchor = docsem.Slugify(title)
		}

		var pieces []string
		heading.NextUntil("h2").Each(func(_ int, sibling *goquery.Selection) {
			for _, node := range sibling.Nodes {
				if text := nodeText(node); text != "" {
					pieces = append(pieces, text)
				}
			}
		})

		sections = append(sections, docsem.Section{
			Title:  title,
			Anchor: anchor,
			Text:   strings.Join(pieces, " "),
		})
	})

	return pageTitle, sections, nil
}

// nodeText returns the whitespace-normalized text content of a node,
// inserting a single space between adjacent text nodes so that text from
// distinct elements never runs together.
func nodeText(node *html.Node) string {
	var pieces []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if fields := strings.Fields(n.Data); len(fields) > 0 {
				pieces = append(pieces, strings.Join(fields, " "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return strings.Join(pieces, " ")
}
