package web

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// strippedTags are removed from the document before conversion. They carry
// page chrome rather than documentation content.
var strippedTags = []string{
	"script", "style", "noscript", "iframe", "object", "embed",
	"nav", "header", "footer", "aside", "form", "input", "button",
}

// Converter converts rendered HTML to markdown text.
// Link targets are preserved inline. Safe for concurrent use.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates an HTML to markdown converter.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Converter{converter: converter}
}

// Convert transforms HTML content to markdown. An empty result means the
// page had no usable content; callers skip such documents.
func (c *Converter) Convert(htmlContent string) (string, error) {
	cleaned := extractContent(htmlContent)

	markdown, err := c.converter.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown), nil
}

// extractContent returns the HTML of the page's content area: the first
// <main> or <article> element when one exists, otherwise the <body> with
// chrome elements stripped.
func extractContent(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	for _, tag := range []string{"main", "article"} {
		if node := findElement(doc, tag); node != nil {
			return renderNode(node)
		}
	}

	removeElements(doc, strippedTags)
	if body := findElement(doc, "body"); body != nil {
		return renderNode(body)
	}

	return content
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// removeElements removes all elements with the given tag names.
func removeElements(n *html.Node, tags []string) {
	tagSet := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagSet[tag] = true
	}

	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && tagSet[node.Data] {
			toRemove = append(toRemove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	for _, node := range toRemove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

// renderNode renders a node and its children back to an HTML string.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	html.Render(&sb, n)
	return sb.String()
}
