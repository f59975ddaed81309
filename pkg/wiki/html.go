package wiki

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const titlePathPrefix = "/title/"

// ExtractTitleLinks returns the titles of all article anchors (/title/...)
// in a rendered page, in document order and without duplicates. Anchors
// inside navigation, header and footer elements are ignored.
func ExtractTitleLinks(htmlContent string) []string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var titles []string
	collectTitleLinks(doc, map[string]bool{
		"nav": true, "header": true, "footer": true, "script": true, "style": true,
	}, func(title string) {
		if !seen[title] {
			seen[title] = true
			titles = append(titles, title)
		}
	})
	return titles
}

func collectTitleLinks(n *html.Node, skipTags map[string]bool, add func(string)) {
	if n.Type == html.ElementNode {
		if skipTags[n.Data] {
			return
		}
		if n.Data == "a" {
			if title, ok := titleFromHref(attr(n, "href")); ok {
				add(title)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTitleLinks(c, skipTags, add)
	}
}

func titleFromHref(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || !strings.HasPrefix(u.Path, titlePathPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(u.Path, titlePathPrefix)
	if name == "" || isNamespaced(name) {
		return "", false
	}
	return PageNameToTitle(name), true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// extractTitle returns the contents of the document's <title> element.
func extractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}
	return findTitle(doc)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}
