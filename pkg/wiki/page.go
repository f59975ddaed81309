// Package wiki provides MediaWiki page helpers: title/page-name conversion,
// wikitext link and redirect parsing, and an HTTP client for page content
// and metadata.
package wiki

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
)

// PageInfo is the metadata the wiki reports for a page.
type PageInfo struct {
	PageName         string `json:"page_name"`
	LatestRevisionID int64  `json:"latest_revision_id"`
	IsRedirect       bool   `json:"is_redirect"`
	IsTranslated     bool   `json:"is_translated"`
	Exists           bool   `json:"exists"`
}

// TitleToPageName converts a display title to the page name used in URLs.
func TitleToPageName(title string) string {
	return strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}

// PageNameToTitle is the inverse of TitleToPageName.
func PageNameToTitle(pageName string) string {
	return strings.ReplaceAll(pageName, "_", " ")
}

// Link is a parsed [[Target#Header|Label]] wiki link.
type Link struct {
	Target string `json:"target"`
	Header string `json:"header,omitempty"`
	Label  string `json:"label,omitempty"`
}

// LinkWithHeader renders the link target including its section, if any.
func (l Link) LinkWithHeader() string {
	if l.Header == "" {
		return l.Target
	}
	return l.Target + "#" + l.Header
}

// ParseLink parses the inside of a [[...]] link.
func ParseLink(raw string) Link {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "[["), "]]"))

	var link Link
	if target, label, ok := strings.Cut(raw, "|"); ok {
		raw = target
		link.Label = strings.TrimSpace(label)
	}
	if target, header, ok := strings.Cut(raw, "#"); ok {
		raw = target
		link.Header = strings.TrimSpace(header)
	}
	link.Target = normalizeTarget(raw)
	return link
}

// normalizeTarget applies MediaWiki's default title rules: underscores are
// spaces and the first letter is upper case.
func normalizeTarget(target string) string {
	target = strings.TrimSpace(PageNameToTitle(target))
	r, size := utf8.DecodeRuneInString(target)
	if r == utf8.RuneError {
		return target
	}
	return string(unicode.ToUpper(r)) + target[size:]
}

var (
	linkRe     = regexp.MustCompile(`\[\[([^\[\]]+?)\]\]`)
	redirectRe = regexp.MustCompile(`(?i)^\s*#REDIRECT\s*:?\s*\[\[([^\[\]]+?)\]\]`)
)

var skippedNamespaces = []string{"category:", "file:", "image:", "media:", "special:"}

// FindLinks returns the article links of a page's wikitext in order of first
// appearance, deduplicated by target. Namespace links (categories, files),
// interlanguage links and section-only links are skipped.
func FindLinks(wikitext string) []Link {
	seen := make(map[string]bool)
	var links []Link

	for _, m := range linkRe.FindAllStringSubmatch(wikitext, -1) {
		inner := strings.TrimSpace(m[1])
		if strings.HasPrefix(inner, ":") || isNamespaced(inner) {
			continue
		}

		link := ParseLink(inner)
		if link.Target == "" || seen[link.Target] {
			continue
		}
		seen[link.Target] = true
		links = append(links, link)
	}
	return links
}

func isNamespaced(inner string) bool {
	lower := strings.ToLower(inner)
	for _, ns := range skippedNamespaces {
		if strings.HasPrefix(lower, ns) {
			return true
		}
	}
	prefix, _, ok := strings.Cut(inner, ":")
	return ok && i18n.IsValidSubtag(strings.TrimSpace(prefix))
}

// FindRedirect returns the redirect target of a redirect page, or nil when
// the wikitext is not a redirect.
func FindRedirect(wikitext string) *Link {
	m := redirectRe.FindStringSubmatch(wikitext)
	if m == nil {
		return nil
	}
	link := ParseLink(m[1])
	if link.Target == "" {
		return nil
	}
	return &link
}
