// Package translated finds the translated counterparts of the links on an
// English wiki page.
package translated

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

// Redirect is a link whose localized page is missing but whose English page
// redirects elsewhere; the localized redirect target may exist instead.
type Redirect struct {
	Link                    string `json:"link"`
	RedirectsTo             string `json:"redirects_to"`
	LocalizedRedirectTarget string `json:"localized_redirect_target"`
	Exists                  bool   `json:"exists"`
}

// Result groups the localized titles of a page's links.
type Result struct {
	Language    i18n.LanguageInfo `json:"language"`
	Existing    []string          `json:"existing"`
	Redirects   []Redirect        `json:"redirects"`
	NotExisting []string          `json:"not_existing"`
}

// Empty reports whether no links were resolved at all.
func (r *Result) Empty() bool {
	return len(r.Existing) == 0 && len(r.Redirects) == 0 && len(r.NotExisting) == 0
}

// Resolver resolves links against a PageLookup.
type Resolver struct {
	lookup PageLookup
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(lookup PageLookup) *Resolver {
	return &Resolver{lookup: lookup, logger: slog.Default()}
}

// ResolveContent resolves every article link found in wikitext.
func (r *Resolver) ResolveContent(ctx context.Context, wikitext string, lang i18n.LanguageInfo) (*Result, error) {
	links := wiki.FindLinks(wikitext)
	targets := make([]string, 0, len(links))
	for _, l := range links {
		targets = append(targets, l.Target)
	}
	return r.Resolve(ctx, targets, lang)
}

// Resolve looks up the lang translation of every English title in links.
// Titles that are already translated are skipped.
func (r *Resolver) Resolve(ctx context.Context, links []string, lang i18n.LanguageInfo) (*Result, error) {
	if lang.Key == "" {
		return nil, fmt.Errorf("resolve translations: no language given")
	}
	if lang.Key == "English" {
		return nil, fmt.Errorf("resolve translations: English pages carry no language suffix")
	}

	result := &Result{Language: lang}
	seen := make(map[string]bool, len(links))

	for _, link := range links {
		if link == "" || seen[link] || i18n.IsTranslated(link) {
			continue
		}
		seen[link] = true

		if err := r.resolveOne(ctx, link, lang, result); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(result.Redirects, func(i, j int) bool {
		return result.Redirects[i].Exists && !result.Redirects[j].Exists
	})

	r.logger.Debug("translations resolved",
		"language", lang.Key,
		"existing", len(result.Existing),
		"redirects", len(result.Redirects),
		"not_existing", len(result.NotExisting),
	)
	return result, nil
}

func (r *Resolver) resolveOne(ctx context.Context, link string, lang i18n.LanguageInfo, result *Result) error {
	localized := i18n.Localize(link, lang)
	page, err := r.lookup.Lookup(ctx, localized)
	if err != nil {
		return fmt.Errorf("look up %s: %w", localized, err)
	}
	if page.Exists {
		result.Existing = append(result.Existing, localized)
		return nil
	}

	english, err := r.lookup.Lookup(ctx, link)
	if err != nil {
		return fmt.Errorf("look up %s: %w", link, err)
	}
	if !english.Exists || english.RedirectsTo == "" {
		result.NotExisting = append(result.NotExisting, localized)
		return nil
	}

	target := wiki.ParseLink(english.RedirectsTo).Target
	localizedTarget := i18n.Localize(target, lang)
	targetPage, err := r.lookup.Lookup(ctx, localizedTarget)
	if err != nil {
		return fmt.Errorf("look up %s: %w", localizedTarget, err)
	}

	result.Redirects = append(result.Redirects, Redirect{
		Link:                    link,
		RedirectsTo:             english.RedirectsTo,
		LocalizedRedirectTarget: localizedTarget,
		Exists:                  targetPage.Exists,
	})
	return nil
}
