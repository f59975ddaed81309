package translated

import (
	"context"
	"errors"
	"fmt"

	"github.com/RobinCoderZhao/archtranslator/internal/cache"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

// Page is what the resolver needs to know about a title.
type Page struct {
	Title       string
	Exists      bool
	RedirectsTo string // empty unless the page is a redirect
}

// PageLookup answers existence and redirect questions about titles.
type PageLookup interface {
	Lookup(ctx context.Context, title string) (*Page, error)
}

// PageSource fetches page metadata and content from the wiki. *wiki.Client
// implements it.
type PageSource interface {
	PageInfo(ctx context.Context, title string) (*wiki.PageInfo, error)
	PageContent(ctx context.Context, title string) (string, error)
}

// PageCache is the subset of *cache.Store used by CachedLookup.
type PageCache interface {
	cache.PageSetter
	Get(ctx context.Context, pageName string) (*cache.PageInfo, error)
}

// CachedLookup serves lookups from the page cache and falls back to the wiki,
// recording every existing page it fetches.
type CachedLookup struct {
	source   PageSource
	cache    PageCache
	recorder *cache.Recorder
}

// NewCachedLookup creates a lookup backed by source and c.
func NewCachedLookup(source PageSource, c PageCache) *CachedLookup {
	return &CachedLookup{
		source:   source,
		cache:    c,
		recorder: cache.NewRecorder(c),
	}
}

func (l *CachedLookup) Lookup(ctx context.Context, title string) (*Page, error) {
	pageName := wiki.TitleToPageName(title)

	cached, err := l.cache.Get(ctx, pageName)
	if err == nil {
		return &Page{Title: title, Exists: true, RedirectsTo: cached.RedirectsTo}, nil
	}
	if !errors.Is(err, cache.ErrNotCached) {
		return nil, err
	}

	info, err := l.source.PageInfo(ctx, title)
	if err != nil {
		return nil, err
	}
	if !info.Exists {
		return &Page{Title: title}, nil
	}

	var content string
	if info.IsRedirect {
		content, err = l.source.PageContent(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("fetch redirect %s: %w", title, err)
		}
	}

	recorded, err := l.recorder.RecordPage(ctx, *info, content)
	if err != nil {
		return nil, err
	}
	return &Page{Title: title, Exists: true, RedirectsTo: recorded.RedirectsTo}, nil
}

// RemoteLookup queries the wiki for every title without caching.
type RemoteLookup struct {
	Source PageSource
}

func (l RemoteLookup) Lookup(ctx context.Context, title string) (*Page, error) {
	info, err := l.Source.PageInfo(ctx, title)
	if err != nil {
		return nil, err
	}
	page := &Page{Title: title, Exists: info.Exists}
	if !info.Exists || !info.IsRedirect {
		return page, nil
	}

	content, err := l.Source.PageContent(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("fetch redirect %s: %w", title, err)
	}
	if target := wiki.FindRedirect(content); target != nil {
		page.RedirectsTo = target.LinkWithHeader()
	}
	return page, nil
}
