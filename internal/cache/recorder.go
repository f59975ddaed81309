package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

// PageSetter stores page info. *Store implements it.
type PageSetter interface {
	Set(ctx context.Context, info PageInfo) error
}

// Recorder classifies a fetched page and updates the cache with it.
type Recorder struct {
	store  PageSetter
	logger *slog.Logger
}

// NewRecorder creates a Recorder writing into store.
func NewRecorder(store PageSetter) *Recorder {
	return &Recorder{store: store, logger: slog.Default()}
}

// RecordPage caches page. Redirect pages are stored with their target, which
// must be present in content; other pages are stored as translated or
// English depending on their title.
func (r *Recorder) RecordPage(ctx context.Context, page wiki.PageInfo, content string) (*PageInfo, error) {
	if !page.Exists {
		return nil, fmt.Errorf("record %s: %w", page.PageName, wiki.ErrPageMissing)
	}

	info := PageInfo{
		PageName:         page.PageName,
		LatestRevisionID: page.LatestRevisionID,
	}

	if page.IsRedirect {
		target := wiki.FindRedirect(content)
		if target == nil {
			return nil, fmt.Errorf("record %s: page is a redirect but no redirect link was found", page.PageName)
		}
		info.Type = Redirect
		info.RedirectsTo = target.LinkWithHeader()
	} else if page.IsTranslated || i18n.IsTranslated(wiki.PageNameToTitle(page.PageName)) {
		info.Type = Translated
	} else {
		info.Type = English
	}

	if err := r.store.Set(ctx, info); err != nil {
		return nil, err
	}
	r.logger.Debug("page cached", "page", info.PageName, "type", info.Type, "revision", info.LatestRevisionID)
	return &info, nil
}
