package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/RobinCoderZhao/archtranslator/pkg/storage"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), storage.Config{Path: filepath.Join(t.TempDir(), "cache.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Set(ctx, PageInfo{PageName: "Pacman_(Русский)", LatestRevisionID: 42, Type: Translated, RedirectsTo: "ignored"})
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "Pacman_(Русский)")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LatestRevisionID != 42 || got.Type != Translated {
		t.Fatalf("unexpected entry %+v", got)
	}
	if got.RedirectsTo != "" {
		t.Fatalf("non-redirect pages must not keep a target, got %q", got.RedirectsTo)
	}
	if !got.UpdatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected updated_at %v", got.UpdatedAt)
	}
}

func TestStore_Replace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, PageInfo{PageName: "Pacman", LatestRevisionID: 1, Type: English})
	s.Set(ctx, PageInfo{PageName: "Pacman", LatestRevisionID: 2, Type: Redirect, RedirectsTo: "Pacman/Rosetta"})

	got, err := s.Get(ctx, "Pacman")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LatestRevisionID != 2 || got.Type != Redirect || got.RedirectsTo != "Pacman/Rosetta" {
		t.Fatalf("unexpected entry %+v", got)
	}

	n, err := s.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 entry, got %d (%v)", n, err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "Nope"); !errors.Is(err, ErrNotCached) {
		t.Fatalf("expected ErrNotCached, got %v", err)
	}
}

func TestStore_SetValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Set(ctx, PageInfo{Type: English}); err == nil {
		t.Fatal("expected error for empty page name")
	}
	if err := s.Set(ctx, PageInfo{PageName: "Pacman", Type: "bogus"}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestStore_ListDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, PageInfo{PageName: "B", Type: English})
	s.Set(ctx, PageInfo{PageName: "A", Type: English})
	s.Set(ctx, PageInfo{PageName: "A_(Deutsch)", Type: Translated})

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].PageName != "A" {
		t.Fatalf("unexpected list %+v", all)
	}

	english, err := s.List(ctx, English)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(english) != 2 {
		t.Fatalf("expected 2 english pages, got %d", len(english))
	}

	if err := s.Delete(ctx, "A"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "A"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if n, _ := s.Count(ctx); n != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", n)
	}
}

func TestRecorder_RecordPage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	r := NewRecorder(s)

	tests := []struct {
		name     string
		page     wiki.PageInfo
		content  string
		wantType PageType
		wantTo   string
	}{
		{
			name:     "english",
			page:     wiki.PageInfo{PageName: "Pacman", LatestRevisionID: 10, Exists: true},
			content:  "pacman is the package manager",
			wantType: English,
		},
		{
			name:     "translated by title",
			page:     wiki.PageInfo{PageName: "Pacman_(Español)", LatestRevisionID: 11, Exists: true},
			wantType: Translated,
		},
		{
			name:     "redirect",
			page:     wiki.PageInfo{PageName: "Pacman.conf", LatestRevisionID: 12, IsRedirect: true, Exists: true},
			content:  "#REDIRECT [[pacman#Configuration]]",
			wantType: Redirect,
			wantTo:   "Pacman#Configuration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := r.RecordPage(ctx, tt.page, tt.content)
			if err != nil {
				t.Fatalf("record: %v", err)
			}
			if info.Type != tt.wantType || info.RedirectsTo != tt.wantTo {
				t.Fatalf("got %+v", info)
			}

			stored, err := s.Get(ctx, tt.page.PageName)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if stored.Type != tt.wantType || stored.LatestRevisionID != tt.page.LatestRevisionID {
				t.Fatalf("stored %+v", stored)
			}
		})
	}
}

func TestRecorder_RedirectWithoutTarget(t *testing.T) {
	r := NewRecorder(newTestStore(t))
	_, err := r.RecordPage(context.Background(), wiki.PageInfo{PageName: "Broken", IsRedirect: true, Exists: true}, "no link here")
	if err == nil {
		t.Fatal("expected error for redirect without target")
	}
}

func TestRecorder_MissingPage(t *testing.T) {
	r := NewRecorder(newTestStore(t))
	_, err := r.RecordPage(context.Background(), wiki.PageInfo{PageName: "Gone"}, "")
	if !errors.Is(err, wiki.ErrPageMissing) {
		t.Fatalf("expected ErrPageMissing, got %v", err)
	}
}
