package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/pages"
)

func writeSitemap(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "sitemap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sitemap file: %v", err)
	}
	return path
}

func TestSitemapReloader_Reload(t *testing.T) {
	log := logger.New("error", false)
	reg := pages.NewRegistry()

	path := writeSitemap(t, t.TempDir(), `---
pages:
  - path: /contacts
    title: Contacts
  - path: /deals
    title: Deals
`)

	sr := NewSitemapReloader(path, reg, log, time.Hour, make(chan struct{}, 1))

	if err := sr.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if reg.Count() != 2 {
		t.Errorf("registry has %v pages, want 2", reg.Count())
	}
	if _, ok := reg.Get("/contacts"); !ok {
		t.Error("registry should know /contacts after reload")
	}
}

func TestSitemapReloader_ReloadSwapsRegistry(t *testing.T) {
	log := logger.New("error", false)
	reg := pages.NewRegistry()
	dir := t.TempDir()

	path := writeSitemap(t, dir, "---\npages:\n  - path: /contacts\n")
	sr := NewSitemapReloader(path, reg, log, time.Hour, make(chan struct{}, 1))

	if err := sr.Reload(); err != nil {
		t.Fatalf("first Reload() error = %v", err)
	}

	writeSitemap(t, dir, "---\npages:\n  - path: /reports\n")
	if err := sr.Reload(); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}

	if _, ok := reg.Get("/contacts"); ok {
		t.Error("old pages should be gone after swap")
	}
	if _, ok := reg.Get("/reports"); !ok {
		t.Error("new pages should be present after swap")
	}
}

func TestSitemapReloader_ReloadMissingFile(t *testing.T) {
	log := logger.New("error", false)
	reg := pages.NewRegistry()

	sr := NewSitemapReloader("/nonexistent/sitemap.yaml", reg, log, time.Hour, make(chan struct{}, 1))

	if err := sr.Reload(); err == nil {
		t.Error("Reload() with missing file should return error")
	}
	if reg.Count() != 0 {
		t.Errorf("failed reload must not touch the registry, got %v pages", reg.Count())
	}
}

func TestSitemapReloader_StartFailsOnBadInitialLoad(t *testing.T) {
	log := logger.New("error", false)
	reg := pages.NewRegistry()

	sr := NewSitemapReloader("/nonexistent/sitemap.yaml", reg, log, time.Hour, make(chan struct{}, 1))

	if err := sr.Start(context.Background()); err == nil {
		t.Error("Start() with missing file should return error")
	}
}

func TestSitemapReloader_ManualTrigger(t *testing.T) {
	log := logger.New("error", false)
	reg := pages.NewRegistry()
	dir := t.TempDir()

	path := writeSitemap(t, dir, "---\npages:\n  - path: /contacts\n")
	trigger := make(chan struct{}, 1)
	sr := NewSitemapReloader(path, reg, log, time.Hour, trigger)

	if err := sr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer sr.Stop()

	writeSitemap(t, dir, "---\npages:\n  - path: /contacts\n  - path: /deals\n")
	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for reg.Count() != 2 {
		select {
		case <-deadline:
			t.Fatalf("manual trigger did not reload, registry has %v pages", reg.Count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}
