// Package scheduler runs the periodic background work of the service.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/pages"
	"github.com/pinnote/pinnote/internal/sources/sitemap"
)

// SitemapReloader refreshes the page registry from the sitemap manifest,
// on an interval and on manual trigger.
type SitemapReloader struct {
	loader        *sitemap.Loader
	mapper        *sitemap.Mapper
	registry      *pages.Registry
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewSitemapReloader(
	sitemapFile string,
	registry *pages.Registry,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SitemapReloader {
	return &SitemapReloader{
		loader:        sitemap.NewLoader(sitemapFile),
		mapper:        sitemap.NewMapper(),
		registry:      registry,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the manifest immediately, then refreshes periodically until
// Stop or context cancellation.
func (sr *SitemapReloader) Start(ctx context.Context) error {
	if err := sr.Reload(); err != nil {
		return fmt.Errorf("initial sitemap load failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(); err != nil {
					sr.logger.Error("failed to reload sitemap",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual sitemap reload triggered")
				if err := sr.Reload(); err != nil {
					sr.logger.Error("failed to reload sitemap",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (sr *SitemapReloader) Stop() {
	close(sr.stopCh)
}

// Reload parses the manifest and swaps the page registry.
func (sr *SitemapReloader) Reload() error {
	config, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load sitemap: %w", err)
	}

	newPages, err := sr.mapper.MapPages(config)
	if err != nil {
		return fmt.Errorf("failed to map sitemap pages: %w", err)
	}

	sr.registry.Update(newPages)
	sr.logger.Info("sitemap reloaded",
		logger.Int("pages", len(newPages)))
	return nil
}
