package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Comments    *int   `json:"comments,omitempty"`
	PagesLoaded *int   `json:"pages_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports component health: comment store, redis persistence, and
// the sitemap registry.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentCount := d.Store.Count()

		components := map[string]componentStatus{
			"store": {
				OK:       true,
				Comments: &commentCount,
				Mode:     string(d.Overlay.State()),
			},
			"redis":   checkRedis(r.Context(), d),
			"sitemap": sitemapStatus(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: false, Error: "not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}

func sitemapStatus(d deps.Deps) componentStatus {
	if d.SitemapFile == "" {
		return componentStatus{OK: true, Mode: "disabled"}
	}

	count := d.Pages.Count()
	lastReload := "never"
	if t := d.Pages.LastReload(); !t.IsZero() {
		lastReload = t.Format("2006-01-02 15:04:05")
	}
	return componentStatus{
		OK:          count > 0,
		PagesLoaded: &count,
		LastReload:  lastReload,
	}
}

// overallStatus is "ok" when everything is healthy and "degraded" when
// redis is down (comments survive in memory but not a restart) or the
// sitemap failed to load.
func overallStatus(components map[string]componentStatus) string {
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}
