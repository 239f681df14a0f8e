package handlers

import (
	"net/http"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/logger"
)

// Reload triggers a manual reload of the sitemap manifest.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			jsonErr(w, "sitemap not configured", http.StatusServiceUnavailable)
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual sitemap reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("reload triggered\n"))
		default:
			d.Logger.Warn("sitemap reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("reload already in progress, please wait\n"))
		}
	}
}
