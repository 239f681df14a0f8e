package handlers

import (
	"net/http"
	"strings"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/toolbar"
)

type toolbarResponse struct {
	toolbar.Counts
	Pages []toolbar.PageCounts `json:"pages"`
}

// Toolbar returns the counts for the current page plus the per-page
// breakdown. Everything here is derived from the store on each call.
func Toolbar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := strings.TrimSpace(r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, toolbarResponse{
			Counts: d.Toolbar.Counts(page),
			Pages:  d.Toolbar.Breakdown(),
		})
	}
}

// ToolbarToggle flips annotation mode through the toolbar, as the
// dashboard's toggle button does.
func ToolbarToggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"mode": d.Toolbar.Toggle(),
		})
	}
}
