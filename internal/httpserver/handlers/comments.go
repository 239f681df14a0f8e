package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/logger"
)

// maxBodyBytes caps mutation request bodies.
const maxBodyBytes = 32 * 1024

// ListComments returns the collection, optionally filtered to one page,
// in insertion order.
func ListComments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := strings.TrimSpace(r.URL.Query().Get("page"))
		if page != "" {
			writeJSON(w, http.StatusOK, d.Store.ListPage(page))
			return
		}
		writeJSON(w, http.StatusOK, d.Store.List())
	}
}

// UpdateComment replaces a comment's text. An absent id is a silent no-op,
// so the response is 204 either way; the only realistic cause of a miss is
// a stale view.
func UpdateComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonErr(w, "invalid request body", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(req.Text)
		if text == "" {
			jsonErr(w, "text is required", http.StatusBadRequest)
			return
		}
		text = capRunes(text, d.MaxCommentLen)

		d.Store.Update(r.Context(), id, text)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ResolveComment marks a comment resolved. Idempotent.
func ResolveComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Store.Resolve(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteComment removes a comment, resolved or not. No confirmation step
// exists anywhere in this flow; a repeat delete is a no-op.
func DeleteComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		d.Store.Delete(r.Context(), id)
		d.Logger.Info("comment deleted",
			logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// capRunes truncates s to at most n runes. n <= 0 means no cap.
func capRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
