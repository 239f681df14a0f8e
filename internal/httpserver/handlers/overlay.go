package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pinnote/pinnote/internal/domain"
	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/overlay"
)

type overlayStateResponse struct {
	Mode  overlay.State `json:"mode"`
	Draft *domain.Draft `json:"draft,omitempty"`
}

// OverlayState reports the current annotation mode and any open draft.
func OverlayState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := overlayStateResponse{Mode: d.Overlay.State()}
		if draft, ok := d.Overlay.Draft(); ok {
			resp.Draft = &draft
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// OverlayToggle flips annotation mode.
func OverlayToggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, overlayStateResponse{Mode: d.Overlay.Toggle()})
	}
}

type clickRequest struct {
	Page        string  `json:"page"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ElementID   string  `json:"element_id"`
	ElementPath string  `json:"element_path"`
}

type clickResponse struct {
	Draft          domain.Draft `json:"draft"`
	AnchorAssigned bool         `json:"anchor_assigned"`
}

// OverlayClick evaluates a reported page click. 201 with the opened draft
// and resolved anchor when the click qualifies, 204 when it was ignored.
// AnchorAssigned tells the client to write the returned element ID onto
// the clicked node so later clicks resolve to the same anchor.
func OverlayClick(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req clickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonErr(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Page) == "" {
			jsonErr(w, "page is required", http.StatusBadRequest)
			return
		}

		result := d.Overlay.Click(overlay.Click{
			Page:        req.Page,
			Position:    domain.Position{X: req.X, Y: req.Y},
			ElementID:   req.ElementID,
			ElementPath: req.ElementPath,
		})
		if !result.Opened {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusCreated, clickResponse{
			Draft:          result.Draft,
			AnchorAssigned: result.AnchorAssigned,
		})
	}
}

// OverlaySubmit commits the open draft. 400 for empty text (draft stays
// open), 409 when no draft is open.
func OverlaySubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonErr(w, "invalid request body", http.StatusBadRequest)
			return
		}
		text := capRunes(req.Text, d.MaxCommentLen)

		comment, err := d.Overlay.Submit(r.Context(), text)
		switch {
		case errors.Is(err, overlay.ErrEmptyDraft):
			jsonErr(w, "text is required", http.StatusBadRequest)
		case errors.Is(err, overlay.ErrNoDraft):
			jsonErr(w, "no draft open", http.StatusConflict)
		case err != nil:
			jsonErr(w, "internal error", http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusCreated, comment)
		}
	}
}

// OverlayCancel discards the open draft without touching the store.
func OverlayCancel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Overlay.Cancel()
		w.WriteHeader(http.StatusNoContent)
	}
}
