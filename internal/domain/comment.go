package domain

import "time"

// Position is a fixed placement in document space, captured at click time.
// It is absolute pixel coordinates relative to the full document, not the
// viewport, so a bubble does not track element movement or scrolling.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Comment is the persisted annotation entity.
//
// A Comment is uniquely identified by its ID for the lifetime of the
// collection. Page and ElementID are immutable after creation; only Text
// and Resolved may change, and Resolved moves one way (false to true).
type Comment struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Format: comment-<unix-millis>-<base36 suffix>.
	ID string `json:"id"`

	// ElementID labels the element the comment is anchored to.
	// Synthesized ("el-" prefix) when the clicked element reported none.
	// It is a label only; Position is what places the bubble.
	ElementID string `json:"elementId"`

	// Page is the dashboard route the comment was created on.
	// Example: /contacts
	Page string `json:"page"`

	// ─────────────────────────────
	// Content & placement
	// ─────────────────────────────

	// Text is the user-entered body. Mutable via update.
	Text string `json:"text"`

	// Position is where the bubble renders, fixed at creation.
	Position Position `json:"position"`

	// ─────────────────────────────
	// Metadata & lifecycle
	// ─────────────────────────────

	// CreatedAt is an RFC 3339 timestamp, set once at creation.
	CreatedAt string `json:"createdAt"`

	// Resolved transitions false -> true only. There is no unresolve.
	Resolved bool `json:"resolved"`
}

// Draft is an uncommitted comment being composed. It holds everything a
// Comment needs except the text, which arrives on submit.
type Draft struct {
	ElementID string   `json:"elementId"`
	Page      string   `json:"page"`
	Position  Position `json:"position"`
}

// Page is a known dashboard route from the sitemap manifest.
type Page struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// NewComment builds a Comment from a committed draft.
func NewComment(draft Draft, text string) Comment {
	return Comment{
		ID:        NewCommentID(),
		ElementID: draft.ElementID,
		Page:      draft.Page,
		Text:      text,
		Position:  draft.Position,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Resolved:  false,
	}
}
