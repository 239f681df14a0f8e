// Package overlay mediates between annotation mode and the comment store:
// it evaluates page clicks while the mode is on and turns qualifying ones
// into draft prompts.
package overlay

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/pinnote/pinnote/internal/domain"
	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/store"
)

// State of the annotation overlay. This is a persistent UI mode, not a
// finite process; there is no terminal state.
type State string

const (
	// StateIdle: mode off, clicks pass through untouched.
	StateIdle State = "idle"
	// StateArmed: mode on, waiting for a qualifying click.
	StateArmed State = "armed"
	// StateDrafting: mode on, a draft editor is open; further clicks are
	// suppressed until the draft is submitted or cancelled.
	StateDrafting State = "drafting"
)

const (
	// ToolbarElementID is the element the toolbar renders under. Clicks on
	// it never open drafts.
	ToolbarElementID = "feedback-toolbar"
	// BubbleIDPrefix prefixes the element ID of every rendered bubble.
	BubbleIDPrefix = "bubble-"
)

var (
	// ErrNoDraft is returned by Submit when no draft is open.
	ErrNoDraft = errors.New("overlay: no draft open")
	// ErrEmptyDraft is returned by Submit for empty or whitespace-only
	// text. The draft stays open.
	ErrEmptyDraft = errors.New("overlay: draft text is empty")
)

// Click is a page click reported by the dashboard while annotation mode
// may be on. ElementID is the clicked node's own identifier, empty when it
// has none; ElementPath is a structural path used to key synthesized
// anchors.
type Click struct {
	Page        string          `json:"page"`
	Position    domain.Position `json:"position"`
	ElementID   string          `json:"element_id"`
	ElementPath string          `json:"element_path"`
}

// ClickResult reports what a click did. When Opened is false the click was
// ignored (mode off, draft already open, or click on the overlay's own UI).
type ClickResult struct {
	Opened         bool
	Draft          domain.Draft
	AnchorAssigned bool
}

// Controller owns the annotation-mode state machine. Single-writer: all
// transitions come from one input stream (the user driving the dashboard).
type Controller struct {
	mu      sync.Mutex
	state   State
	draft   *domain.Draft
	store   *store.CommentStore
	anchors *AnchorRegistry
	log     logger.Logger
}

// NewController creates a controller in the Idle state.
func NewController(st *store.CommentStore, log logger.Logger) *Controller {
	return &Controller{
		state:   StateIdle,
		store:   st,
		anchors: NewAnchorRegistry(),
		log:     log,
	}
}

// Toggle flips annotation mode. Turning the mode off from Drafting
// discards the open draft without touching the store.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle {
		c.state = StateArmed
	} else {
		c.state = StateIdle
		c.draft = nil
	}
	c.log.Debug("annotation mode toggled",
		logger.String("state", string(c.state)))
	return c.state
}

// State returns the current overlay state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns the open draft, if any.
func (c *Controller) Draft() (domain.Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Draft{}, false
	}
	return *c.draft, true
}

// Click evaluates a page click. A qualifying click resolves the anchor,
// opens a draft at the click coordinates and moves to Drafting; anything
// else is a no-op.
func (c *Controller) Click(click Click) ClickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateArmed {
		return ClickResult{}
	}
	if isOverlayTarget(click) {
		c.log.Debug("ignoring click on overlay UI",
			logger.String("element_id", click.ElementID))
		return ClickResult{}
	}

	anchorID, assign := c.anchors.Resolve(click.ElementID, click.ElementPath)
	draft := domain.Draft{
		ElementID: anchorID,
		Page:      click.Page,
		Position:  click.Position,
	}
	c.draft = &draft
	c.state = StateDrafting

	c.log.Info("draft opened",
		logger.String("page", click.Page),
		logger.String("anchor", anchorID),
		logger.Float64("x", click.Position.X),
		logger.Float64("y", click.Position.Y))

	return ClickResult{Opened: true, Draft: draft, AnchorAssigned: assign}
}

// Submit commits the open draft with the given text. Empty or
// whitespace-only text is refused and the draft stays open; on success the
// comment is added to the store and the overlay returns to Armed.
func (c *Controller) Submit(ctx context.Context, text string) (domain.Comment, error) {
	c.mu.Lock()
	if c.state != StateDrafting || c.draft == nil {
		c.mu.Unlock()
		return domain.Comment{}, ErrNoDraft
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.mu.Unlock()
		return domain.Comment{}, ErrEmptyDraft
	}

	draft := *c.draft
	c.draft = nil
	c.state = StateArmed
	c.mu.Unlock()

	comment := c.store.Add(ctx, draft, trimmed)
	c.log.Info("draft committed",
		logger.String("id", comment.ID),
		logger.String("page", comment.Page))
	return comment, nil
}

// Cancel discards the open draft and returns to Armed. Reports whether a
// draft was actually open.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDrafting {
		return false
	}
	c.draft = nil
	c.state = StateArmed
	c.log.Debug("draft cancelled")
	return true
}

// isOverlayTarget reports whether the click landed on the overlay's own UI
// (a bubble or the toolbar), directly or via an ancestor in the path.
// Annotating the annotation UI itself is not allowed.
func isOverlayTarget(click Click) bool {
	if click.ElementID == ToolbarElementID || strings.HasPrefix(click.ElementID, BubbleIDPrefix) {
		return true
	}
	if strings.Contains(click.ElementPath, "#"+ToolbarElementID) {
		return true
	}
	return strings.Contains(click.ElementPath, "#"+BubbleIDPrefix)
}
