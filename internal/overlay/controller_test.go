package overlay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinnote/pinnote/internal/domain"
	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/store"
)

func newTestController(t *testing.T) (*Controller, *store.CommentStore) {
	t.Helper()
	log := logger.New("error", false)
	st := store.New(context.Background(), nil, log)
	return NewController(st, log), st
}

func pageClick() Click {
	return Click{
		Page:        "/contacts",
		Position:    domain.Position{X: 120, Y: 340},
		ElementID:   "contact-row-17",
		ElementPath: "main > table > tr#contact-row-17",
	}
}

func TestToggleFlipsMode(t *testing.T) {
	c, _ := newTestController(t)

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, StateArmed, c.Toggle())
	assert.Equal(t, StateIdle, c.Toggle())
}

func TestToggleFromDraftingDiscardsDraft(t *testing.T) {
	c, st := newTestController(t)
	c.Toggle()
	res := c.Click(pageClick())
	require.True(t, res.Opened)
	require.Equal(t, StateDrafting, c.State())

	assert.Equal(t, StateIdle, c.Toggle())

	_, open := c.Draft()
	assert.False(t, open, "toggle off must discard the draft")
	assert.Equal(t, 0, st.Count(), "discarded draft must not reach the store")
}

func TestClickIgnoredWhenIdle(t *testing.T) {
	c, _ := newTestController(t)

	res := c.Click(pageClick())

	assert.False(t, res.Opened)
	assert.Equal(t, StateIdle, c.State())
}

func TestClickOpensDraft(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	res := c.Click(pageClick())

	require.True(t, res.Opened)
	assert.Equal(t, StateDrafting, c.State())
	assert.Equal(t, "/contacts", res.Draft.Page)
	assert.Equal(t, "contact-row-17", res.Draft.ElementID)
	assert.False(t, res.AnchorAssigned, "element reported its own ID")

	draft, open := c.Draft()
	require.True(t, open)
	assert.Equal(t, res.Draft, draft)
}

func TestClickWhileDraftingIsSuppressed(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()
	first := c.Click(pageClick())
	require.True(t, first.Opened)

	second := c.Click(Click{Page: "/deals", Position: domain.Position{X: 1, Y: 2}})

	assert.False(t, second.Opened)
	draft, _ := c.Draft()
	assert.Equal(t, first.Draft, draft, "open draft must survive extra clicks")
}

func TestClickOnToolbarIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	res := c.Click(Click{
		Page:      "/contacts",
		ElementID: ToolbarElementID,
	})

	assert.False(t, res.Opened)
	assert.Equal(t, StateArmed, c.State())
}

func TestClickOnBubbleIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	res := c.Click(Click{
		Page:      "/contacts",
		ElementID: BubbleIDPrefix + "comment-123-abcdefg",
	})

	assert.False(t, res.Opened)
}

func TestClickInsideOverlayPathIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	res := c.Click(Click{
		Page:        "/contacts",
		ElementID:   "resolve-button",
		ElementPath: "body > div#bubble-comment-1-xyzzzzz > button#resolve-button",
	})

	assert.False(t, res.Opened, "descendants of a bubble are overlay UI")
}

func TestClickSynthesizesAnchorForAnonymousElement(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	res := c.Click(Click{
		Page:        "/contacts",
		ElementPath: "main > div:nth-child(2) > p",
	})

	require.True(t, res.Opened)
	assert.True(t, res.AnchorAssigned)
	assert.Contains(t, res.Draft.ElementID, "el-")
}

func TestSameAnonymousElementReusesAnchor(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	path := "main > div:nth-child(2) > p"
	first := c.Click(Click{Page: "/contacts", ElementPath: path})
	require.True(t, first.Opened)
	require.True(t, c.Cancel())

	second := c.Click(Click{Page: "/contacts", ElementPath: path})
	require.True(t, second.Opened)
	assert.Equal(t, first.Draft.ElementID, second.Draft.ElementID)
}

func TestSubmitCommitsDraft(t *testing.T) {
	c, st := newTestController(t)
	c.Toggle()
	res := c.Click(pageClick())
	require.True(t, res.Opened)

	comment, err := c.Submit(context.Background(), "  needs a better label  ")

	require.NoError(t, err)
	assert.Equal(t, "needs a better label", comment.Text, "text is trimmed")
	assert.Equal(t, res.Draft.ElementID, comment.ElementID)
	assert.Equal(t, res.Draft.Position, comment.Position)
	assert.Equal(t, StateArmed, c.State(), "submit returns to armed")
	assert.Equal(t, 1, st.Count())
}

func TestSubmitEmptyTextKeepsDraftOpen(t *testing.T) {
	c, st := newTestController(t)
	c.Toggle()
	require.True(t, c.Click(pageClick()).Opened)

	_, err := c.Submit(context.Background(), "   \n\t ")

	assert.ErrorIs(t, err, ErrEmptyDraft)
	assert.Equal(t, StateDrafting, c.State())
	_, open := c.Draft()
	assert.True(t, open)
	assert.Equal(t, 0, st.Count())
}

func TestSubmitWithoutDraft(t *testing.T) {
	c, _ := newTestController(t)
	c.Toggle()

	_, err := c.Submit(context.Background(), "orphan text")

	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestCancelDiscardsDraft(t *testing.T) {
	c, st := newTestController(t)
	c.Toggle()
	require.True(t, c.Click(pageClick()).Opened)

	assert.True(t, c.Cancel())
	assert.Equal(t, StateArmed, c.State())
	_, open := c.Draft()
	assert.False(t, open)
	assert.Equal(t, 0, st.Count())

	// Cancel with nothing open reports false.
	assert.False(t, c.Cancel())
}
