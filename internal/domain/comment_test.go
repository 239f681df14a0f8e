package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewCommentID(t *testing.T) {
	id := NewCommentID()

	if !strings.HasPrefix(id, "comment-") {
		t.Errorf("NewCommentID() = %v, want comment- prefix", id)
	}

	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("NewCommentID() = %v, want comment-<millis>-<suffix>", id)
	}
	if len(parts[2]) != 7 {
		t.Errorf("suffix length = %v, want 7", len(parts[2]))
	}
}

func TestNewCommentIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewCommentID()
		if seen[id] {
			t.Fatalf("NewCommentID() produced duplicate %v", id)
		}
		seen[id] = true
	}
}

func TestNewAnchorID(t *testing.T) {
	id := NewAnchorID()
	if !strings.HasPrefix(id, "el-") {
		t.Errorf("NewAnchorID() = %v, want el- prefix", id)
	}
	if len(id) != len("el-")+7 {
		t.Errorf("NewAnchorID() length = %v, want %v", len(id), len("el-")+7)
	}
}

func TestNewComment(t *testing.T) {
	draft := Draft{
		ElementID: "el-abc1234",
		Page:      "/contacts",
		Position:  Position{X: 120.5, Y: 340},
	}

	c := NewComment(draft, "check this header")

	if c.ID == "" {
		t.Fatal("NewComment() produced empty ID")
	}
	if c.ElementID != draft.ElementID {
		t.Errorf("ElementID = %v, want %v", c.ElementID, draft.ElementID)
	}
	if c.Page != draft.Page {
		t.Errorf("Page = %v, want %v", c.Page, draft.Page)
	}
	if c.Text != "check this header" {
		t.Errorf("Text = %v, want check this header", c.Text)
	}
	if c.Position != draft.Position {
		t.Errorf("Position = %v, want %v", c.Position, draft.Position)
	}
	if c.Resolved {
		t.Error("NewComment() should start unresolved")
	}

	if _, err := time.Parse(time.RFC3339, c.CreatedAt); err != nil {
		t.Errorf("CreatedAt %v is not RFC 3339: %v", c.CreatedAt, err)
	}
}
