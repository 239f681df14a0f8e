// Package toolbar derives the aggregate numbers the dashboard toolbar
// shows. Counts are computed from the store on demand, never stored.
package toolbar

import (
	"sort"

	"github.com/pinnote/pinnote/internal/overlay"
	"github.com/pinnote/pinnote/internal/pages"
	"github.com/pinnote/pinnote/internal/store"
)

// Counts is the toolbar's view for one page: annotation mode plus the
// aggregate comment numbers.
type Counts struct {
	Mode         overlay.State `json:"mode"`
	Total        int           `json:"total"`
	Resolved     int           `json:"resolved"`
	Active       int           `json:"active"`
	PageTotal    int           `json:"page_total"`
	PageActive   int           `json:"page_active"`
	PageResolved int           `json:"page_resolved"`
}

// PageCounts is one row of the per-page breakdown.
type PageCounts struct {
	Page     string `json:"page"`
	Title    string `json:"title,omitempty"`
	Total    int    `json:"total"`
	Active   int    `json:"active"`
	Resolved int    `json:"resolved"`
}

// Toolbar toggles annotation mode and answers count queries.
type Toolbar struct {
	store      *store.CommentStore
	controller *overlay.Controller
	pages      *pages.Registry
}

func New(st *store.CommentStore, ctrl *overlay.Controller, reg *pages.Registry) *Toolbar {
	return &Toolbar{
		store:      st,
		controller: ctrl,
		pages:      reg,
	}
}

// Toggle flips annotation mode and returns the new state.
func (t *Toolbar) Toggle() overlay.State {
	return t.controller.Toggle()
}

// Counts computes the toolbar numbers for the given page.
// Active is always total minus resolved.
func (t *Toolbar) Counts(page string) Counts {
	c := Counts{Mode: t.controller.State()}

	for _, comment := range t.store.List() {
		c.Total++
		if comment.Resolved {
			c.Resolved++
		}
		if comment.Page == page {
			c.PageTotal++
			if comment.Resolved {
				c.PageResolved++
			}
		}
	}
	c.Active = c.Total - c.Resolved
	c.PageActive = c.PageTotal - c.PageResolved
	return c
}

// Breakdown returns per-page counts: sitemap pages first in manifest
// order, then any page carrying comments that the manifest does not know,
// sorted by path. Sitemap pages appear even with zero comments.
func (t *Toolbar) Breakdown() []PageCounts {
	known := t.pages.All()
	rows := make([]PageCounts, 0, len(known))
	index := make(map[string]int, len(known))
	for _, p := range known {
		index[p.Path] = len(rows)
		rows = append(rows, PageCounts{Page: p.Path, Title: p.Title})
	}

	var extras []string
	extraIndex := make(map[string]int)
	extraRows := []PageCounts{}

	for _, comment := range t.store.List() {
		if i, ok := index[comment.Page]; ok {
			bump(&rows[i], comment.Resolved)
			continue
		}
		i, ok := extraIndex[comment.Page]
		if !ok {
			i = len(extraRows)
			extraIndex[comment.Page] = i
			extraRows = append(extraRows, PageCounts{Page: comment.Page})
			extras = append(extras, comment.Page)
		}
		bump(&extraRows[i], comment.Resolved)
	}

	sort.Strings(extras)
	for _, path := range extras {
		rows = append(rows, extraRows[extraIndex[path]])
	}
	return rows
}

func bump(row *PageCounts, resolved bool) {
	row.Total++
	if resolved {
		row.Resolved++
	} else {
		row.Active++
	}
}
