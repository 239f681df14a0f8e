// Package store owns the canonical comment collection. All mutations flow
// through CommentStore; views hold read-only snapshots plus a subscription.
package store

import (
	"context"
	"sync"

	"github.com/pinnote/pinnote/internal/domain"
	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/metrics"
)

// Persister saves and loads the whole collection as one unit. The store
// rewrites the full collection after every mutation; there are no
// incremental writes.
type Persister interface {
	// Load returns the persisted collection. Implementations recover from
	// malformed persisted state by returning an empty collection.
	Load(ctx context.Context) ([]domain.Comment, error)
	// Save overwrites the persisted collection.
	Save(ctx context.Context, comments []domain.Comment) error
}

// CommentStore is the single source of truth for comments.
//
// The in-memory slice is canonical and insertion-ordered. Persistence is
// best effort: a failed save leaves memory and storage diverged, which is
// logged and counted but not repaired. Subscribers are invoked
// synchronously after each applied mutation.
type CommentStore struct {
	mu        sync.Mutex
	comments  []domain.Comment
	persister Persister
	log       logger.Logger

	subs    map[int]func(domain.Event)
	nextSub int
}

// New creates a store and hydrates it from the persister. A nil persister
// gives a memory-only store. Hydration failures are not fatal: the store
// starts empty and the reason is logged.
func New(ctx context.Context, persister Persister, log logger.Logger) *CommentStore {
	s := &CommentStore{
		persister: persister,
		log:       log,
		subs:      make(map[int]func(domain.Event)),
	}

	if persister != nil {
		comments, err := persister.Load(ctx)
		if err != nil {
			log.Warn("failed to hydrate comments, starting empty",
				logger.Error(err))
		} else {
			s.comments = comments
			log.Info("hydrated comments",
				logger.Int("count", len(comments)))
		}
	}

	return s
}

// Add commits a draft as a new comment and returns it. The store performs
// no validation on text; gating empty submissions is the caller's job.
func (s *CommentStore) Add(ctx context.Context, draft domain.Draft, text string) domain.Comment {
	comment := domain.NewComment(draft, text)

	s.mu.Lock()
	s.comments = append(s.comments, comment)
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	metrics.CommentMutations.WithLabelValues("add").Inc()
	s.persist(ctx, snapshot)
	notify(subs, domain.Event{Type: domain.EventAdded, Comment: comment})
	return comment
}

// Update replaces the text of the comment with the given id.
// Silent no-op when the id is absent.
func (s *CommentStore) Update(ctx context.Context, id, text string) {
	s.mutate(ctx, id, "update", domain.EventUpdated, func(c *domain.Comment) {
		c.Text = text
	})
}

// Resolve marks the comment resolved. Idempotent; the transition is
// monotonic and nothing in the store sets Resolved back to false.
// Silent no-op when the id is absent.
func (s *CommentStore) Resolve(ctx context.Context, id string) {
	s.mutate(ctx, id, "resolve", domain.EventResolved, func(c *domain.Comment) {
		c.Resolved = true
	})
}

// Delete removes the comment with the given id, resolved or not.
// Silent no-op when the id is absent.
func (s *CommentStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.comments[idx]
	s.comments = append(s.comments[:idx], s.comments[idx+1:]...)
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	metrics.CommentMutations.WithLabelValues("delete").Inc()
	s.persist(ctx, snapshot)
	notify(subs, domain.Event{Type: domain.EventDeleted, Comment: removed})
}

// List returns a copy of the full collection in insertion order.
func (s *CommentStore) List() []domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ListPage returns a copy of the comments created on the given page,
// in insertion order.
func (s *CommentStore) ListPage(page string) []domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		if c.Page == page {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the comment with the given id.
func (s *CommentStore) Get(id string) (domain.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.comments[idx], true
	}
	return domain.Comment{}, false
}

// Count returns the number of comments in the collection.
func (s *CommentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// Subscribe registers fn to be called synchronously after each applied
// mutation. The returned func cancels the subscription.
func (s *CommentStore) Subscribe(fn func(domain.Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn to the comment with the given id, then persists and
// publishes. Shared shape of Update and Resolve.
func (s *CommentStore) mutate(ctx context.Context, id, op string, evt domain.EventType, fn func(*domain.Comment)) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	fn(&s.comments[idx])
	changed := s.comments[idx]
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	metrics.CommentMutations.WithLabelValues(op).Inc()
	s.persist(ctx, snapshot)
	notify(subs, domain.Event{Type: evt, Comment: changed})
}

func (s *CommentStore) indexLocked(id string) int {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CommentStore) snapshotLocked() []domain.Comment {
	out := make([]domain.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

func (s *CommentStore) subscribersLocked() []func(domain.Event) {
	out := make([]func(domain.Event), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// persist rewrites the whole persisted collection. Failures leave memory
// ahead of storage; the next restart reflects the stale persisted state.
func (s *CommentStore) persist(ctx context.Context, snapshot []domain.Comment) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, snapshot); err != nil {
		metrics.PersistFailures.Inc()
		s.log.Warn("failed to persist comments, memory and storage diverged",
			logger.Int("count", len(snapshot)),
			logger.Error(err))
	}
}

func notify(subs []func(domain.Event), evt domain.Event) {
	for _, fn := range subs {
		fn(evt)
	}
}
