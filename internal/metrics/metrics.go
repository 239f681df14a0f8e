// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommentMutations counts applied store mutations by operation
	// (add, update, resolve, delete).
	CommentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinnote_comment_mutations_total",
		Help: "Applied comment store mutations by operation.",
	}, []string{"op"})

	// PersistFailures counts failed full-collection writes. Each failure
	// means in-memory state ran ahead of persisted state.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinnote_persist_failures_total",
		Help: "Failed writes of the persisted comment collection.",
	})

	// StreamSubscribers tracks currently connected event stream clients.
	StreamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pinnote_stream_subscribers",
		Help: "Currently connected websocket event stream clients.",
	})

	// StreamDroppedEvents counts events dropped because a stream client
	// was too slow to drain its queue.
	StreamDroppedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinnote_stream_dropped_events_total",
		Help: "Store events dropped on slow websocket clients.",
	})
)
