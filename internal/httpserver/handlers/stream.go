package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pinnote/pinnote/internal/domain"
	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/metrics"
	"github.com/pinnote/pinnote/internal/utils"
)

const (
	streamQueueSize = 64
	streamWriteWait = 10 * time.Second
)

// streamPongWait must exceed streamPingPeriod so a responsive peer always
// refreshes its read deadline in time.
var (
	streamPingPeriod = 30 * time.Second
	streamPongWait   = 75 * time.Second
)

// Stream upgrades to a websocket and forwards one JSON event per store
// mutation, so open dashboard tabs re-render without polling. Delivery
// only: events are dropped (and counted) when a client cannot keep up,
// and concurrent writers to the store remain last-write-wins.
func Stream(d deps.Deps) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(d.AllowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Warn("stream upgrade failed",
				logger.Error(err))
			return
		}
		defer utils.Close(conn)

		session := uuid.NewString()
		events := make(chan domain.Event, streamQueueSize)

		cancel := d.Store.Subscribe(func(evt domain.Event) {
			select {
			case events <- evt:
			default:
				metrics.StreamDroppedEvents.Inc()
			}
		})
		defer cancel()

		metrics.StreamSubscribers.Inc()
		defer metrics.StreamSubscribers.Dec()

		d.Logger.Info("stream client connected",
			logger.String("session", session),
			logger.String("remote_ip", r.RemoteAddr))
		defer d.Logger.Info("stream client disconnected",
			logger.String("session", session))

		// Reader goroutine: we expect no client messages, but reading is
		// what surfaces close frames, pongs, and dead peers. A peer that
		// stops answering pings runs out its read deadline.
		done := make(chan struct{})
		go func() {
			defer close(done)
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(streamPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(streamPingPeriod)
		defer ping.Stop()

		for {
			select {
			case evt := <-events:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteJSON(evt); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}

// originChecker allows the configured dashboard origins; an empty
// allowlist accepts any origin, matching the CORS middleware.
func originChecker(allowedOrigins []string) func(*http.Request) bool {
	if len(allowedOrigins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
