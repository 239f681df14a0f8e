package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinnote/pinnote/internal/httpserver/deps"
	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/overlay"
	"github.com/pinnote/pinnote/internal/store"
)

func TestInfraRedisProbeHonorsRequestContext(t *testing.T) {
	log := logger.New("error", false)
	st := store.New(context.Background(), nil, log)

	// Unroutable address with a long dial timeout: only context
	// cancellation can make the probe return quickly.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 5 * time.Second,
		MaxRetries:  -1,
	})
	defer client.Close()

	d := deps.Deps{
		Logger:      log,
		Store:       st,
		Overlay:     overlay.NewController(st, log),
		RedisClient: client,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/infra", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	start := time.Now()
	Infra(d)(rec, req)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second, "cancelled request must cancel the probe")

	var body struct {
		Status     string `json:"status"`
		Components map[string]struct {
			OK bool `json:"ok"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Components["redis"].OK)
}
