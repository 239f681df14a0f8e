package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pinnote/pinnote/internal/logger"
	"github.com/pinnote/pinnote/internal/overlay"
	"github.com/pinnote/pinnote/internal/pages"
	"github.com/pinnote/pinnote/internal/store"
	"github.com/pinnote/pinnote/internal/toolbar"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time    // for testing, defaults to time.Now
	AllowedCIDRS   []string            // IPs allowed to access infra endpoints
	AllowedOrigins []string            // origins allowed for CORS and the websocket stream
	TrustProxy     bool                // true if running behind a trusted reverse proxy
	RedisClient    *redis.Client       // redis client connection (nil in tests)
	Store          *store.CommentStore // canonical comment collection
	Overlay        *overlay.Controller // annotation-mode state machine
	Toolbar        *toolbar.Toolbar    // derived counts + mode toggle
	Pages          *pages.Registry     // known dashboard routes
	SitemapFile    string              // path to the sitemap manifest ("" = disabled)
	MaxCommentLen  int                 // rune cap on comment text
	ReloadTrigger  chan struct{}       // channel to trigger manual sitemap reload (nil if disabled)
}
