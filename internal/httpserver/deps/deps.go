package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dailyglow/glow/internal/achievement"
	"github.com/dailyglow/glow/internal/catalog"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/selection"
	"github.com/dailyglow/glow/internal/store"
	"github.com/dailyglow/glow/internal/streak"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time // for testing, defaults to time.Now
	AllowedHosts  []string         // Host headers allowed to access the server (empty = any)
	AllowedCIDRS  []string         // IPs allowed to access restricted endpoints
	TrustProxy    bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	LibraryFile   string           // Path to the affirmation library file ("" = builtin)
	RedisClient   *redis.Client    // Redis client connection (nil = in-memory store)
	Store         store.KV         // Persisted deck/user-data store
	Catalog       *catalog.Index   // In-memory affirmation catalog
	Selection     *selection.Service
	Streak        *streak.Tracker
	Achievements  *achievement.Engine
	ReloadTrigger chan struct{} // Channel to trigger manual library reload
}
