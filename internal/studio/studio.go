package studio

import (
	"context"
	"fmt"
	"io"

	"github.com/Rana718/ddlview/internal/config"
	"github.com/Rana718/ddlview/internal/studio/redis"
)

// New builds a studio server from cfg. Parse results are cached in Redis when
// the configured Redis URL variable is set, and in memory otherwise.
func New(ctx context.Context, cfg *config.Config, port int, accessLog io.Writer) (*Server, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewServer(Options{
		Port:       port,
		SchemaPath: cfg.SchemaPath,
		Store:      store,
		AccessLog:  accessLog,
	}), nil
}

func newStore(ctx context.Context, cfg *config.Config) (ParseStore, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return NewMemoryStore(cfg.Cache.Size), nil
	}

	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}

	store, err := redis.Connect(ctx, redisURL, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to set up parse cache: %w", err)
	}
	return store, nil
}
