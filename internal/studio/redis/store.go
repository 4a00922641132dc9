package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/studio/common"
)

const keyPrefix = "ddlview:parse:"

// Store caches parse results in Redis as JSON, keyed by input checksum.
// Redis failures are logged and the input is parsed directly.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Connect opens a client for url and verifies it with PING.
func Connect(ctx context.Context, url string, ttl time.Duration) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewStore(client, ttl), nil
}

func (s *Store) Parse(ctx context.Context, sql string) (common.ParseResult, error) {
	checksum := parser.Checksum(sql)
	key := keyPrefix + checksum

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var result common.ParseResult
		if err := json.Unmarshal(data, &result); err == nil {
			result.Cached = true
			return result, nil
		}
		log.Printf("Warning: discarding unreadable cache entry %s: %v", key, err)
	case errors.Is(err, redis.Nil):
	case ctx.Err() != nil:
		return common.ParseResult{}, ctx.Err()
	default:
		log.Printf("Warning: redis lookup failed for %s: %v", key, err)
	}

	doc, diags := parser.ParseWithDiagnostics(sql)
	result := common.ParseResult{
		Checksum:    checksum,
		Document:    doc,
		Diagnostics: diags,
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		log.Printf("Warning: failed to cache parse result %s: %v", key, err)
	}
	return result, nil
}

func (s *Store) Name() string { return "redis" }

// TTL returns the remaining lifetime of the cached entry for sql.
func (s *Store) TTL(ctx context.Context, sql string) (time.Duration, error) {
	return s.client.TTL(ctx, keyPrefix+parser.Checksum(sql)).Result()
}

func (s *Store) Close() error {
	return s.client.Close()
}
