package studio

import (
	"context"

	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/studio/common"
)

// ParseStore parses SQL text, possibly answering from a cache.
type ParseStore interface {
	Parse(ctx context.Context, sql string) (common.ParseResult, error)
	Name() string
}

// MemoryStore keeps parse results in a process-local LRU.
type MemoryStore struct {
	cache *parser.Cache
}

func NewMemoryStore(size int) *MemoryStore {
	return &MemoryStore{cache: parser.NewCache(size)}
}

func (m *MemoryStore) Parse(_ context.Context, sql string) (common.ParseResult, error) {
	doc, diags, hit := m.cache.ParseCached(sql)
	return common.ParseResult{
		Checksum:    parser.Checksum(sql),
		Document:    doc,
		Diagnostics: diags,
		Cached:      hit,
	}, nil
}

func (m *MemoryStore) Name() string { return "memory" }
