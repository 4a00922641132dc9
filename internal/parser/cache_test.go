package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_HitReturnsEqualDocument(t *testing.T) {
	cache := NewCache(4)

	first := cache.Parse(tasksDDL)
	second := cache.Parse(tasksDDL)

	assert.Equal(t, first, second)
	assert.Equal(t, Parse(tasksDDL), second)
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_KeepsDiagnostics(t *testing.T) {
	cache := NewCache(0)
	input := "CREATE TABLE t (a int, PRIMARY KEY (a));"

	_, first := cache.ParseWithDiagnostics(input)
	_, second := cache.ParseWithDiagnostics(input)

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
}

func TestCache_EvictsOldest(t *testing.T) {
	cache := NewCache(2)
	cache.Parse("CREATE TABLE a (x int);")
	cache.Parse("CREATE TABLE b (x int);")
	cache.Parse("CREATE TABLE c (x int);")
	assert.Equal(t, 2, cache.Len())

	cache.Parse("CREATE TABLE a (x int);")
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(4), misses)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCache_ConcurrentUse(t *testing.T) {
	cache := NewCache(8)
	inputs := []string{tasksDDL, "CREATE TABLE a (x int);", "CREATE TABLE b (y text);"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := inputs[i%len(inputs)]
			assert.Equal(t, Parse(in), cache.Parse(in))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, len(inputs), cache.Len())
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, Checksum("abc"), Checksum("abc"))
	assert.NotEqual(t, Checksum("abc"), Checksum("abd"))
	assert.Len(t, Checksum(""), 64)
}

func TestCache_ParseCachedReportsHits(t *testing.T) {
	cache := NewCache(2)

	_, _, hit := cache.ParseCached(tasksDDL)
	assert.False(t, hit)
	doc, _, hit := cache.ParseCached(tasksDDL)
	assert.True(t, hit)
	assert.Equal(t, []string{"tasks"}, doc.TableNames())
}
