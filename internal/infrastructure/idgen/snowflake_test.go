package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_PrefixAndUniqueness(t *testing.T) {
	g, err := NewSnowflake(1)
	require.NoError(t, err)

	const workers, perWorker = 8, 500
	var (
		mu   sync.Mutex
		seen = make(map[string]bool, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := g.NewID("ent_")
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
	for id := range seen {
		assert.True(t, strings.HasPrefix(id, "ent_"))
	}
}

func TestNewID_Increasing(t *testing.T) {
	g, err := NewSnowflake(2)
	require.NoError(t, err)
	prev := g.node.Generate()
	for i := 0; i < 100; i++ {
		next := g.node.Generate()
		assert.Greater(t, next.Int64(), prev.Int64())
		prev = next
	}
}

func TestNewSnowflake_InvalidNode(t *testing.T) {
	_, err := NewSnowflake(4096)
	assert.Error(t, err)
}
