package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholderEmbedding(t *testing.T) {
	t.Parallel()

	t.Run("has requested dimensions", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, PlaceholderEmbedding("def f(): pass", 768), 768)
		assert.Len(t, PlaceholderEmbedding("def f(): pass", 3), 3)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, PlaceholderEmbedding("same text", 32), PlaceholderEmbedding("same text", 32))
		assert.NotEqual(t, PlaceholderEmbedding("text a", 32), PlaceholderEmbedding("text b", 32))
	})

	t.Run("values are within [-1, 1]", func(t *testing.T) {
		t.Parallel()
		for _, v := range PlaceholderEmbedding("bounds", 384) {
			assert.GreaterOrEqual(t, v, float32(-1))
			assert.LessOrEqual(t, v, float32(1))
		}
	})
}

func TestPlaceholderEmbedding_BlocksDiffer(t *testing.T) {
	t.Parallel()

	emb := PlaceholderEmbedding("def handler(): pass", 768)

	for block := 1; block < 768/valuesPerBlock; block++ {
		assert.NotEqual(t,
			emb[:valuesPerBlock],
			emb[block*valuesPerBlock:(block+1)*valuesPerBlock],
			"block %d repeats block 0", block)
	}
	assert.Equal(t, emb[:16], PlaceholderEmbedding("def handler(): pass", 16), "prefix is stable across sizes")
}

func TestChunkTypeFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "function", chunkTypeFor(0))
	assert.Equal(t, "class", chunkTypeFor(1))
	assert.Equal(t, "function", chunkTypeFor(2))
}
