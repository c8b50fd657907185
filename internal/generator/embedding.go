package generator

import (
	"crypto/sha256"
	"encoding/binary"
)

// DefaultEmbeddingDimensions matches nomic-embed-text, the model the
// Codebase MCP Server's code_chunks.embedding column is sized for.
const DefaultEmbeddingDimensions = 768

// valuesPerBlock is how many float32 values one sha256 digest yields.
const valuesPerBlock = sha256.Size / 4

// PlaceholderEmbedding derives a deterministic vector of the given size from text.
// Each block of 8 values comes from sha256(text || block index), so blocks
// do not repeat. Values lie in [-1, 1]; only the dimensionality matters to the schema.
func PlaceholderEmbedding(text string, dimensions int) []float32 {
	embedding := make([]float32, dimensions)

	buf := make([]byte, len(text)+4)
	copy(buf, text)

	var hash [sha256.Size]byte
	for j := 0; j < dimensions; j++ {
		if j%valuesPerBlock == 0 {
			binary.BigEndian.PutUint32(buf[len(text):], uint32(j/valuesPerBlock))
			hash = sha256.Sum256(buf)
		}
		offset := (j % valuesPerBlock) * 4
		val := binary.BigEndian.Uint32(hash[offset : offset+4])
		embedding[j] = (float32(val)/float32(1<<32))*2.0 - 1.0
	}

	return embedding
}
