package prefilter

import (
	"fmt"
	"math"
)

// Cosine computes the cosine similarity between two embedding vectors.
// Vectors must be the same length and non-zero.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty embedding vector")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensionality mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
