package vectorindex

import (
	"fmt"
	"sort"
)

// FlatIndex is an exact nearest-neighbor structure over a document's
// chunk embeddings, ranked by squared Euclidean distance. It is cheap
// to rebuild, so callers construct a fresh one per retrieval request
// from whatever is currently stored for the document - there is no
// delete or persistence.
//
// Chunk counts here are tens to low hundreds; swap in an approximate
// index behind the same Search contract if that ever stops being true.
type FlatIndex struct {
	dimension int
	vectors   [][]float32
	payloads  []string
}

type Hit struct {
	Payload  string
	Distance float32
	Ord      int //insertion order, also the tie-breaker
}

func New(dimension int) (*FlatIndex, error) {
	if dimension < 1 {
		return nil, fmt.Errorf("invalid index dimension %d", dimension)
	}
	return &FlatIndex{dimension: dimension}, nil
}

func (idx *FlatIndex) Add(vector []float32, payload string) error {
	if len(vector) != idx.dimension {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vector), idx.dimension)
	}
	idx.vectors = append(idx.vectors, vector)
	idx.payloads = append(idx.payloads, payload)
	return nil
}

func (idx *FlatIndex) Len() int {
	return len(idx.vectors)
}

// Search returns the min(k, Len()) nearest entries sorted by
// non-decreasing squared L2 distance. Exact ties keep insertion order,
// lower ordinal first, so results are reproducible.
func (idx *FlatIndex) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), idx.dimension)
	}
	if k < 0 {
		return nil, fmt.Errorf("negative k %d", k)
	}
	if k == 0 || len(idx.vectors) == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = Hit{
			Payload:  idx.payloads[i],
			Distance: squaredL2(query, v),
			Ord:      i,
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
