package vectorindex

import (
	"testing"
)

func buildIndex(t *testing.T, vectors [][]float32) *FlatIndex {
	t.Helper()
	idx, err := New(len(vectors[0]))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i, v := range vectors {
		if err := idx.Add(v, string(rune('a'+i))); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return idx
}

func TestSearch_RanksByDistance(t *testing.T) {
	idx := buildIndex(t, [][]float32{
		{0, 0},
		{1, 0},
		{5, 5},
	})

	hits, err := idx.Search([]float32{0.1, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Ord != 0 || hits[1].Ord != 1 {
		t.Errorf("got ordinals [%d %d], want [0 1]", hits[0].Ord, hits[1].Ord)
	}
	if hits[0].Distance > hits[1].Distance {
		t.Errorf("hits not sorted: %v then %v", hits[0].Distance, hits[1].Distance)
	}
}

func TestSearch_ExactMatchHasZeroDistance(t *testing.T) {
	idx := buildIndex(t, [][]float32{
		{3, 4, 5},
		{1, 1, 1},
	})

	hits, err := idx.Search([]float32{1, 1, 1}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits[0].Ord != 1 {
		t.Errorf("got ordinal %d, want 1", hits[0].Ord)
	}
	if hits[0].Distance != 0 {
		t.Errorf("exact match distance got %v, want 0", hits[0].Distance)
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	// two entries equidistant from the query
	idx := buildIndex(t, [][]float32{
		{1, 0},
		{-1, 0},
		{10, 10},
	})

	hits, err := idx.Search([]float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits[0].Ord != 0 || hits[1].Ord != 1 {
		t.Errorf("tie broken wrong: got ordinals [%d %d], want [0 1]", hits[0].Ord, hits[1].Ord)
	}
}

func TestSearch_KBounds(t *testing.T) {
	idx := buildIndex(t, [][]float32{
		{0, 0},
		{1, 1},
	})

	t.Run("K_Zero", func(t *testing.T) {
		hits, err := idx.Search([]float32{0, 0}, 0)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("got %d hits, want 0", len(hits))
		}
	})

	t.Run("K_Exceeds_Len", func(t *testing.T) {
		hits, err := idx.Search([]float32{0, 0}, 10)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(hits) != 2 {
			t.Errorf("got %d hits, want all 2", len(hits))
		}
	})

	t.Run("K_Negative", func(t *testing.T) {
		if _, err := idx.Search([]float32{0, 0}, -1); err == nil {
			t.Error("expected error for negative k")
		}
	})
}

func TestDimensionMismatches(t *testing.T) {
	idx, err := New(3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := idx.Add([]float32{1, 2}, "short"); err == nil {
		t.Error("Add accepted a 2-dim vector on a 3-dim index")
	}
	if _, err := idx.Search([]float32{1, 2, 3, 4}, 1); err == nil {
		t.Error("Search accepted a 4-dim query on a 3-dim index")
	}
	if _, err := New(0); err == nil {
		t.Error("New accepted a zero dimension")
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx, err := New(2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	hits, err := idx.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits from empty index, want 0", len(hits))
	}
	if idx.Len() != 0 {
		t.Errorf("Len got %d, want 0", idx.Len())
	}
}
