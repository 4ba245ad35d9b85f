package memindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"assessMatch/domain"
)

// Index is a brute-force in-process vector index using cosine similarity.
// The catalog is small enough that a linear scan per query is the right
// amount of machinery.
type Index struct {
	mu   sync.RWMutex
	docs []domain.VectorDocument
}

func New() *Index {
	return &Index{}
}

// Upsert replaces documents with matching names and appends the rest.
func (idx *Index) Upsert(_ context.Context, docs []domain.VectorDocument) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pos := make(map[string]int, len(idx.docs))
	for i, d := range idx.docs {
		pos[d.Name] = i
	}

	for _, d := range docs {
		stored := domain.VectorDocument{Name: d.Name, Vector: cloneVector(d.Vector)}
		if i, ok := pos[d.Name]; ok {
			idx.docs[i] = stored
			continue
		}
		pos[d.Name] = len(idx.docs)
		idx.docs = append(idx.docs, stored)
	}

	return nil
}

// Search scores every stored document against vec and returns the top-k hits
// in descending similarity order.
func (idx *Index) Search(_ context.Context, vec []float32, k int) ([]domain.VectorHit, error) {
	idx.mu.RLock()
	docs := idx.docs
	idx.mu.RUnlock()

	if len(docs) == 0 || len(vec) == 0 || k <= 0 {
		return nil, nil
	}

	hits := make([]domain.VectorHit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, domain.VectorHit{
			Name:  d.Name,
			Score: cosineSimilarity(vec, d.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	return hits, nil
}

// Size returns the number of stored documents.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}

	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
