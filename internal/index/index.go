package index

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"graidea-reviews/internal/model"
)

// Document is one indexed review: the synthesized text that was embedded
// plus the original record carried along as metadata.
type Document struct {
	Text   string
	Review model.Review
}

// Hit is a query match. Distance is Euclidean; smaller is closer.
type Hit struct {
	Document Document
	Distance float64
}

// Snapshot is an immutable, fully-built index. It is never mutated after
// construction; reloads build a new Snapshot and publish it via Holder.
type Snapshot struct {
	docs      []Document
	vectors   [][]float32
	dimension int
}

// NewSnapshot builds a snapshot from parallel slices of documents and
// embedding vectors. All vectors must share one dimension.
func NewSnapshot(docs []Document, vectors [][]float32) (*Snapshot, error) {
	if len(docs) != len(vectors) {
		return nil, fmt.Errorf("documents/vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}
	dim := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("empty embedding vector at position %d", i)
		}
		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return nil, fmt.Errorf("embedding dimension mismatch at position %d: %d vs %d", i, len(v), dim)
		}
	}
	return &Snapshot{docs: docs, vectors: vectors, dimension: dim}, nil
}

// Empty returns a loaded snapshot with no documents, used when the source
// store holds zero reviews. Distinct from a Holder that was never loaded.
func Empty() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) Size() int {
	return len(s.docs)
}

func (s *Snapshot) Dimension() int {
	return s.dimension
}

// Query returns the k nearest documents to vector, closest first. Ties are
// broken by insertion order. k is clamped to [0, Size()].
func (s *Snapshot) Query(vector []float32, k int) []Hit {
	if k > len(s.docs) {
		k = len(s.docs)
	}
	if k <= 0 || len(s.docs) == 0 {
		return nil
	}

	hits := make([]Hit, len(s.docs))
	for i := range s.docs {
		hits[i] = Hit{
			Document: s.docs[i],
			Distance: euclideanDistance(vector, s.vectors[i]),
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits[:k]
}

func euclideanDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	// Unpaired tail components count in full, so a short query vector does
	// not appear artificially close to every document.
	for i := n; i < len(a); i++ {
		sum += float64(a[i]) * float64(a[i])
	}
	for i := n; i < len(b); i++ {
		sum += float64(b[i]) * float64(b[i])
	}
	return math.Sqrt(sum)
}

// Holder publishes the current snapshot. Readers load the pointer and work
// against a consistent index; a reload stores a replacement in one step.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

func NewHolder() *Holder {
	return &Holder{}
}

// Load returns the published snapshot, or false if no ingestion has ever
// completed.
func (h *Holder) Load() (*Snapshot, bool) {
	s := h.current.Load()
	return s, s != nil
}

func (h *Holder) Store(s *Snapshot) {
	h.current.Store(s)
}
