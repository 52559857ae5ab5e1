package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"graidea-reviews/internal/index"
	"graidea-reviews/internal/model"
)

const defaultEmbeddingBatchSize = 10 // DashScope and similar APIs often limit batch size

// ReviewStore is the record-store collaborator holding the source of truth.
type ReviewStore interface {
	FindAll(ctx context.Context) ([]model.Review, error)
	FindByTeacherID(ctx context.Context, teacherID int) ([]model.Review, error)
}

// Embedder maps text to fixed-dimension vectors. Calls may fail transiently.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexerService rebuilds the review index from the record store. Rebuilds
// are serialized; readers keep using the previous snapshot until the new
// one is published.
type IndexerService struct {
	store     ReviewStore
	embedder  Embedder
	holder    *index.Holder
	batchSize int

	mu sync.Mutex
}

type ReloadResult struct {
	AddedCount     int  `json:"added_count"`
	TotalDocuments int  `json:"total_documents"`
	NothingToIndex bool `json:"nothing_to_index"`
}

type IndexStats struct {
	IndexLoaded   bool `json:"index_loaded"`
	DocumentCount int  `json:"document_count"`
	Dimension     int  `json:"dimension"`
}

func NewIndexerService(store ReviewStore, embedder Embedder, holder *index.Holder, batchSize int) *IndexerService {
	if batchSize <= 0 {
		batchSize = defaultEmbeddingBatchSize
	}
	return &IndexerService{
		store:     store,
		embedder:  embedder,
		holder:    holder,
		batchSize: batchSize,
	}
}

// Reload fetches every review, embeds the synthesized document texts and
// atomically swaps in the new snapshot. On any upstream failure the
// previously published index stays untouched.
func (s *IndexerService) Reload(ctx context.Context) (*ReloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch reviews failed: %v", ErrUpstreamUnavailable, err)
	}

	if len(reviews) == 0 {
		s.holder.Store(index.Empty())
		log.Printf("index reload: no reviews to index")
		return &ReloadResult{NothingToIndex: true}, nil
	}

	docs := make([]index.Document, len(reviews))
	texts := make([]string, len(reviews))
	for i := range reviews {
		texts[i] = DocumentText(&reviews[i])
		docs[i] = index.Document{Text: texts[i], Review: reviews[i]}
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: embed review batch failed: %v", ErrUpstreamUnavailable, err)
		}
		vectors = append(vectors, batch...)
	}

	snapshot, err := index.NewSnapshot(docs, vectors)
	if err != nil {
		return nil, fmt.Errorf("build index snapshot failed: %w", err)
	}

	s.holder.Store(snapshot)
	log.Printf("index reload: indexed %d reviews (dimension %d)", snapshot.Size(), snapshot.Dimension())
	return &ReloadResult{
		AddedCount:     snapshot.Size(),
		TotalDocuments: snapshot.Size(),
	}, nil
}

// Stats reports the state of the published snapshot.
func (s *IndexerService) Stats() IndexStats {
	snapshot, ok := s.holder.Load()
	if !ok {
		return IndexStats{}
	}
	return IndexStats{
		IndexLoaded:   true,
		DocumentCount: snapshot.Size(),
		Dimension:     snapshot.Dimension(),
	}
}

// DocumentText synthesizes the text that gets embedded for a review.
// Absent fields are replaced by sentinels, never dropped.
func DocumentText(r *model.Review) string {
	return fmt.Sprintf("Student: %s | Teacher: %s | Rating: %s | Review: %s",
		r.DisplayStudentName(),
		r.DisplayTeacherName(),
		r.DisplayRating(),
		r.DisplayReview(),
	)
}
