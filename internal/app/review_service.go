package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"graidea-reviews/internal/index"
)

// TeacherSummaryCache caches computed teacher summaries. A nil cache
// disables caching; errors are logged and treated as misses.
type TeacherSummaryCache interface {
	GetSummary(ctx context.Context, teacherID int) (*TeacherReviewSummary, bool, error)
	SetSummary(ctx context.Context, teacherID int, summary *TeacherReviewSummary) error
}

// ReviewService answers similarity searches against the index and
// per-teacher aggregations against the record store.
type ReviewService struct {
	store       ReviewStore
	embedder    Embedder
	holder      *index.Holder
	cache       TeacherSummaryCache
	defaultTopK int
}

type ReviewResult struct {
	Student string `json:"student"`
	Teacher string `json:"teacher"`
	Rating  string `json:"rating"`
	Review  string `json:"review"`
	Content string `json:"content"`
}

type TeacherReviewSummary struct {
	TeacherID     int                  `json:"teacher_id"`
	TeacherName   string               `json:"teacher_name"`
	TotalReviews  int                  `json:"total_reviews"`
	AverageRating float64              `json:"average_rating"`
	Reviews       []TeacherReviewEntry `json:"reviews"`
}

type TeacherReviewEntry struct {
	Student   string `json:"student"`
	StudentID int    `json:"student_id"`
	Rating    string `json:"rating"`
	Review    string `json:"review"`
}

func NewReviewService(
	store ReviewStore,
	embedder Embedder,
	holder *index.Holder,
	cache TeacherSummaryCache,
	defaultTopK int,
) *ReviewService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &ReviewService{
		store:       store,
		embedder:    embedder,
		holder:      holder,
		cache:       cache,
		defaultTopK: defaultTopK,
	}
}

// SearchReviews embeds the query and returns the closest reviews,
// nearest first.
func (s *ReviewService) SearchReviews(ctx context.Context, query string, limit int) ([]ReviewResult, error) {
	hits, err := s.searchHits(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]ReviewResult, len(hits))
	for i, hit := range hits {
		r := hit.Document.Review
		results[i] = ReviewResult{
			Student: r.DisplayStudentName(),
			Teacher: r.DisplayTeacherName(),
			Rating:  r.DisplayRating(),
			Review:  r.DisplayReview(),
			Content: hit.Document.Text,
		}
	}
	return results, nil
}

// searchHits is the shared retrieval path for search and recommendations.
func (s *ReviewService) searchHits(ctx context.Context, query string, limit int) ([]index.Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = s.defaultTopK
	}

	snapshot, ok := s.holder.Load()
	if !ok {
		return nil, ErrIndexNotReady
	}
	if snapshot.Size() == 0 {
		return nil, ErrEmptyResult
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query failed: %v", ErrUpstreamUnavailable, err)
	}

	return snapshot.Query(vector, limit), nil
}

// GetTeacherReviews aggregates all reviews for a teacher straight from the
// record store, bypassing the index. rawID must be numeric.
func (s *ReviewService) GetTeacherReviews(ctx context.Context, rawID string) (*TeacherReviewSummary, error) {
	teacherID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return nil, ErrInvalidTeacherID
	}

	if s.cache != nil {
		cached, hit, cacheErr := s.cache.GetSummary(ctx, teacherID)
		if cacheErr != nil {
			log.Printf("teacher summary cache read failed: %v", cacheErr)
		} else if hit {
			return cached, nil
		}
	}

	reviews, err := s.store.FindByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch teacher reviews failed: %v", ErrUpstreamUnavailable, err)
	}
	if len(reviews) == 0 {
		return nil, ErrTeacherNotFound
	}

	var ratingSum float64
	var ratingCount int
	entries := make([]TeacherReviewEntry, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		if r.Rating != nil {
			ratingSum += *r.Rating
			ratingCount++
		}
		entries[i] = TeacherReviewEntry{
			Student:   r.DisplayStudentName(),
			StudentID: r.StudentID,
			Rating:    r.DisplayRating(),
			Review:    r.DisplayReview(),
		}
	}

	average := 0.0
	if ratingCount > 0 {
		average = round2(ratingSum / float64(ratingCount))
	}

	summary := &TeacherReviewSummary{
		TeacherID:     teacherID,
		TeacherName:   reviews[0].DisplayTeacherName(),
		TotalReviews:  len(reviews),
		AverageRating: average,
		Reviews:       entries,
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetSummary(ctx, teacherID, summary); cacheErr != nil {
			log.Printf("teacher summary cache write failed: %v", cacheErr)
		}
	}
	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
