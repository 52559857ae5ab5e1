package app

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graidea-reviews/internal/index"
	"graidea-reviews/internal/model"
)

func newLoadedReviewService(t *testing.T, store *fakeStore, cache TeacherSummaryCache) *ReviewService {
	t.Helper()
	embedder := newFakeEmbedder()
	holder := index.NewHolder()
	indexer := NewIndexerService(store, embedder, holder, 0)
	_, err := indexer.Reload(context.Background())
	require.NoError(t, err)
	return NewReviewService(store, embedder, holder, cache, 5)
}

func TestSearchReturnsMinOfKAndSize(t *testing.T) {
	svc := newLoadedReviewService(t, &fakeStore{reviews: sampleReviews()}, nil)
	ctx := context.Background()

	results, err := svc.SearchReviews(ctx, "clear explanations", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = svc.SearchReviews(ctx, "clear explanations", 50)
	require.NoError(t, err)
	assert.Len(t, results, 5)

	// Zero falls back to the configured default of 5.
	results, err = svc.SearchReviews(ctx, "clear explanations", 0)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestSearchOrdersByAscendingDistance(t *testing.T) {
	svc := newLoadedReviewService(t, &fakeStore{reviews: sampleReviews()}, nil)

	query := "beginners"
	results, err := svc.SearchReviews(context.Background(), query, 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	// The fake embedder maps text to its length, so distance from the
	// query is |len(content) - len(query)|.
	previous := -1.0
	for _, r := range results {
		distance := math.Abs(float64(len(r.Content) - len(query)))
		assert.GreaterOrEqual(t, distance, previous)
		previous = distance
	}
}

func TestSearchIndexNotReady(t *testing.T) {
	store := &fakeStore{reviews: sampleReviews()}
	svc := NewReviewService(store, newFakeEmbedder(), index.NewHolder(), nil, 5)

	_, err := svc.SearchReviews(context.Background(), "anything", 5)
	require.ErrorIs(t, err, ErrIndexNotReady)
}

func TestSearchEmptyIndexDistinctFromNotReady(t *testing.T) {
	svc := newLoadedReviewService(t, &fakeStore{}, nil)

	_, err := svc.SearchReviews(context.Background(), "anything", 5)
	require.ErrorIs(t, err, ErrEmptyResult)
	assert.NotErrorIs(t, err, ErrIndexNotReady)
}

func TestSearchEmbedFailureSurfacesUpstreamError(t *testing.T) {
	store := &fakeStore{reviews: sampleReviews()}
	embedder := newFakeEmbedder()
	holder := index.NewHolder()
	indexer := NewIndexerService(store, embedder, holder, 0)
	_, err := indexer.Reload(context.Background())
	require.NoError(t, err)

	embedder.embedErr = errUpstreamDown
	svc := NewReviewService(store, embedder, holder, nil, 5)
	_, err = svc.SearchReviews(context.Background(), "anything", 5)
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGetTeacherReviewsRejectsNonNumericID(t *testing.T) {
	svc := newLoadedReviewService(t, &fakeStore{reviews: sampleReviews()}, nil)

	_, err := svc.GetTeacherReviews(context.Background(), "abc")
	require.ErrorIs(t, err, ErrInvalidTeacherID)
}

func TestGetTeacherReviewsAggregates(t *testing.T) {
	svc := newLoadedReviewService(t, &fakeStore{reviews: sampleReviews()}, nil)

	summary, err := svc.GetTeacherReviews(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TeacherID)
	assert.Equal(t, "Dr. Smith", summary.TeacherName)
	assert.Equal(t, 2, summary.TotalReviews)
	assert.Equal(t, 4.5, summary.AverageRating)
	require.Len(t, summary.Reviews, 2)
	assert.Equal(t, "Alice Johnson", summary.Reviews[0].Student)
	assert.Equal(t, "5", summary.Reviews[0].Rating)
}

func TestGetTeacherReviewsNotFound(t *testing.T) {
	svc := newLoadedReviewService(t, &fakeStore{reviews: sampleReviews()}, nil)

	_, err := svc.GetTeacherReviews(context.Background(), "99")
	require.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestGetTeacherReviewsAverageExcludesAbsentRatings(t *testing.T) {
	reviews := []model.Review{
		{StudentID: 1, TeacherID: 7, StudentName: "A", TeacherName: "Dr. Quiet", Rating: ratingOf(4), Review: "fine"},
		{StudentID: 2, TeacherID: 7, StudentName: "B", TeacherName: "Dr. Quiet"},
		{StudentID: 3, TeacherID: 7, StudentName: "C", TeacherName: "Dr. Quiet", Rating: ratingOf(5), Review: "nice"},
	}
	svc := newLoadedReviewService(t, &fakeStore{reviews: reviews}, nil)

	summary, err := svc.GetTeacherReviews(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalReviews)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Equal(t, "N/A", summary.Reviews[1].Rating)
}

func TestGetTeacherReviewsNoRatingsReportsZero(t *testing.T) {
	reviews := []model.Review{
		{StudentID: 1, TeacherID: 8, StudentName: "A", TeacherName: "Dr. Unrated"},
		{StudentID: 2, TeacherID: 8, StudentName: "B", TeacherName: "Dr. Unrated"},
	}
	svc := newLoadedReviewService(t, &fakeStore{reviews: reviews}, nil)

	summary, err := svc.GetTeacherReviews(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalReviews)
	assert.Equal(t, 0.0, summary.AverageRating)
}

func TestGetTeacherReviewsRoundsToTwoDecimals(t *testing.T) {
	reviews := []model.Review{
		{StudentID: 1, TeacherID: 9, TeacherName: "Dr. Thirds", Rating: ratingOf(5)},
		{StudentID: 2, TeacherID: 9, TeacherName: "Dr. Thirds", Rating: ratingOf(4)},
		{StudentID: 3, TeacherID: 9, TeacherName: "Dr. Thirds", Rating: ratingOf(4)},
	}
	svc := newLoadedReviewService(t, &fakeStore{reviews: reviews}, nil)

	summary, err := svc.GetTeacherReviews(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, 4.33, summary.AverageRating)
}

func TestGetTeacherReviewsUsesCache(t *testing.T) {
	store := &fakeStore{reviews: sampleReviews()}
	cache := newFakeCache()
	svc := newLoadedReviewService(t, store, cache)
	ctx := context.Background()

	first, err := svc.GetTeacherReviews(ctx, "1")
	require.NoError(t, err)
	storeCalls := store.teacherCalls

	second, err := svc.GetTeacherReviews(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, storeCalls, store.teacherCalls, "second lookup should hit the cache")
}

func TestGetTeacherReviewsCacheErrorFallsThrough(t *testing.T) {
	store := &fakeStore{reviews: sampleReviews()}
	cache := newFakeCache()
	cache.getErr = errUpstreamDown
	svc := newLoadedReviewService(t, store, cache)

	summary, err := svc.GetTeacherReviews(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalReviews)
}
