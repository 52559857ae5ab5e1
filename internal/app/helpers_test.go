package app

import (
	"context"
	"errors"

	"graidea-reviews/internal/model"
)

func ratingOf(v float64) *float64 { return &v }

// sampleReviews mirrors the seed data set: five reviews across three
// teachers with ratings 5, 4, 5, 3, 4.
func sampleReviews() []model.Review {
	return []model.Review{
		{
			StudentID: 1, TeacherID: 1,
			StudentName: "Alice Johnson", TeacherName: "Dr. Smith",
			Rating: ratingOf(5),
			Review: "Excellent teacher! Very clear explanations and helpful with assignments.",
		},
		{
			StudentID: 2, TeacherID: 1,
			StudentName: "Bob Wilson", TeacherName: "Dr. Smith",
			Rating: ratingOf(4),
			Review: "Good teacher, but sometimes the lectures are a bit fast-paced.",
		},
		{
			StudentID: 3, TeacherID: 2,
			StudentName: "Carol Davis", TeacherName: "Prof. Johnson",
			Rating: ratingOf(5),
			Review: "Amazing professor! Makes complex topics easy to understand.",
		},
		{
			StudentID: 4, TeacherID: 2,
			StudentName: "David Brown", TeacherName: "Prof. Johnson",
			Rating: ratingOf(3),
			Review: "Average teacher. The course material is good but delivery could be better.",
		},
		{
			StudentID: 5, TeacherID: 3,
			StudentName: "Eva Martinez", TeacherName: "Dr. Williams",
			Rating: ratingOf(4),
			Review: "Very knowledgeable and approachable. Great for beginners.",
		},
	}
}

type fakeStore struct {
	reviews      []model.Review
	err          error
	findAllCalls int
	teacherCalls int
}

func (f *fakeStore) FindAll(ctx context.Context) ([]model.Review, error) {
	f.findAllCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews, nil
}

func (f *fakeStore) FindByTeacherID(ctx context.Context, teacherID int) ([]model.Review, error) {
	f.teacherCalls++
	if f.err != nil {
		return nil, f.err
	}
	var matched []model.Review
	for _, r := range f.reviews {
		if r.TeacherID == teacherID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// fakeEmbedder derives deterministic one-dimensional vectors from text
// length, giving predictable distances without a real embedding API.
type fakeEmbedder struct {
	embedFn    func(text string) []float32
	embedErr   error
	batchErr   error
	batchCalls [][]string
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		embedFn: func(text string) []float32 {
			return []float32{float32(len(text))}
		},
	}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedFn(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls = append(f.batchCalls, texts)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = f.embedFn(t)
	}
	return vectors, nil
}

type fakeCache struct {
	summaries map[int]*TeacherReviewSummary
	getErr    error
	setErr    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{summaries: map[int]*TeacherReviewSummary{}}
}

func (f *fakeCache) GetSummary(ctx context.Context, teacherID int) (*TeacherReviewSummary, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	summary, ok := f.summaries[teacherID]
	return summary, ok, nil
}

func (f *fakeCache) SetSummary(ctx context.Context, teacherID int, summary *TeacherReviewSummary) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.summaries[teacherID] = summary
	return nil
}

var errUpstreamDown = errors.New("connection refused")
