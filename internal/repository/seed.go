package repository

import (
	"context"
	"log"

	"graidea-reviews/internal/model"
)

func ratingOf(v float64) *float64 { return &v }

// SeedSampleReviews inserts a small demo data set when the reviews table is
// empty, so a fresh deployment has something to index and query.
func (r *ReviewRepository) SeedSampleReviews(ctx context.Context) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []model.Review{
		{
			StudentID:   1,
			TeacherID:   1,
			StudentName: "Alice Johnson",
			TeacherName: "Dr. Smith",
			Rating:      ratingOf(5),
			Review:      "Excellent teacher! Very clear explanations and helpful with assignments.",
		},
		{
			StudentID:   2,
			TeacherID:   1,
			StudentName: "Bob Wilson",
			TeacherName: "Dr. Smith",
			Rating:      ratingOf(4),
			Review:      "Good teacher, but sometimes the lectures are a bit fast-paced.",
		},
		{
			StudentID:   3,
			TeacherID:   2,
			StudentName: "Carol Davis",
			TeacherName: "Prof. Johnson",
			Rating:      ratingOf(5),
			Review:      "Amazing professor! Makes complex topics easy to understand.",
		},
		{
			StudentID:   4,
			TeacherID:   2,
			StudentName: "David Brown",
			TeacherName: "Prof. Johnson",
			Rating:      ratingOf(3),
			Review:      "Average teacher. The course material is good but delivery could be better.",
		},
		{
			StudentID:   5,
			TeacherID:   3,
			StudentName: "Eva Martinez",
			TeacherName: "Dr. Williams",
			Rating:      ratingOf(4),
			Review:      "Very knowledgeable and approachable. Great for beginners.",
		},
	}

	if err := r.CreateBatch(ctx, samples); err != nil {
		return err
	}
	log.Printf("seeded %d sample reviews", len(samples))
	return nil
}
