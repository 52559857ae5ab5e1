package app

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Theme vocabularies scanned over each teacher's pooled review text.
// Membership tests, not frequency counts: each word contributes at most
// one point per teacher.
var (
	positiveThemes = []string{
		"excellent", "great", "amazing", "wonderful",
		"helpful", "clear", "engaging", "knowledgeable",
	}
	negativeThemes = []string{
		"difficult", "hard", "confusing", "boring", "unclear", "unhelpful",
	}
)

// RecommendService turns similarity-search results into a ranked teacher
// list. Retrieved reviews are grouped by teacher display name, matching the
// upstream product behaviour: two teachers sharing a name are merged. This
// is a known limitation kept deliberately until the join key is settled.
type RecommendService struct {
	reviews  *ReviewService
	poolSize int
	topN     int
}

type Recommendation struct {
	TeacherName         string  `json:"teacher_name"`
	TeacherID           int     `json:"teacher_id"`
	AverageRating       float64 `json:"average_rating"`
	ReviewCount         int     `json:"review_count"`
	PositiveThemes      int     `json:"positive_themes"`
	NegativeThemes      int     `json:"negative_themes"`
	RecommendationScore float64 `json:"recommendation_score"`
}

type RecommendationResult struct {
	Query                string           `json:"query"`
	TotalReviewsAnalyzed int              `json:"total_reviews_analyzed"`
	Recommendations      []Recommendation `json:"recommendations"`
}

func NewRecommendService(reviews *ReviewService, poolSize, topN int) *RecommendService {
	if poolSize <= 0 {
		poolSize = 10
	}
	if topN <= 0 {
		topN = 5
	}
	return &RecommendService{
		reviews:  reviews,
		poolSize: poolSize,
		topN:     topN,
	}
}

type teacherGroup struct {
	name      string
	teacherID int
	ratingSum float64
	ratings   int
	docCount  int
	texts     []string
}

// Recommend retrieves the nearest reviews for the query, scores teachers
// by average rating plus lexical sentiment themes, and returns the top N.
// An empty retrieval pool yields an empty result, not an error.
func (s *RecommendService) Recommend(ctx context.Context, query string, topN int) (*RecommendationResult, error) {
	if topN <= 0 {
		topN = s.topN
	}

	result := &RecommendationResult{
		Query:           strings.TrimSpace(query),
		Recommendations: []Recommendation{},
	}

	hits, err := s.reviews.searchHits(ctx, query, s.poolSize)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return result, nil
		}
		return nil, err
	}
	result.TotalReviewsAnalyzed = len(hits)

	groups := make(map[string]*teacherGroup)
	var order []*teacherGroup
	for _, hit := range hits {
		r := hit.Document.Review
		name := r.DisplayTeacherName()
		group, exists := groups[name]
		if !exists {
			group = &teacherGroup{name: name, teacherID: r.TeacherID}
			groups[name] = group
			order = append(order, group)
		}
		group.docCount++
		if r.Rating != nil {
			group.ratingSum += *r.Rating
			group.ratings++
		}
		group.texts = append(group.texts, strings.ToLower(r.Review))
	}

	recommendations := make([]Recommendation, 0, len(order))
	for _, group := range order {
		average := 0.0
		if group.ratings > 0 {
			average = group.ratingSum / float64(group.ratings)
		}

		pooled := strings.Join(group.texts, " ")
		positive := countThemes(pooled, positiveThemes)
		negative := countThemes(pooled, negativeThemes)

		recommendations = append(recommendations, Recommendation{
			TeacherName:         group.name,
			TeacherID:           group.teacherID,
			AverageRating:       round2(average),
			ReviewCount:         group.docCount,
			PositiveThemes:      positive,
			NegativeThemes:      negative,
			RecommendationScore: round2(average + 0.1*float64(positive-negative)),
		})
	}

	// Stable sort keeps group-discovery order for full ties.
	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].RecommendationScore != recommendations[j].RecommendationScore {
			return recommendations[i].RecommendationScore > recommendations[j].RecommendationScore
		}
		return recommendations[i].ReviewCount > recommendations[j].ReviewCount
	})

	if topN > len(recommendations) {
		topN = len(recommendations)
	}
	result.Recommendations = recommendations[:topN]
	return result, nil
}

func countThemes(text string, vocabulary []string) int {
	count := 0
	for _, word := range vocabulary {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}
