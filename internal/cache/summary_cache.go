package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"graidea-reviews/internal/app"
)

// SummaryCache keeps computed teacher summaries in redis for a short TTL,
// sparing the record store on hot teachers.
type SummaryCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redisv9.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &SummaryCache{client: client, ttl: ttl}
}

func (c *SummaryCache) GetSummary(ctx context.Context, teacherID int) (*app.TeacherReviewSummary, bool, error) {
	raw, err := c.client.Get(ctx, c.summaryKey(teacherID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get teacher summary failed: %w", err)
	}

	var summary app.TeacherReviewSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached teacher summary failed: %w", err)
	}
	return &summary, true, nil
}

func (c *SummaryCache) SetSummary(ctx context.Context, teacherID int, summary *app.TeacherReviewSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal teacher summary failed: %w", err)
	}
	if err := c.client.Set(ctx, c.summaryKey(teacherID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set teacher summary failed: %w", err)
	}
	return nil
}

func (c *SummaryCache) summaryKey(teacherID int) string {
	return fmt.Sprintf("reviews:teacher:%d", teacherID)
}
