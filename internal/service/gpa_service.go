package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ricogpa/ricogpa-backend/internal/config"
	"github.com/ricogpa/ricogpa-backend/internal/gpa"
	"github.com/ricogpa/ricogpa-backend/internal/model"
)

// ErrInvalidForecast is returned for non-finite targets or negative remaining credits.
var ErrInvalidForecast = errors.New("target must be finite and remaining credits non-negative")

// GPAService serves GPA summaries and forecasts for a user's stored courses.
// Summaries are cached in Redis and dropped whenever the courses change.
type GPAService struct {
	courses CourseStore
	rdb     *redis.Client
	ttl     time.Duration
	log     zerolog.Logger
}

// NewGPAService creates a new GPAService.
func NewGPAService(courses CourseStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *GPAService {
	return &GPAService{
		courses: courses,
		rdb:     rdb,
		ttl:     ttl,
		log:     log.With().Str("component", "gpa_service").Logger(),
	}
}

// Summary returns the user's cumulative and per-year GPA, from cache when possible.
func (s *GPAService) Summary(ctx context.Context, userID int) (model.Summary, error) {
	key := config.CacheKey.UserSummaryKey(userID)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached model.Summary
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		s.log.Warn().Int("user_id", userID).Msg("Discarding unreadable cached summary")
	case !errors.Is(err, redis.Nil):
		// Redis trouble must not take the dashboard down.
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Summary cache read failed")
	}

	summary, _, err := s.compute(ctx, userID)
	return summary, err
}

// Refresh recomputes the user's summary, re-warms the cache and publishes the
// result to the user's summary channel for live subscribers.
func (s *GPAService) Refresh(ctx context.Context, userID int) (model.Summary, error) {
	summary, payload, err := s.compute(ctx, userID)
	if err != nil {
		return summary, err
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.UserSummaryChannel(userID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Summary publish failed")
	}
	return summary, nil
}

// Subscribe opens a subscription to the user's recomputed summaries.
// The caller closes it.
func (s *GPAService) Subscribe(ctx context.Context, userID int) *redis.PubSub {
	return s.rdb.Subscribe(ctx, config.CacheKey.UserSummaryChannel(userID))
}

// compute rebuilds the summary from storage and caches its JSON encoding.
func (s *GPAService) compute(ctx context.Context, userID int) (model.Summary, []byte, error) {
	courses, err := s.courses.ListByUser(ctx, userID)
	if err != nil {
		return model.Summary{}, nil, fmt.Errorf("list courses: %w", err)
	}

	summary := gpa.Summarize(courses)

	payload, err := json.Marshal(summary)
	if err != nil {
		return summary, nil, fmt.Errorf("marshal summary: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.UserSummaryKey(userID), payload, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Summary cache write failed")
	}
	return summary, payload, nil
}

// Forecast computes the grade average needed over remainingCredits to reach target.
func (s *GPAService) Forecast(ctx context.Context, userID int, target, remainingCredits float64) (model.ForecastResult, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) ||
		math.IsNaN(remainingCredits) || math.IsInf(remainingCredits, 0) || remainingCredits < 0 {
		return model.ForecastResult{}, ErrInvalidForecast
	}

	courses, err := s.courses.ListByUser(ctx, userID)
	if err != nil {
		return model.ForecastResult{}, fmt.Errorf("list courses: %w", err)
	}

	res := gpa.Forecast(courses, target, remainingCredits)
	s.log.Debug().
		Int("user_id", userID).
		Float64("target", target).
		Float64("required", res.RequiredAvgGradePoint).
		Bool("feasible", res.Feasible).
		Msg("Forecast computed")
	return res, nil
}

// Invalidate drops the cached summary and queues a background recomputation.
func (s *GPAService) Invalidate(ctx context.Context, userID int) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, config.CacheKey.UserSummaryKey(userID))
	pipe.RPush(ctx, config.WorkerKey.RecalcSummaryQueue, strconv.Itoa(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate summary: %w", err)
	}
	return nil
}

// Drop removes the cached summary without queueing a recomputation.
func (s *GPAService) Drop(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, config.CacheKey.UserSummaryKey(userID)).Err()
}
