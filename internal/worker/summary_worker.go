package worker

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ricogpa/ricogpa-backend/internal/config"
	"github.com/ricogpa/ricogpa-backend/internal/model"
)

const (
	SummaryBatchSize    = 50
	SummaryBatchTimeout = 2 * time.Second
	SummaryPollTimeout  = 1 * time.Second
)

// SummaryRefresher recomputes and caches one user's summary.
type SummaryRefresher interface {
	Refresh(ctx context.Context, userID int) (model.Summary, error)
}

// SummaryWorker consumes recalc_summary_queue and re-warms GPA summaries so
// the next dashboard read after a course change is a cache hit.
type SummaryWorker struct {
	rdb       *redis.Client
	refresher SummaryRefresher
	log       zerolog.Logger

	batchSize    int
	batchTimeout time.Duration
}

// NewSummaryWorker creates a new SummaryWorker.
func NewSummaryWorker(rdb *redis.Client, refresher SummaryRefresher, log zerolog.Logger) *SummaryWorker {
	return &SummaryWorker{
		rdb:          rdb,
		refresher:    refresher,
		log:          log.With().Str("component", "summary_worker").Logger(),
		batchSize:    SummaryBatchSize,
		batchTimeout: SummaryBatchTimeout,
	}
}

// Start runs the worker loop until ctx is cancelled. Call in a goroutine.
func (w *SummaryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SummaryWorker started")

	// A user edited several times in a burst is refreshed once per batch.
	batch := make(map[int]struct{}, w.batchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= w.batchSize || time.Since(lastFlush) >= w.batchTimeout) {

			w.flush(ctx, batch)
			batch = make(map[int]struct{}, w.batchSize)
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flush(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, SummaryPollTimeout, config.WorkerKey.RecalcSummaryQueue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
					time.Sleep(time.Second)
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			userID, err := strconv.Atoi(item[1])
			if err != nil {
				w.log.Error().Str("payload", item[1]).Msg("Invalid user id in queue")
				continue
			}
			batch[userID] = struct{}{}
		}
	}
}

func (w *SummaryWorker) flush(ctx context.Context, batch map[int]struct{}) {
	for userID := range batch {
		if _, err := w.refresher.Refresh(ctx, userID); err != nil {
			w.log.Warn().Err(err).Int("user_id", userID).Msg("Summary refresh failed")
		}
	}
	if len(batch) > 0 {
		w.log.Debug().Int("users", len(batch)).Msg("Summaries refreshed")
	}
}
