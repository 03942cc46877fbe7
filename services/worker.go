package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// IngestQueueKey is the Redis list carrying queued upload IDs.
	IngestQueueKey = "ingest:queue"
	// jobTTL bounds how long job metadata is retained.
	jobTTL = 24 * time.Hour
)

// JobKey returns the Redis key holding metadata for one queued ingestion.
func JobKey(uploadID int64) string {
	return fmt.Sprintf("ingest:job:%d", uploadID)
}

// IngestJob is the metadata stored alongside a queued upload.
type IngestJob struct {
	UploadID  int64  `json:"upload_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
}

// EnqueueIngestion stores job metadata and pushes the upload onto the
// processing queue.
func EnqueueIngestion(ctx context.Context, rdb *redis.Client, uploadID int64, userID string) error {
	job := IngestJob{
		UploadID:  uploadID,
		UserID:    userID,
		Status:    "pending",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job metadata: %w", err)
	}

	if err := rdb.Set(ctx, JobKey(uploadID), data, jobTTL).Err(); err != nil {
		return fmt.Errorf("failed to store job metadata: %w", err)
	}
	if err := rdb.RPush(ctx, IngestQueueKey, strconv.FormatInt(uploadID, 10)).Err(); err != nil {
		rdb.Del(ctx, JobKey(uploadID))
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// StartIngestionWorker starts a background worker that consumes upload IDs
// from the Redis queue and runs the ingestion pipeline for each.
func StartIngestionWorker(ctx context.Context, rdb *redis.Client, svc *IngestionService, logger *zap.Logger) {
	if rdb == nil || svc == nil {
		logger.Warn("ingestion worker not started: missing dependencies")
		return
	}

	go func() {
		logger.Info("ingestion worker started", zap.String("queue", IngestQueueKey))
		for {
			select {
			case <-ctx.Done():
				logger.Info("ingestion worker stopping")
				return
			default:
			}

			// BLPop with no timeout blocks until an item is available
			res, err := rdb.BLPop(ctx, 0, IngestQueueKey).Result()
			if err != nil {
				if isShutdownErr(err) {
					return
				}
				logger.Error("redis BLPop failed", zap.Error(err))
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if len(res) < 2 {
				continue
			}

			uploadID, err := strconv.ParseInt(res[1], 10, 64)
			if err != nil {
				logger.Error("invalid upload id on queue", zap.String("value", res[1]))
				continue
			}

			processJob(ctx, rdb, svc, uploadID, logger)
		}
	}()
}

func processJob(ctx context.Context, rdb *redis.Client, svc *IngestionService, uploadID int64, logger *zap.Logger) {
	jobKey := JobKey(uploadID)

	val, err := rdb.Get(ctx, jobKey).Result()
	if err != nil {
		logger.Error("failed to read job metadata", zap.Int64("upload_id", uploadID), zap.Error(err))
		return
	}
	var job IngestJob
	if err := json.Unmarshal([]byte(val), &job); err != nil {
		logger.Error("failed to parse job metadata", zap.Int64("upload_id", uploadID), zap.Error(err))
		return
	}

	job.Status = "processing"
	saveJob(ctx, rdb, jobKey, job, logger)

	if _, err := svc.Run(ctx, uploadID, job.UserID); err != nil {
		logger.Error("queued ingestion failed", zap.Int64("upload_id", uploadID), zap.Error(err))
		job.Status = "failed"
		job.Error = err.Error()
		saveJob(ctx, rdb, jobKey, job, logger)
		return
	}

	job.Status = "done"
	saveJob(ctx, rdb, jobKey, job, logger)
}

// isShutdownErr reports whether a blocking pop failed because the worker
// context ended. go-redis may wrap the context error, so unwrap-aware
// matching is required.
func isShutdownErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func saveJob(ctx context.Context, rdb *redis.Client, key string, job IngestJob, logger *zap.Logger) {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Error("failed to marshal job metadata", zap.Error(err))
		return
	}
	if err := rdb.Set(ctx, key, data, jobTTL).Err(); err != nil {
		logger.Error("failed to update job metadata", zap.String("key", key), zap.Error(err))
	}
}
