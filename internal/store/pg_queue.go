package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
)

// =============================================================================
// Order Update Job Operations
// =============================================================================

// STALLED_JOB_ERROR is recorded on jobs that stalled after their last allowed attempt
const STALLED_JOB_ERROR = "job stalled more than allowable limit"

// AddOrderUpdateJobs inserts jobs, skipping any whose job id is already retained
func (s *pgStore) AddOrderUpdateJobs(ctx context.Context, jobs []schema.OrderUpdateJob) (int64, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoNothing: true,
		}).
		CreateInBatches(&jobs, calculateSafeBatchSize(len(jobs), 17))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to add order update jobs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// ClaimOrderUpdateJobs marks up to limit runnable or stalled jobs as active for the worker.
// Rows locked by a concurrent claim are skipped, so each job is handed to a single worker.
func (s *pgStore) ClaimOrderUpdateJobs(ctx context.Context, workerID string, limit int, lockDuration time.Duration) ([]schema.OrderUpdateJob, error) {
	if limit <= 0 {
		return []schema.OrderUpdateJob{}, nil
	}

	var jobs []schema.OrderUpdateJob
	err := s.db.WithContext(ctx).Raw(`
		UPDATE "order_update_jobs" AS "j" SET
			"status" = @active,
			"attempts_made" = "j"."attempts_made" + 1,
			"locked_by" = @workerID,
			"locked_until" = now() + make_interval(secs => @lockSeconds),
			"updated_at" = now()
		WHERE "j"."id" IN (
			SELECT "c"."id"
			FROM "order_update_jobs" "c"
			WHERE ("c"."status" = @waiting AND "c"."run_at" <= now())
				OR ("c"."status" = @active AND "c"."locked_until" < now() AND "c"."attempts_made" < "c"."max_attempts")
			ORDER BY "c"."run_at" ASC, "c"."id" ASC
			LIMIT @limit
			FOR UPDATE SKIP LOCKED
		)
		RETURNING "j".*
	`, map[string]interface{}{
		"active":      string(schema.JobStatusActive),
		"waiting":     string(schema.JobStatusWaiting),
		"workerID":    workerID,
		"lockSeconds": lockDuration.Seconds(),
		"limit":       limit,
	}).Scan(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to claim order update jobs: %w", err)
	}

	return jobs, nil
}

// ExtendOrderUpdateJobLock pushes the lock of an active job held by the worker lockDuration past now
func (s *pgStore) ExtendOrderUpdateJobLock(ctx context.Context, jobID string, workerID string, lockDuration time.Duration) error {
	return s.updateHeldOrderUpdateJob(ctx, jobID, workerID, map[string]interface{}{
		"locked_until": gorm.Expr("now() + make_interval(secs => ?)", lockDuration.Seconds()),
		"updated_at":   gorm.Expr("now()"),
	})
}

// FailStalledOrderUpdateJobs fails active jobs whose lock expired after their last allowed attempt
func (s *pgStore) FailStalledOrderUpdateJobs(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Exec(`
		UPDATE "order_update_jobs" SET
			"status" = @failed,
			"finished_at" = now(),
			"last_error" = @lastError,
			"locked_by" = NULL,
			"locked_until" = NULL,
			"updated_at" = now()
		WHERE "status" = @active
			AND "locked_until" < now()
			AND "attempts_made" >= "max_attempts"
	`, map[string]interface{}{
		"failed":    string(schema.JobStatusFailed),
		"active":    string(schema.JobStatusActive),
		"lastError": STALLED_JOB_ERROR,
	})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to fail stalled order update jobs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// CompleteOrderUpdateJob marks an active job held by the worker as completed
func (s *pgStore) CompleteOrderUpdateJob(ctx context.Context, jobID string, workerID string) error {
	return s.updateHeldOrderUpdateJob(ctx, jobID, workerID, map[string]interface{}{
		"status":       schema.JobStatusCompleted,
		"finished_at":  gorm.Expr("now()"),
		"last_error":   nil,
		"locked_by":    nil,
		"locked_until": nil,
		"updated_at":   gorm.Expr("now()"),
	})
}

// RetryOrderUpdateJob puts an active job held by the worker back to waiting after the given delay
func (s *pgStore) RetryOrderUpdateJob(ctx context.Context, jobID string, workerID string, delay time.Duration, lastError string) error {
	return s.updateHeldOrderUpdateJob(ctx, jobID, workerID, map[string]interface{}{
		"status":       schema.JobStatusWaiting,
		"run_at":       gorm.Expr("now() + make_interval(secs => ?)", delay.Seconds()),
		"last_error":   lastError,
		"locked_by":    nil,
		"locked_until": nil,
		"updated_at":   gorm.Expr("now()"),
	})
}

// FailOrderUpdateJob marks an active job held by the worker as permanently failed
func (s *pgStore) FailOrderUpdateJob(ctx context.Context, jobID string, workerID string, lastError string) error {
	return s.updateHeldOrderUpdateJob(ctx, jobID, workerID, map[string]interface{}{
		"status":       schema.JobStatusFailed,
		"finished_at":  gorm.Expr("now()"),
		"last_error":   lastError,
		"locked_by":    nil,
		"locked_until": nil,
		"updated_at":   gorm.Expr("now()"),
	})
}

// updateHeldOrderUpdateJob applies the updates only if the worker still holds the job
func (s *pgStore) updateHeldOrderUpdateJob(ctx context.Context, jobID string, workerID string, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&schema.OrderUpdateJob{}).
		Where("job_id = ? AND status = ? AND locked_by = ?", jobID, schema.JobStatusActive, workerID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update order update job %s: %w", jobID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobLockLost, jobID)
	}

	return nil
}

// CleanOrderUpdateJobs deletes up to limit jobs with the status that finished more than grace ago
func (s *pgStore) CleanOrderUpdateJobs(ctx context.Context, status schema.JobStatus, grace time.Duration, limit int) (int64, error) {
	if !status.IsFinished() {
		return 0, fmt.Errorf("cannot clean order update jobs with status %s", status)
	}
	if limit <= 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).Exec(`
		DELETE FROM "order_update_jobs"
		WHERE "id" IN (
			SELECT "id"
			FROM "order_update_jobs"
			WHERE "status" = ?
				AND "finished_at" < now() - make_interval(secs => ?)
			ORDER BY "finished_at" ASC
			LIMIT ?
		)
	`, string(status), grace.Seconds(), limit)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean %s order update jobs: %w", status, result.Error)
	}

	return result.RowsAffected, nil
}

// TrimOrderUpdateJobs deletes the oldest finished jobs with the status beyond the newest keep
func (s *pgStore) TrimOrderUpdateJobs(ctx context.Context, status schema.JobStatus, keep int) (int64, error) {
	if !status.IsFinished() {
		return 0, fmt.Errorf("cannot trim order update jobs with status %s", status)
	}
	if keep < 0 {
		keep = 0
	}

	result := s.db.WithContext(ctx).Exec(`
		DELETE FROM "order_update_jobs"
		WHERE "id" IN (
			SELECT "id"
			FROM "order_update_jobs"
			WHERE "status" = ?
			ORDER BY "finished_at" DESC, "id" DESC
			OFFSET ?
		)
	`, string(status), keep)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to trim %s order update jobs: %w", status, result.Error)
	}

	return result.RowsAffected, nil
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays below
// PostgreSQL's 65535 parameters per statement limit
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}
