package jobs

import (
	"context"
	"time"

	"github.com/farellandr/encuentro/internal/service"
	"go.uber.org/zap"
)

const defaultJobTimeout = time.Minute

// JobRunner holds the maintenance jobs the scheduler fires.
type JobRunner struct {
	membership service.MembershipService
	attendance service.AttendanceService
	log        *zap.Logger
	timeout    time.Duration
}

func NewJobRunner(membership service.MembershipService, attendance service.AttendanceService, log *zap.Logger) *JobRunner {
	return &JobRunner{
		membership: membership,
		attendance: attendance,
		log:        log.Named("jobs"),
		timeout:    defaultJobTimeout,
	}
}

func (jr *JobRunner) runWithRecovery(jobName string, job func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error("job panicked", zap.String("job", jobName), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	start := time.Now()
	job(ctx)
	jr.log.Debug("job completed", zap.String("job", jobName), zap.Duration("took", time.Since(start)))
}

// SweepEmptyGroups removes groups nobody references.
func (jr *JobRunner) SweepEmptyGroups() {
	jr.runWithRecovery("sweep_empty_groups", func(ctx context.Context) {
		removed, err := jr.membership.SweepEmptyGroups(ctx)
		if err != nil {
			jr.log.Error("sweep empty groups failed", zap.Error(err))
			return
		}
		if removed > 0 {
			jr.log.Info("removed empty groups", zap.Int64("count", removed))
		}
	})
}

// LogAttendanceSummary writes the current check-in count to the log.
func (jr *JobRunner) LogAttendanceSummary() {
	jr.runWithRecovery("attendance_summary", func(ctx context.Context) {
		total, err := jr.attendance.TotalAttendance(ctx)
		if err != nil {
			jr.log.Error("attendance summary failed", zap.Error(err))
			return
		}
		jr.log.Info("attendance summary", zap.Int64("checked_in", total))
	})
}
