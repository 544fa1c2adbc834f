package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"movie-favorites/internal/usecase"

	"go.uber.org/zap"
)

const OutcomeSkipped = "skipped"

// Runner performs one refresh run.
type Runner interface {
	Run(ctx context.Context) (*usecase.RefreshResult, error)
}

// RefreshJob runs the refresh task every interval under a suture
// supervisor.
type RefreshJob struct {
	runner   Runner
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time

	mu    sync.RWMutex
	state State
}

func NewRefreshJob(runner Runner, interval time.Duration, log *zap.Logger) *RefreshJob {
	return &RefreshJob{
		runner:   runner,
		interval: interval,
		log:      log.With(zap.String("job", "refresh")),
		now:      time.Now,
	}
}

// Serve implements suture.Service. It returns ctx.Err() on shutdown.
func (j *RefreshJob) Serve(ctx context.Context) error {
	j.mu.Lock()
	st, scheduled := Schedule(j.state, j.interval, j.now())
	j.state = st
	j.mu.Unlock()

	if scheduled {
		j.log.Info("Refresh scheduled",
			zap.Duration("interval", st.Interval),
			zap.Time("next_run", st.NextRun),
		)
	} else if !st.Scheduled {
		j.log.Warn("Refresh not scheduled, interval must be positive",
			zap.Duration("interval", j.interval),
		)
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		wait := j.State().NextRun.Sub(j.now())
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		outcome := j.runOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		j.mu.Lock()
		j.state = Advance(j.state, outcome, j.now())
		j.mu.Unlock()
	}
}

func (j *RefreshJob) runOnce(ctx context.Context) string {
	result, err := j.runner.Run(ctx)
	if errors.Is(err, usecase.ErrRefreshRunning) {
		j.log.Info("Refresh skipped, a run is already active")
		return OutcomeSkipped
	}
	if result == nil {
		j.log.Error("Refresh failed", zap.Error(err))
		return string(usecase.RefreshFailed)
	}
	return string(result.State)
}

func (j *RefreshJob) State() State {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

func (j *RefreshJob) String() string {
	return "refresh-job"
}
