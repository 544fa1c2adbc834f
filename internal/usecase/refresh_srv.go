package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/notify"
	"movie-favorites/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefreshState string

const (
	RefreshIdle             RefreshState = "idle"
	RefreshRunning          RefreshState = "running"
	RefreshFinishedNoChange RefreshState = "finished_no_change"
	RefreshFinishedChanged  RefreshState = "finished_changed"
	RefreshCanceled         RefreshState = "canceled"
	RefreshFailed           RefreshState = "failed"
)

// RefreshResult describes one finished refresh run.
type RefreshResult struct {
	RunID         uuid.UUID
	State         RefreshState
	Checked       int
	Failed        int
	Changed       []int64
	ChangedTitles []string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// FavoriteStore is the part of the favorites manager the refresh task
// needs.
type FavoriteStore interface {
	AllFavorites(ctx context.Context) ([]*entity.Movie, error)
	UpdateFavorite(ctx context.Context, movie *entity.Movie) error
}

type RefreshService interface {
	Run(ctx context.Context) (*RefreshResult, error)
	Start(ctx context.Context) error
	Wait()
	State() RefreshState
	LastResult() *RefreshResult
}

type refreshService struct {
	favorites FavoriteStore
	source    catalog.Source
	notifier  notify.Notifier
	log       *zap.Logger

	running atomic.Bool
	wg      sync.WaitGroup

	mu   sync.RWMutex
	last *RefreshResult
}

func NewRefreshService(
	favorites FavoriteStore,
	source catalog.Source,
	notifier notify.Notifier,
	log *zap.Logger,
) RefreshService {
	return &refreshService{
		favorites: favorites,
		source:    source,
		notifier:  notifier,
		log:       log.With(zap.String("service", "refresh")),
	}
}

func (s *refreshService) State() RefreshState {
	if s.running.Load() {
		return RefreshRunning
	}
	return RefreshIdle
}

func (s *refreshService) LastResult() *RefreshResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Run re-fetches every favorite and stores the ones whose catalog fields
// changed. Only one run is active at a time; a concurrent call returns
// ErrRefreshRunning. A canceled context abandons the run without a
// checkpoint and returns the context error with the partial result.
func (s *refreshService) Run(ctx context.Context) (*RefreshResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRefreshRunning
	}
	return s.runClaimed(ctx)
}

// Start claims the run slot and continues the run in the background under
// ctx. It returns ErrRefreshRunning without starting anything when a run is
// already active. Wait blocks until background runs have returned.
func (s *refreshService) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRefreshRunning
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.runClaimed(ctx); err != nil {
			s.log.Warn("Background refresh did not complete", zap.Error(err))
		}
	}()
	return nil
}

func (s *refreshService) Wait() {
	s.wg.Wait()
}

// runClaimed performs a run for a caller that already holds the run slot.
func (s *refreshService) runClaimed(ctx context.Context) (*RefreshResult, error) {
	defer s.running.Store(false)

	result := &RefreshResult{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
	log := s.log.With(zap.String("run_id", result.RunID.String()))
	log.Info("Refresh started")

	err := s.run(ctx, log, result)

	result.FinishedAt = time.Now()
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		result.State = RefreshCanceled
	case err != nil:
		result.State = RefreshFailed
	case len(result.Changed) > 0:
		result.State = RefreshFinishedChanged
	default:
		result.State = RefreshFinishedNoChange
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	metrics.RefreshRuns.WithLabelValues(string(result.State)).Inc()
	metrics.RefreshChangedMovies.Add(float64(len(result.Changed)))

	fields := []zap.Field{
		zap.String("state", string(result.State)),
		zap.Int("checked", result.Checked),
		zap.Int("failed", result.Failed),
		zap.Int("changed", len(result.Changed)),
		zap.Duration("duration", result.FinishedAt.Sub(result.StartedAt)),
	}
	if err != nil {
		log.Warn("Refresh ended early", append(fields, zap.Error(err))...)
		return result, err
	}
	log.Info("Refresh finished", fields...)

	if result.State == RefreshFinishedChanged {
		s.notify(ctx, log, result)
	}
	return result, nil
}

func (s *refreshService) run(ctx context.Context, log *zap.Logger, result *RefreshResult) error {
	movies, err := s.favorites.AllFavorites(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	for _, stored := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}

		fresh, err := s.source.Movie(ctx, stored.MovieID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Failed++
			log.Warn("Failed to fetch favorite",
				zap.Error(err),
				zap.Int64("movie_id", stored.MovieID),
				zap.Stringer("kind", catalog.KindOf(err)),
			)
			continue
		}
		result.Checked++

		if !stored.Differs(fresh) {
			continue
		}

		stored.ApplyCatalog(fresh)
		if err := s.favorites.UpdateFavorite(ctx, stored); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Failed++
			log.Error("Failed to update favorite",
				zap.Error(err),
				zap.Int64("movie_id", stored.MovieID),
			)
			continue
		}

		result.Changed = append(result.Changed, stored.MovieID)
		result.ChangedTitles = append(result.ChangedTitles, stored.Title)
		log.Debug("Favorite changed",
			zap.Int64("movie_id", stored.MovieID),
			zap.String("title", stored.Title),
		)
	}
	return nil
}

func (s *refreshService) notify(ctx context.Context, log *zap.Logger, result *RefreshResult) {
	title := "Favorite movie updated"
	if len(result.Changed) > 1 {
		title = fmt.Sprintf("%d favorite movies updated", len(result.Changed))
	}
	note := notify.New(title, strings.Join(result.ChangedTitles, ", "), result.Changed)

	if err := s.notifier.Notify(ctx, note); err != nil {
		log.Error("Failed to deliver refresh notification",
			zap.Error(err),
			zap.String("notification_id", note.ID.String()),
		)
	}
}
