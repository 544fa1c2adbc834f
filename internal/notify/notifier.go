package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is a user-facing message raised by background work.
type Notification struct {
	ID        uuid.UUID
	Title     string
	Body      string
	MovieIDs  []int64
	CreatedAt time.Time
}

func New(title, body string, movieIDs []int64) Notification {
	return Notification{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		MovieIDs:  movieIDs,
		CreatedAt: time.Now(),
	}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification) error

func (f Func) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// LogNotifier delivers notifications as structured log entries.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) Notify(_ context.Context, note Notification) error {
	n.log.Info(note.Title,
		zap.String("notification_id", note.ID.String()),
		zap.String("body", note.Body),
		zap.Int64s("movie_ids", note.MovieIDs),
		zap.Time("created_at", note.CreatedAt),
	)
	return nil
}
