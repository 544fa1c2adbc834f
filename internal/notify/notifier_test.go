package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	n := New("Favorite movie updated", "Fight Club", []int64{550})
	assert.NotEqual(t, [16]byte{}, [16]byte(n.ID))
	assert.Equal(t, []int64{550}, n.MovieIDs)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	notifier := NewLogNotifier(zap.New(core))

	require.NoError(t, notifier.Notify(context.Background(), New("2 favorite movies updated", "A, B", []int64{1, 2})))

	entries := logs.FilterMessage("2 favorite movies updated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "A, B", entries[0].ContextMap()["body"])
}

func TestFunc(t *testing.T) {
	var got Notification
	var n Notifier = Func(func(ctx context.Context, note Notification) error {
		got = note
		return nil
	})

	require.NoError(t, n.Notify(context.Background(), New("t", "b", nil)))
	assert.Equal(t, "t", got.Title)
}
