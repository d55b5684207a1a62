package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBegin(t *testing.T) {
	sessionID := uuid.New()
	ctx := RunBegin(context.Background(), sessionID, "https://youtu.be/abc")

	meta := GetRunMetadata(ctx)
	assert.NotEqual(t, uuid.Nil, meta.RunID)
	assert.Equal(t, sessionID, meta.SessionID)
	assert.Equal(t, "https://youtu.be/abc", meta.SourceURL)
	assert.WithinDuration(t, time.Now(), meta.StartTime, time.Second)
	assert.GreaterOrEqual(t, meta.Elapsed(), time.Duration(0))

	other := GetRunMetadata(RunBegin(context.Background(), sessionID, ""))
	assert.NotEqual(t, meta.RunID, other.RunID)
}

func TestGetRunMetadata_Empty(t *testing.T) {
	meta := GetRunMetadata(context.Background())
	assert.Equal(t, uuid.Nil, meta.RunID)
	assert.Zero(t, meta.Elapsed())
}

func TestGuard(t *testing.T) {
	t.Run("passes result through", func(t *testing.T) {
		want := errors.New("boom")
		err := Guard(context.Background(), func(context.Context) error { return want })
		assert.ErrorIs(t, err, want)
	})

	t.Run("recovers panic", func(t *testing.T) {
		err := Guard(context.Background(), func(context.Context) error { panic("bad segment") })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad segment")
	})

	t.Run("skips cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		called := false
		err := Guard(ctx, func(context.Context) error { called = true; return nil })
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}
