package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshFavorites(ctx context.Context) error {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return context.Canceled
	}
	return r.err
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestScheduler_RunsRefreshPeriodically(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, 20*time.Millisecond, time.Second, discard())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_Disabled(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, 0, time.Second, discard())

	require.NoError(t, s.Start())
	s.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), r.calls.Load())
}

func TestScheduler_ToleratesSupersededRuns(t *testing.T) {
	r := &countingRefresher{err: dashboard.ErrSuperseded}
	s := New(r, time.Hour, time.Second, discard())

	s.run()
	assert.Equal(t, int32(1), r.calls.Load())
}
