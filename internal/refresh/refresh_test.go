package refresh_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/refresh"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/lifecycle"
)

type fakeRefresher struct {
	changed int
	err     error
	calls   atomic.Int32
	today   atomic.Value
}

func (f *fakeRefresher) Refresh(_ context.Context, today time.Time) (int, error) {
	f.calls.Add(1)
	f.today.Store(today)
	return f.changed, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	today := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	trainings := &fakeRefresher{changed: 3}
	exams := &fakeRefresher{err: errors.New("connection reset")}
	ppe := &fakeRefresher{}

	r := refresh.NewRunner(safety.FixedClock(today), 0, discard())
	r.Register("trainings", trainings)
	r.Register("exams", exams)
	r.Register("ppe", ppe)

	got := r.RunOnce(context.Background())

	assert.Equal(t, map[string]int{"trainings": 3, "ppe": 0}, got)
	assert.Equal(t, int32(1), exams.calls.Load())
	assert.Equal(t, today, trainings.today.Load())
}

func TestStartRunsAfterStartup(t *testing.T) {
	lc := lifecycle.New()
	docs := &fakeRefresher{changed: 1}

	r := refresh.NewRunner(safety.FixedClock(time.Now()), 10*time.Millisecond, discard())
	r.Register("documents", docs)
	r.Start(lc)

	release := make(chan struct{})
	lc.OnStartup(func() { <-release })

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, docs.calls.Load())

	close(release)
	lc.WaitForStartup()

	require.Eventually(t, func() bool { return docs.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, lc.Shutdown(time.Second))

	after := docs.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, docs.calls.Load())
}
