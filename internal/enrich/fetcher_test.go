package enrich_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/enrich"
)

// stubSource answers lookups from a function, tracking request starts.
type stubSource struct {
	mu       sync.Mutex
	starts   []time.Time
	byTitle  func(title string) (*enrich.ExternalReview, error)
	started  atomic.Int32
	blockFor time.Duration
}

func (s *stubSource) Lookup(_ context.Context, title, _ string) (*enrich.ExternalReview, error) {
	s.mu.Lock()
	s.starts = append(s.starts, time.Now())
	s.mu.Unlock()
	s.started.Add(1)

	if s.blockFor > 0 {
		time.Sleep(s.blockFor)
	}
	if s.byTitle != nil {
		return s.byTitle(title)
	}
	return &enrich.ExternalReview{Violence: 2, Language: 1, Tags: []string{"mild peril"}}, nil
}

func makeTasks(n int) []enrich.Task {
	tasks := make([]enrich.Task, n)
	for i := range tasks {
		tasks[i] = enrich.Task{BookID: i + 1, Title: fmt.Sprintf("book-%d", i)}
	}
	return tasks
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestFetcher_SpacingAndOrdering verifies that 10 instantly succeeding tasks
at concurrency 3 with 100ms spacing take at least 900ms (9 gaps between 10
request starts) and settle every slot in original task order.
*/
func TestFetcher_SpacingAndOrdering(t *testing.T) {
	source := &stubSource{}
	fetcher := enrich.NewFetcher(source, testLogger())

	began := time.Now()
	results := fetcher.Run(context.Background(), makeTasks(10), enrich.Options{
		Concurrency: 3,
		MinSpacing:  100 * time.Millisecond,
	})
	elapsed := time.Since(began)

	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond)

	require.Len(t, results, 10)
	for i, result := range results {
		assert.Equal(t, i+1, result.Task.BookID, "slot %d holds its own task", i)
		require.NotNil(t, result.Review, "slot %d populated", i)
		assert.False(t, result.Failed())
	}
}

/*
TestFetcher_FailureIsolation verifies that one always-failing task leaves
the other nine slots populated.
*/
func TestFetcher_FailureIsolation(t *testing.T) {
	source := &stubSource{
		byTitle: func(title string) (*enrich.ExternalReview, error) {
			if title == "book-4" {
				return nil, errors.New("boom")
			}
			return &enrich.ExternalReview{}, nil
		},
	}
	fetcher := enrich.NewFetcher(source, testLogger())

	results := fetcher.Run(context.Background(), makeTasks(10), enrich.Options{
		Concurrency: 3,
		MinSpacing:  time.Millisecond,
	})

	require.Len(t, results, 10)
	for i, result := range results {
		if i == 4 {
			assert.True(t, result.Failed())
			var lookupErr *enrich.LookupError
			assert.ErrorAs(t, result.Err, &lookupErr)
			continue
		}
		assert.NotNil(t, result.Review, "slot %d populated", i)
	}
}

/*
TestFetcher_ConversionFailureIsolated verifies that an out-of-range external
level fails only its own task.
*/
func TestFetcher_ConversionFailureIsolated(t *testing.T) {
	source := &stubSource{
		byTitle: func(title string) (*enrich.ExternalReview, error) {
			if title == "book-1" {
				return &enrich.ExternalReview{Violence: 7}, nil
			}
			return &enrich.ExternalReview{Violence: 3}, nil
		},
	}
	fetcher := enrich.NewFetcher(source, testLogger())

	results := fetcher.Run(context.Background(), makeTasks(3), enrich.Options{
		Concurrency: 1,
		MinSpacing:  time.Millisecond,
	})

	var outOfRange *enrich.OutOfRangeError
	assert.ErrorAs(t, results[1].Err, &outOfRange)
	assert.NotNil(t, results[0].Review)
	assert.NotNil(t, results[2].Review)
}

/*
TestFetcher_Cancellation verifies that cancelling mid-run stops new lookups
while started lookups still settle their slots, and every unstarted task
resolves to ErrCancelled.
*/
func TestFetcher_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	source := &stubSource{blockFor: 50 * time.Millisecond}
	fetcher := enrich.NewFetcher(source, testLogger())

	// Cancel once the third lookup has started.
	go func() {
		for source.started.Load() < 3 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	results := fetcher.Run(ctx, makeTasks(10), enrich.Options{
		Concurrency: 3,
		MinSpacing:  10 * time.Millisecond,
	})

	startedAtCancel := source.started.Load()

	populated, cancelled := 0, 0
	for _, result := range results {
		switch {
		case result.Review != nil:
			populated++
		case errors.Is(result.Err, enrich.ErrCancelled):
			cancelled++
		}
	}

	// Every lookup that started still settled; everything else is cancelled.
	assert.Equal(t, int(startedAtCancel), populated)
	assert.Equal(t, 10-populated, cancelled)
	assert.GreaterOrEqual(t, populated, 3)
}

/*
TestFetcher_ProgressCallback verifies that the progress hook fires once per
task with the settled result.
*/
func TestFetcher_ProgressCallback(t *testing.T) {
	source := &stubSource{}
	fetcher := enrich.NewFetcher(source, testLogger())

	var mu sync.Mutex
	seen := make(map[int]bool)

	fetcher.Run(context.Background(), makeTasks(5), enrich.Options{
		Concurrency: 2,
		MinSpacing:  time.Millisecond,
		OnProgress: func(index int, result *enrich.Result) {
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[index], "progress fired once per index")
			assert.NotNil(t, result.Review)
			seen[index] = true
		},
	})

	assert.Len(t, seen, 5)
}

/*
TestFetcher_EmptyTaskList verifies the zero-task edge.
*/
func TestFetcher_EmptyTaskList(t *testing.T) {
	fetcher := enrich.NewFetcher(&stubSource{}, testLogger())
	results := fetcher.Run(context.Background(), nil, enrich.Options{})
	assert.Empty(t, results)
}
