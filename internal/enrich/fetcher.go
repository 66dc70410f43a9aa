package enrich

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// Options tunes one fetcher run. Zero values fall back to the platform
// defaults in [constants].
type Options struct {
	// Concurrency is the worker pool size, capped at
	// [constants.EnrichMaxConcurrency] and at the task count.
	Concurrency int

	// MinSpacing is the minimum gap between successive request starts
	// across the whole pool, not per worker.
	MinSpacing time.Duration

	// LookupTimeout bounds a single external lookup.
	LookupTimeout time.Duration

	// OnProgress, when set, fires after each task settles, in completion
	// order. The results slice itself stays in task order regardless.
	OnProgress func(index int, result *Result)
}

func (o Options) withDefaults(taskCount int) Options {
	if o.Concurrency <= 0 {
		o.Concurrency = constants.EnrichConcurrency
	}
	if o.Concurrency > constants.EnrichMaxConcurrency {
		o.Concurrency = constants.EnrichMaxConcurrency
	}
	if o.Concurrency > taskCount {
		o.Concurrency = taskCount
	}
	if o.MinSpacing <= 0 {
		o.MinSpacing = constants.EnrichMinSpacing
	}
	if o.LookupTimeout <= 0 {
		o.LookupTimeout = constants.EnrichLookupTimeout
	}
	return o
}

// Fetcher runs batches of lookup tasks against the external source.
type Fetcher struct {
	source Source
	logger *slog.Logger
}

func NewFetcher(source Source, logger *slog.Logger) *Fetcher {
	return &Fetcher{source: source, logger: logger}
}

// Run fetches a review for every task and returns results indexed
// identically to tasks.
//
// # Execution Model
//
// Workers drain a queue of task indices and write each outcome into its
// original slot, so completion order never reorders results. One shared
// limiter paces request starts across the whole pool: a worker claims the
// next index, waits for the limiter, then starts its lookup.
//
// Cancelling ctx stops new lookups from starting. Lookups already in flight
// run to completion under their own timeout and still populate their slots;
// every unstarted task resolves to [ErrCancelled].
func (fetcher *Fetcher) Run(ctx context.Context, tasks []Task, opts Options) []Result {
	results := make([]Result, len(tasks))
	for i, task := range tasks {
		results[i] = Result{Task: task}
	}
	if len(tasks) == 0 {
		return results
	}

	opts = opts.withDefaults(len(tasks))

	queue := make(chan int, len(tasks))
	for i := range tasks {
		queue <- i
	}
	close(queue)

	// Burst 1: the first request starts immediately, every later one waits
	// out the spacing from the previous start.
	limiter := rate.NewLimiter(rate.Every(opts.MinSpacing), 1)

	done := make(chan struct{})
	for worker := 0; worker < opts.Concurrency; worker++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for index := range queue {
				fetcher.runTask(ctx, limiter, &results[index], opts)
				if opts.OnProgress != nil {
					opts.OnProgress(index, &results[index])
				}
			}
		}()
	}
	for worker := 0; worker < opts.Concurrency; worker++ {
		<-done
	}

	fetcher.logRun(tasks, results)
	return results
}

// runTask settles one result slot. Any failure stays inside the slot.
func (fetcher *Fetcher) runTask(ctx context.Context, limiter *rate.Limiter, result *Result, opts Options) {
	// Cancellation gate: checked at the claim boundary and while waiting
	// for the rate-limit slot, never mid-request.
	if ctx.Err() != nil {
		result.Err = ErrCancelled
		return
	}
	if err := limiter.Wait(ctx); err != nil {
		result.Err = ErrCancelled
		return
	}

	// The lookup detaches from the run's cancellation so an in-flight
	// request finishes once started; the timeout still bounds it.
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opts.LookupTimeout)
	defer cancel()

	raw, err := fetcher.source.Lookup(lookupCtx, result.Task.Title, result.Task.Author)
	if err != nil {
		result.Err = &LookupError{Title: result.Task.Title, Cause: err}
		fetcher.logger.Warn("enrich_lookup_failed",
			slog.Int("book_id", result.Task.BookID),
			slog.String("title", result.Task.Title),
			slog.Any("error", err),
		)
		return
	}

	review, err := convertReview(raw)
	if err != nil {
		result.Err = &LookupError{Title: result.Task.Title, Cause: err}
		fetcher.logger.Warn("enrich_conversion_failed",
			slog.Int("book_id", result.Task.BookID),
			slog.Any("error", err),
		)
		return
	}

	result.Review = review
}

func (fetcher *Fetcher) logRun(tasks []Task, results []Result) {
	succeeded := 0
	for i := range results {
		if !results[i].Failed() {
			succeeded++
		}
	}
	fetcher.logger.Info("enrich_run_finished",
		slog.Int("tasks", len(tasks)),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", len(tasks)-succeeded),
	)
}
