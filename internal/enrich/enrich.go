/*
Package enrich implements the batch enrichment pipeline: pulling third-party
content-sensitivity reviews for many books from a rate-limited external
source and feeding them into the content aggregation as provenance-marked
submissions.

Architecture:

  - Source: the external review provider behind a circuit breaker.
  - Fetcher: a bounded worker pool that drains a task queue while a single
    shared rate limiter enforces the minimum spacing between request starts
    across all workers.
  - Service: resolves book IDs into lookup tasks, runs the fetcher, and
    stores successful results so the affected aggregates recompute.

# Failure Model

A task can fail on its own (lookup error, review not found, out-of-range
scale value) without affecting its siblings: the failure is recorded in the
task's result slot and the pool keeps going. Cancellation is cooperative:
once signaled, no new lookup starts, in-flight lookups run to completion,
and unclaimed tasks resolve to [ErrCancelled].
*/
package enrich

import (
	"errors"
	"fmt"

	"github.com/shelfmark/shelfmark/internal/content"
)

// ErrCancelled marks tasks that were never started because the run was
// cancelled.
var ErrCancelled = errors.New("enrichment cancelled before task start")

// ErrReviewNotFound marks a lookup that completed but found no review for
// the title/author pair.
var ErrReviewNotFound = errors.New("no review found")

// LookupError wraps any per-task failure: transport errors, missing
// reviews, or scale conversion failures.
type LookupError struct {
	Title string
	Cause error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Title, e.Cause)
}

func (e *LookupError) Unwrap() error { return e.Cause }

// Task identifies one book to enrich. Title drives the external lookup;
// Author disambiguates when present.
type Task struct {
	BookID int    `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// Review is an external review converted onto the internal content scale.
type Review struct {
	Violence      content.Level `json:"violence_level"`
	Language      content.Level `json:"language_level"`
	SexualContent content.Level `json:"sexual_content_level"`
	SubstanceUse  content.Level `json:"substance_use_level"`
	Tags          []string      `json:"other_tags"`
}

// Result is the outcome slot for one task. Exactly one of Review and Err is
// set.
type Result struct {
	Task   Task    `json:"task"`
	Review *Review `json:"review,omitempty"`
	Err    error   `json:"-"`
}

// Failed reports whether the task produced no usable review.
func (r *Result) Failed() bool { return r.Err != nil }
