package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// HTTPSource talks to the external review provider over HTTPS.
//
// A circuit breaker sits in front of the provider: once consecutive failures
// pass the trip threshold, lookups fail fast for a cooldown period instead
// of burning rate-limit budget on a source that is down.
type HTTPSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*ExternalReview]
}

func NewHTTPSource(baseURL, apiKey string, logger *slog.Logger) *HTTPSource {
	settings := gobreaker.Settings{
		Name:        "enrich-source",
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing review is a valid answer from a healthy provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrReviewNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("enrich_source_breaker_state",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &HTTPSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		breaker: gobreaker.NewCircuitBreaker[*ExternalReview](settings),
	}
}

func (source *HTTPSource) Lookup(ctx context.Context, title, author string) (*ExternalReview, error) {
	return source.breaker.Execute(func() (*ExternalReview, error) {
		return source.fetch(ctx, title, author)
	})
}

func (source *HTTPSource) fetch(ctx context.Context, title, author string) (*ExternalReview, error) {
	query := url.Values{}
	query.Set("title", title)
	if author != "" {
		query.Set("author", author)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		source.baseURL+"/v1/reviews?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build review request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+source.apiKey)
	request.Header.Set("Accept", "application/json")

	response, err := source.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("review request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, ErrReviewNotFound
	case response.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("review request: unexpected status %d", response.StatusCode)
	}

	review := &ExternalReview{}
	if err := json.NewDecoder(response.Body).Decode(review); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}

	return review, nil
}
