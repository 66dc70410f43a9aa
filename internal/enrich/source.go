package enrich

import "context"

// ExternalReview is the provider's raw review shape: each category graded on
// a six-point [0,5] scale, possibly fractional, plus free-text warning tags.
type ExternalReview struct {
	Violence      float64  `json:"violence"`
	Language      float64  `json:"language"`
	SexualContent float64  `json:"sexual_content"`
	SubstanceUse  float64  `json:"substance_use"`
	Tags          []string `json:"tags"`
}

// Source looks up one review from the external provider.
//
// Implementations must honor the context deadline; the fetcher bounds every
// lookup so a stalled request cannot stall the pool. A missing review is
// reported as [ErrReviewNotFound].
type Source interface {
	Lookup(context context.Context, title, author string) (*ExternalReview, error)
}
