package rating_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/rating"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

var buildTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

/*
TestBuildFingerprint_Empty verifies that a never-rated book yields a
fingerprint with no dimensions, no star equivalent, and HasRatings false.
*/
func TestBuildFingerprint_Empty(t *testing.T) {
	fingerprint := rating.BuildFingerprint(42, nil, buildTime)

	require.NotNil(t, fingerprint)
	assert.Equal(t, 42, fingerprint.BookID)
	assert.Equal(t, 0, fingerprint.TotalRatings)
	assert.Empty(t, fingerprint.Dimensions)
	assert.Nil(t, fingerprint.StarEquivalent)
	assert.False(t, fingerprint.HasRatings)
	assert.Equal(t, buildTime, fingerprint.UpdatedAt)
}

/*
TestBuildFingerprint_UnsetDimensionsExcluded verifies that nil scores are
excluded from the mean rather than counted as zero, and that a dimension
nobody rated is absent from the result.
*/
func TestBuildFingerprint_UnsetDimensionsExcluded(t *testing.T) {
	ratings := []*rating.Rating{
		{Pace: pointer.To(4), EmotionalImpact: pointer.To(2)},
		{Pace: pointer.To(2)},
		{EmotionalImpact: pointer.To(5)},
	}

	fingerprint := rating.BuildFingerprint(1, ratings, buildTime)

	require.True(t, fingerprint.HasRatings)
	assert.Equal(t, 3, fingerprint.TotalRatings)

	pace := fingerprint.Dimensions[rating.DimensionPace]
	assert.InDelta(t, 3.0, pace.Mean, 1e-9)
	assert.Equal(t, 2, pace.Count)

	emotional := fingerprint.Dimensions[rating.DimensionEmotionalImpact]
	assert.InDelta(t, 3.5, emotional.Mean, 1e-9)
	assert.Equal(t, 2, emotional.Count)

	_, present := fingerprint.Dimensions[rating.DimensionProseStyle]
	assert.False(t, present)
}

/*
TestBuildFingerprint_StarEquivalent verifies that the star equivalent is the
unweighted mean of the dimension means, not a mean over raw scores.
*/
func TestBuildFingerprint_StarEquivalent(t *testing.T) {
	// Pace is rated by three readers (mean 2), originality by one (mean 5).
	// Averaging raw scores would give 2.75; averaging means gives 3.5.
	ratings := []*rating.Rating{
		{Pace: pointer.To(2)},
		{Pace: pointer.To(2)},
		{Pace: pointer.To(2), Originality: pointer.To(5)},
	}

	fingerprint := rating.BuildFingerprint(1, ratings, buildTime)

	require.NotNil(t, fingerprint.StarEquivalent)
	assert.InDelta(t, 3.5, *fingerprint.StarEquivalent, 1e-9)
}

/*
TestBuildFingerprint_StarWithinMeanBounds verifies that the star equivalent
never escapes the range spanned by the contributing dimension means.
*/
func TestBuildFingerprint_StarWithinMeanBounds(t *testing.T) {
	ratings := []*rating.Rating{
		{Pace: pointer.To(1), Complexity: pointer.To(5), ProseStyle: pointer.To(3)},
		{Pace: pointer.To(2), Complexity: pointer.To(4)},
		{Pace: pointer.To(1), PlotQuality: pointer.To(4)},
	}

	fingerprint := rating.BuildFingerprint(1, ratings, buildTime)
	require.NotNil(t, fingerprint.StarEquivalent)

	low, high := 5.0, 1.0
	for _, stat := range fingerprint.Dimensions {
		low = min(low, stat.Mean)
		high = max(high, stat.Mean)
	}

	assert.GreaterOrEqual(t, *fingerprint.StarEquivalent, low)
	assert.LessOrEqual(t, *fingerprint.StarEquivalent, high)
}

/*
TestBuildFingerprint_Idempotent verifies that rebuilding from the same rating
set and timestamp yields an identical fingerprint.
*/
func TestBuildFingerprint_Idempotent(t *testing.T) {
	ratings := []*rating.Rating{
		{Pace: pointer.To(3), EmotionalImpact: pointer.To(4), Originality: pointer.To(2)},
		{Pace: pointer.To(5), ProseStyle: pointer.To(3)},
	}

	first := rating.BuildFingerprint(7, ratings, buildTime)
	second := rating.BuildFingerprint(7, ratings, buildTime)

	assert.Equal(t, first, second)
}
