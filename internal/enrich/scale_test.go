package enrich_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/content"
	"github.com/shelfmark/shelfmark/internal/enrich"
)

/*
TestConvertLevel verifies the six-point to five-point step function,
including the collapse of external grades 0 and 1 onto LevelNone.
*/
func TestConvertLevel(t *testing.T) {
	tests := []struct {
		external float64
		want     content.Level
	}{
		{0, content.LevelNone},
		{1, content.LevelNone},
		{2, content.LevelMild},
		{3, content.LevelModerate},
		{4, content.LevelStrong},
		{5, content.LevelGraphic},
		// Fractional grades take the band they fall in.
		{0.5, content.LevelNone},
		{2.4, content.LevelModerate},
		{4.9, content.LevelGraphic},
	}

	for _, test := range tests {
		got, err := enrich.ConvertLevel(test.external)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "external level %v", test.external)
	}
}

/*
TestConvertLevel_OutOfRange verifies that bad inputs are rejected, never
clamped.
*/
func TestConvertLevel_OutOfRange(t *testing.T) {
	for _, external := range []float64{-1, -0.001, 5.1, 100, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := enrich.ConvertLevel(external)

		var outOfRange *enrich.OutOfRangeError
		require.ErrorAs(t, err, &outOfRange, "external level %v", external)
	}
}
