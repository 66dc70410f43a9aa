package enrich

import (
	"fmt"
	"math"

	"github.com/shelfmark/shelfmark/internal/content"
)

// OutOfRangeError reports an external level outside the provider's declared
// [0,5] scale. Bad values are rejected rather than clamped: a clamped value
// would silently skew every aggregate it touches.
type OutOfRangeError struct {
	Value float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("external level %v outside [0,5]", e.Value)
}

// ConvertLevel maps the provider's six-point [0,5] scale onto the internal
// five-point [0,4] scale.
//
// The two lowest external grades both map to [content.LevelNone]: the
// provider's grade 1 is noise-equivalent to "no content". Fractional inputs
// are valid and take the level of the band they fall in.
func ConvertLevel(external float64) (content.Level, error) {
	if math.IsNaN(external) || math.IsInf(external, 0) || external < 0 || external > 5 {
		return 0, &OutOfRangeError{Value: external}
	}

	switch {
	case external <= 1:
		return content.LevelNone, nil
	case external <= 2:
		return content.LevelMild, nil
	case external <= 3:
		return content.LevelModerate, nil
	case external <= 4:
		return content.LevelStrong, nil
	default:
		return content.LevelGraphic, nil
	}
}

// convertReview converts every category of a raw external review, failing
// the whole review if any single level is out of range.
func convertReview(raw *ExternalReview) (*Review, error) {
	review := &Review{Tags: raw.Tags}
	if review.Tags == nil {
		review.Tags = []string{}
	}

	conversions := []struct {
		external float64
		target   *content.Level
	}{
		{raw.Violence, &review.Violence},
		{raw.Language, &review.Language},
		{raw.SexualContent, &review.SexualContent},
		{raw.SubstanceUse, &review.SubstanceUse},
	}

	for _, conversion := range conversions {
		level, err := ConvertLevel(conversion.external)
		if err != nil {
			return nil, err
		}
		*conversion.target = level
	}

	return review, nil
}
