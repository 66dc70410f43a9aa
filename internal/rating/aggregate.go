package rating

import "time"

// BuildFingerprint folds the full current rating set for one book into a
// [Fingerprint].
//
// The fold is pure: the same rating set and timestamp always yield an
// identical fingerprint. Callers pass every current rating for the book;
// the builder never reads storage itself.
func BuildFingerprint(bookID int, ratings []*Rating, now time.Time) *Fingerprint {
	fingerprint := &Fingerprint{
		BookID:       bookID,
		TotalRatings: len(ratings),
		UpdatedAt:    now,
	}

	if len(ratings) == 0 {
		return fingerprint
	}

	fingerprint.Dimensions = make(map[Dimension]DimensionStat, len(Dimensions))

	// Each dimension aggregates independently over its set scores only.
	// A dimension nobody rated stays absent rather than reading as zero.
	meanSum := 0.0
	meanCount := 0
	for _, dimension := range Dimensions {
		sum, count := 0, 0
		for _, rating := range ratings {
			if score := rating.ScoreFor(dimension); score != nil {
				sum += *score
				count++
			}
		}
		if count == 0 {
			continue
		}

		mean := float64(sum) / float64(count)
		fingerprint.Dimensions[dimension] = DimensionStat{Mean: mean, Count: count}
		meanSum += mean
		meanCount++
	}

	if meanCount == 0 {
		fingerprint.Dimensions = nil
		return fingerprint
	}

	// The star equivalent averages the dimension means, not the raw scores,
	// so a heavily rated dimension cannot dominate the scalar.
	star := meanSum / float64(meanCount)
	fingerprint.StarEquivalent = &star
	fingerprint.HasRatings = true

	return fingerprint
}
