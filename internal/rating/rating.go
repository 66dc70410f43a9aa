/*
Package rating implements multi-dimensional book ratings and the per-book
fingerprint derived from them.

A rating scores a book on up to seven independent "feel" dimensions, each on a
1-5 ordinal scale. Dimensions are optional: a reader who has no opinion on
prose style simply leaves it unset, and the unset dimension is excluded from
aggregation rather than counted as zero. Each (user, book) pair holds at most
one rating; later writes replace earlier ones.

The Fingerprint folds all current ratings for a book into per-dimension means
and a single star equivalent. It is a materialized view: recomputed in full on
every rating write and never edited in place.
*/
package rating

import "time"

// Dimension identifies one of the seven "feel" axes.
type Dimension string

const (
	DimensionPace                 Dimension = "pace"
	DimensionEmotionalImpact      Dimension = "emotional_impact"
	DimensionComplexity           Dimension = "complexity"
	DimensionCharacterDevelopment Dimension = "character_development"
	DimensionPlotQuality          Dimension = "plot_quality"
	DimensionProseStyle           Dimension = "prose_style"
	DimensionOriginality          Dimension = "originality"
)

// Dimensions lists all axes in canonical order.
var Dimensions = [7]Dimension{
	DimensionPace,
	DimensionEmotionalImpact,
	DimensionComplexity,
	DimensionCharacterDevelopment,
	DimensionPlotQuality,
	DimensionProseStyle,
	DimensionOriginality,
}

// Score bounds for every dimension.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one reader's multi-dimensional score set for one book.
// Nil dimension pointers mean "not rated", never zero.
type Rating struct {
	ID                   int64     `json:"id"`
	BookID               int       `json:"book_id"`
	UserID               string    `json:"user_id"`
	Pace                 *int      `json:"pace"`
	EmotionalImpact      *int      `json:"emotional_impact"`
	Complexity           *int      `json:"complexity"`
	CharacterDevelopment *int      `json:"character_development"`
	PlotQuality          *int      `json:"plot_quality"`
	ProseStyle           *int      `json:"prose_style"`
	Originality          *int      `json:"originality"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ScoreFor returns the rating's score for the given dimension, or nil when
// the dimension is unset. Unknown dimensions return nil.
func (r *Rating) ScoreFor(dimension Dimension) *int {
	switch dimension {
	case DimensionPace:
		return r.Pace
	case DimensionEmotionalImpact:
		return r.EmotionalImpact
	case DimensionComplexity:
		return r.Complexity
	case DimensionCharacterDevelopment:
		return r.CharacterDevelopment
	case DimensionPlotQuality:
		return r.PlotQuality
	case DimensionProseStyle:
		return r.ProseStyle
	case DimensionOriginality:
		return r.Originality
	}
	return nil
}

// DimensionStat is the aggregated view of one dimension for one book.
type DimensionStat struct {
	// Mean is the arithmetic mean of all set scores for this dimension.
	Mean float64 `json:"mean"`

	// Count is the number of ratings that set this dimension.
	Count int `json:"count"`
}

// Fingerprint is the derived per-book summary of all current ratings.
//
// Dimensions nobody has rated are absent from the map. StarEquivalent is the
// unweighted mean of the dimension means that exist, so each dimension
// contributes equally regardless of how many readers rated it. It is nil when
// no dimension has a contributor.
type Fingerprint struct {
	BookID         int                         `json:"book_id"`
	Dimensions     map[Dimension]DimensionStat `json:"dimensions,omitempty"`
	StarEquivalent *float64                    `json:"star_equivalent"`
	TotalRatings   int                         `json:"total_ratings"`
	HasRatings     bool                        `json:"has_ratings"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// Global field names for validation in the rating domain.
const (
	FieldPace                 = "pace"
	FieldEmotionalImpact      = "emotional_impact"
	FieldComplexity           = "complexity"
	FieldCharacterDevelopment = "character_development"
	FieldPlotQuality          = "plot_quality"
	FieldProseStyle           = "prose_style"
	FieldOriginality          = "originality"
)
