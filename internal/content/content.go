/*
Package content implements content-sensitivity submissions and their per-book
aggregation.

A submission records how much violence, strong language, sexual content, and
substance use one reader found in one book, on a 0-4 ordinal scale, plus
free-text warning tags. Each (user, book) pair holds at most one submission;
later writes replace earlier ones. The per-book Aggregate folds all current
submissions into per-category means, display levels, and a salient-tag set.
*/
package content

import "time"

// Level is the ordinal content-sensitivity scale.
//
// Unlike rating dimensions, levels are never "unset": a submission always
// carries all four categories, defaulting to [LevelNone].
type Level int

const (
	LevelNone Level = iota
	LevelMild
	LevelModerate
	LevelStrong
	LevelGraphic
)

// levelLabels maps levels to their display classification.
var levelLabels = [...]string{"None", "Mild", "Moderate", "Strong", "Graphic"}

// String returns the display classification for the level.
func (l Level) String() string {
	if !l.Valid() {
		return "Unknown"
	}
	return levelLabels[l]
}

// Valid reports whether the level is inside the declared [0,4] domain.
func (l Level) Valid() bool {
	return l >= LevelNone && l <= LevelGraphic
}

// Category identifies one of the four content-sensitivity axes.
type Category string

const (
	CategoryViolence      Category = "violence"
	CategoryLanguage      Category = "language"
	CategorySexualContent Category = "sexual_content"
	CategorySubstanceUse  Category = "substance_use"
)

// Categories lists all axes in canonical order.
var Categories = [4]Category{
	CategoryViolence,
	CategoryLanguage,
	CategorySexualContent,
	CategorySubstanceUse,
}

// Source records the provenance of a submission.
type Source string

const (
	// SourceUser marks a submission entered by a registered reader.
	SourceUser Source = "user"

	// SourceExternal marks a submission seeded by the enrichment pipeline.
	SourceExternal Source = "external"
)

// Submission is one reader's (or the enrichment pipeline's) content-sensitivity
// report for one book. At most one submission exists per (user, book).
type Submission struct {
	ID            int64     `json:"id"`
	BookID        int       `json:"book_id"`
	UserID        string    `json:"user_id"`
	Source        Source    `json:"source"`
	Violence      Level     `json:"violence_level"`
	Language      Level     `json:"language_level"`
	SexualContent Level     `json:"sexual_content_level"`
	SubstanceUse  Level     `json:"substance_use_level"`
	Tags          []string  `json:"other_tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LevelFor returns the submission's level for the given category.
// Unknown categories return LevelNone; callers validate categories upstream.
func (s *Submission) LevelFor(category Category) Level {
	switch category {
	case CategoryViolence:
		return s.Violence
	case CategoryLanguage:
		return s.Language
	case CategorySexualContent:
		return s.SexualContent
	case CategorySubstanceUse:
		return s.SubstanceUse
	}
	return LevelNone
}

// CategoryStat is the aggregated view of one category for one book.
type CategoryStat struct {
	// Mean is the raw arithmetic mean across all submissions.
	Mean float64 `json:"mean"`

	// Level is Mean rounded to the nearest integer, clamped to [0,4].
	// It is used only for display classification and threshold filtering.
	Level Level `json:"level"`

	// Label is the display classification of Level.
	Label string `json:"label"`
}

// Aggregate is the derived per-book summary of all current submissions.
//
// It is a view over the submission set: recomputed on every write, never
// partially updated, and bit-identical when recomputed from the same inputs.
type Aggregate struct {
	BookID     int                       `json:"book_id"`
	Categories map[Category]CategoryStat `json:"categories,omitempty"`
	CommonTags []string                  `json:"common_tags"`
	Count      int                       `json:"count"`
}

// Global field names for validation in the content domain.
const (
	FieldViolence      = "violence_level"
	FieldLanguage      = "language_level"
	FieldSexualContent = "sexual_content_level"
	FieldSubstanceUse  = "substance_use_level"
	FieldTags          = "other_tags"
)

// MaxTagLength bounds a single free-text tag.
const MaxTagLength = 100

// MaxTagsPerSubmission bounds the tag set of a single submission.
const MaxTagsPerSubmission = 20
