package content

import (
	"math"
	"strings"
)

// TagPolicy selects the "common" tags for a book from the full submission set.
//
// The selection threshold is a product decision rather than a hard contract,
// so it lives behind this single named function type: swapping the policy
// never touches aggregation call sites.
type TagPolicy func(submissions []*Submission) []string

// BuildAggregate folds the full current submission set for one book into an
// [Aggregate].
//
// The fold is pure and idempotent: the same submission set always yields an
// identical aggregate. Callers pass every current submission for the book;
// the builder never reads storage itself.
func BuildAggregate(bookID int, submissions []*Submission, tagPolicy TagPolicy) *Aggregate {
	if tagPolicy == nil {
		tagPolicy = CommonTags
	}

	aggregate := &Aggregate{
		BookID:     bookID,
		CommonTags: []string{},
		Count:      len(submissions),
	}

	if len(submissions) == 0 {
		return aggregate
	}

	// Levels are always present on every submission, so every category's
	// denominator is simply the submission count.
	aggregate.Categories = make(map[Category]CategoryStat, len(Categories))
	for _, category := range Categories {
		sum := 0
		for _, submission := range submissions {
			sum += int(submission.LevelFor(category))
		}

		mean := float64(sum) / float64(len(submissions))
		level := roundLevel(mean)

		aggregate.Categories[category] = CategoryStat{
			Mean:  mean,
			Level: level,
			Label: level.String(),
		}
	}

	aggregate.CommonTags = tagPolicy(submissions)

	return aggregate
}

// CommonTags is the default [TagPolicy].
//
// A tag is "common" when at least 2 distinct submissions mention it. When no
// tag reaches that threshold, the single most frequent tag is kept so a book
// with one detailed submission still surfaces its warning. Tags are
// case-normalized; ordering is by descending frequency with ties broken by
// first-seen order.
func CommonTags(submissions []*Submission) []string {
	type tagCount struct {
		tag   string
		count int
		seen  int // first-seen ordinal for stable tie-breaking
	}

	counts := make(map[string]*tagCount)
	order := []*tagCount{}

	for _, submission := range submissions {
		// A tag repeated inside one submission counts once.
		inThisSubmission := make(map[string]bool, len(submission.Tags))

		for _, raw := range submission.Tags {
			tag := strings.ToLower(strings.TrimSpace(raw))
			if tag == "" || inThisSubmission[tag] {
				continue
			}
			inThisSubmission[tag] = true

			entry, ok := counts[tag]
			if !ok {
				entry = &tagCount{tag: tag, seen: len(order)}
				counts[tag] = entry
				order = append(order, entry)
			}
			entry.count++
		}
	}

	if len(order) == 0 {
		return []string{}
	}

	// Stable selection sort by (count desc, seen asc). The tag universe per
	// book is tiny, so quadratic ordering is fine and keeps ties predictable.
	sorted := make([]*tagCount, len(order))
	copy(sorted, order)
	for i := 0; i < len(sorted); i++ {
		best := i
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].count > sorted[best].count ||
				(sorted[j].count == sorted[best].count && sorted[j].seen < sorted[best].seen) {
				best = j
			}
		}
		sorted[i], sorted[best] = sorted[best], sorted[i]
	}

	common := []string{}
	for _, entry := range sorted {
		if entry.count >= 2 {
			common = append(common, entry.tag)
		}
	}

	// Fallback: no overlap between submissions, keep the top tag alone.
	if len(common) == 0 {
		common = append(common, sorted[0].tag)
	}

	return common
}

// roundLevel maps a raw mean onto the display [Level], rounding to the
// nearest integer and clamping to the declared domain.
func roundLevel(mean float64) Level {
	rounded := Level(math.Round(mean))
	if rounded < LevelNone {
		return LevelNone
	}
	if rounded > LevelGraphic {
		return LevelGraphic
	}
	return rounded
}
