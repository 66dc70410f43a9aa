package catalog

import (
	"strings"

	"github.com/shelfmark/shelfmark/internal/content"
)

// FilterBooks applies the discovery query to a candidate list.
//
// Every populated facet must match (conjunction). The result preserves the
// input order and the input slice is never mutated. Content thresholds read
// the supplied aggregates; a book with no aggregate, or an aggregate with
// zero submissions, passes every threshold.
func FilterBooks(books []*Book, aggregates map[int]*content.Aggregate, query Query) []*Book {
	matched := make([]*Book, 0, len(books))
	for _, book := range books {
		if matchesQuery(book, aggregates[book.ID], query) {
			matched = append(matched, book)
		}
	}
	return matched
}

func matchesQuery(book *Book, aggregate *content.Aggregate, query Query) bool {
	if !matchesText(book, query.Text) {
		return false
	}
	if !matchesGenre(book, query.GenreSlug) {
		return false
	}

	for category, threshold := range query.Thresholds() {
		if threshold == nil {
			continue
		}
		if !withinThreshold(aggregate, category, *threshold) {
			return false
		}
	}

	return true
}

// matchesText reports whether the title or author contains the query text,
// case-insensitively. An empty query matches everything.
func matchesText(book *Book, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(book.Title), needle) ||
		strings.Contains(strings.ToLower(book.Author), needle)
}

func matchesGenre(book *Book, slug string) bool {
	if slug == "" {
		return true
	}
	for _, genre := range book.Genres {
		if genre.Slug == slug {
			return true
		}
	}
	return false
}

// withinThreshold compares the book's rounded display level against the cap.
// Books nobody has reported on pass vacuously.
func withinThreshold(aggregate *content.Aggregate, category content.Category, threshold content.Level) bool {
	if aggregate == nil || aggregate.Count == 0 {
		return true
	}
	return aggregate.Categories[category].Level <= threshold
}
