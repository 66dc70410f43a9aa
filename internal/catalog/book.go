/*
Package catalog implements the book catalogue: books, genres, and the faceted
discovery filter.

Architecture:

  - Books and genres are plain catalogue records owned by this package.
  - Discovery combines text search, genre facets, and content-sensitivity
    thresholds. Threshold facets evaluate against the content aggregates
    owned by the content package; the filter itself is a pure function.
*/
package catalog

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/content"
	"github.com/shelfmark/shelfmark/internal/rating"
)

// Book is one catalogue record.
type Book struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn,omitempty"`
	Description     string     `json:"description,omitempty"`
	CoverURL        string     `json:"cover_url,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Genres          []Genre    `json:"genres"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Genre is a catalogue facet. Slugs are URL-safe and unique.
type Genre struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetail is the hydrated view returned by the detail endpoint: the
// catalogue record plus both derived aggregates.
type BookDetail struct {
	Book        *Book               `json:"book"`
	Fingerprint *rating.Fingerprint `json:"fingerprint"`
	Content     *content.Aggregate  `json:"content"`
}

// Query is the full set of discovery facets. All populated facets must match
// for a book to pass (conjunction); zero-valued facets match everything.
type Query struct {
	// Text matches case-insensitively against title and author.
	Text string

	// GenreSlug restricts to books carrying the genre.
	GenreSlug string

	// Max* cap the book's rounded content level per category. A book whose
	// aggregate has no submissions passes every threshold: an unknown level
	// is not treated as a high one.
	MaxViolence      *content.Level
	MaxLanguage      *content.Level
	MaxSexualContent *content.Level
	MaxSubstanceUse  *content.Level
}

// Thresholds returns the populated category caps in canonical order.
func (q Query) Thresholds() map[content.Category]*content.Level {
	return map[content.Category]*content.Level{
		content.CategoryViolence:      q.MaxViolence,
		content.CategoryLanguage:      q.MaxLanguage,
		content.CategorySexualContent: q.MaxSexualContent,
		content.CategorySubstanceUse:  q.MaxSubstanceUse,
	}
}

// Global field names for validation in the catalog domain.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldISBN   = "isbn"
	FieldName   = "name"
)

// MaxTitleLength bounds book titles; ISBN-13 is 13 digits plus hyphens.
const (
	MaxTitleLength  = 500
	MaxAuthorLength = 200
	MaxISBNLength   = 17
)
