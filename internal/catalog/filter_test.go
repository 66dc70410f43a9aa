package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/content"
)

func level(l content.Level) *content.Level { return &l }

func aggregateWith(bookID, count int, violence content.Level) *content.Aggregate {
	return &content.Aggregate{
		BookID: bookID,
		Count:  count,
		Categories: map[content.Category]content.CategoryStat{
			content.CategoryViolence: {Level: violence},
		},
	}
}

var testBooks = []*catalog.Book{
	{ID: 1, Title: "The Quiet War", Author: "Paul McAuley", Genres: []catalog.Genre{{Slug: "science-fiction"}}},
	{ID: 2, Title: "Gardens of the Moon", Author: "Steven Erikson", Genres: []catalog.Genre{{Slug: "fantasy"}}},
	{ID: 3, Title: "A Quiet Life", Author: "Beryl Bainbridge", Genres: []catalog.Genre{{Slug: "literary"}}},
}

/*
TestFilterBooks_Text verifies case-insensitive substring matching over both
title and author.
*/
func TestFilterBooks_Text(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"empty matches all", "", []int{1, 2, 3}},
		{"title substring", "quiet", []int{1, 3}},
		{"author substring", "erikson", []int{2}},
		{"mixed case", "QUIET WAR", []int{1}},
		{"no match", "dune", []int{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := catalog.FilterBooks(testBooks, nil, catalog.Query{Text: test.text})
			assert.Equal(t, test.want, bookIDs(got))
		})
	}
}

/*
TestFilterBooks_Genre verifies the genre facet.
*/
func TestFilterBooks_Genre(t *testing.T) {
	got := catalog.FilterBooks(testBooks, nil, catalog.Query{GenreSlug: "fantasy"})
	assert.Equal(t, []int{2}, bookIDs(got))
}

/*
TestFilterBooks_ContentThresholds verifies threshold facets against rounded
levels, including the vacuous pass for books without submissions.
*/
func TestFilterBooks_ContentThresholds(t *testing.T) {
	aggregates := map[int]*content.Aggregate{
		// Book 1 rounds to Strong (3) violence; book 2 has an aggregate with
		// zero submissions; book 3 has no aggregate at all.
		1: aggregateWith(1, 4, content.LevelStrong),
		2: {BookID: 2, Count: 0},
	}

	tests := []struct {
		name        string
		maxViolence *content.Level
		want        []int
	}{
		{"no threshold", nil, []int{1, 2, 3}},
		{"cap below rounded level excludes", level(content.LevelModerate), []int{2, 3}},
		{"cap at rounded level includes", level(content.LevelStrong), []int{1, 2, 3}},
		{"zero cap still passes unreported books", level(content.LevelNone), []int{2, 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := catalog.FilterBooks(testBooks, aggregates, catalog.Query{MaxViolence: test.maxViolence})
			assert.Equal(t, test.want, bookIDs(got))
		})
	}
}

/*
TestFilterBooks_Conjunction verifies that all populated facets must match
and that the input order is preserved.
*/
func TestFilterBooks_Conjunction(t *testing.T) {
	aggregates := map[int]*content.Aggregate{
		1: aggregateWith(1, 2, content.LevelGraphic),
	}

	// "quiet" matches books 1 and 3, but the violence cap drops book 1.
	got := catalog.FilterBooks(testBooks, aggregates, catalog.Query{
		Text:        "quiet",
		MaxViolence: level(content.LevelMild),
	})
	assert.Equal(t, []int{3}, bookIDs(got))

	// The unfiltered pass keeps the input order intact.
	all := catalog.FilterBooks(testBooks, aggregates, catalog.Query{})
	assert.Equal(t, []int{1, 2, 3}, bookIDs(all))
}

func bookIDs(books []*catalog.Book) []int {
	ids := make([]int, 0, len(books))
	for _, book := range books {
		ids = append(ids, book.ID)
	}
	return ids
}
