package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/content"
)

func submission(violence, language, sexual, substance content.Level, tags ...string) *content.Submission {
	return &content.Submission{
		Violence:      violence,
		Language:      language,
		SexualContent: sexual,
		SubstanceUse:  substance,
		Tags:          tags,
	}
}

/*
TestBuildAggregate_Empty verifies that a book with no submissions yields an
aggregate with a zero count, no category stats, and no tags.
*/
func TestBuildAggregate_Empty(t *testing.T) {
	aggregate := content.BuildAggregate(42, nil, nil)

	require.NotNil(t, aggregate)
	assert.Equal(t, 42, aggregate.BookID)
	assert.Equal(t, 0, aggregate.Count)
	assert.Empty(t, aggregate.Categories)
	assert.Equal(t, []string{}, aggregate.CommonTags)
}

/*
TestBuildAggregate_MeansAndRounding verifies per-category means and the
rounded display level.
*/
func TestBuildAggregate_MeansAndRounding(t *testing.T) {
	submissions := []*content.Submission{
		submission(2, 0, 1, 4),
		submission(3, 1, 1, 4),
	}

	aggregate := content.BuildAggregate(1, submissions, nil)

	require.Equal(t, 2, aggregate.Count)

	violence := aggregate.Categories[content.CategoryViolence]
	assert.InDelta(t, 2.5, violence.Mean, 1e-9)
	assert.Equal(t, content.LevelStrong, violence.Level) // 2.5 rounds up
	assert.Equal(t, "Strong", violence.Label)

	language := aggregate.Categories[content.CategoryLanguage]
	assert.InDelta(t, 0.5, language.Mean, 1e-9)
	assert.Equal(t, content.LevelMild, language.Level)

	sexual := aggregate.Categories[content.CategorySexualContent]
	assert.InDelta(t, 1.0, sexual.Mean, 1e-9)
	assert.Equal(t, content.LevelMild, sexual.Level)

	substance := aggregate.Categories[content.CategorySubstanceUse]
	assert.InDelta(t, 4.0, substance.Mean, 1e-9)
	assert.Equal(t, content.LevelGraphic, substance.Level)
}

/*
TestBuildAggregate_CommonTags verifies the shared-tag selection: tags
mentioned by at least two submissions win, ordered by frequency with
first-seen tie-breaking.
*/
func TestBuildAggregate_CommonTags(t *testing.T) {
	tests := []struct {
		name        string
		submissions []*content.Submission
		want        []string
	}{
		{
			name: "overlap wins over singletons",
			submissions: []*content.Submission{
				submission(0, 0, 0, 0, "gore", "war"),
				submission(0, 0, 0, 0, "gore", "torture"),
			},
			want: []string{"gore"},
		},
		{
			name: "single submission falls back to its top tag",
			submissions: []*content.Submission{
				submission(0, 0, 0, 0, "gore"),
			},
			want: []string{"gore"},
		},
		{
			name: "no overlap keeps only the first-seen tag",
			submissions: []*content.Submission{
				submission(0, 0, 0, 0, "war"),
				submission(0, 0, 0, 0, "torture"),
			},
			want: []string{"war"},
		},
		{
			name: "frequency order with first-seen tie-break",
			submissions: []*content.Submission{
				submission(0, 0, 0, 0, "war", "gore"),
				submission(0, 0, 0, 0, "war", "gore", "slurs"),
				submission(0, 0, 0, 0, "war", "slurs"),
			},
			want: []string{"war", "gore", "slurs"},
		},
		{
			name: "case and whitespace normalize before counting",
			submissions: []*content.Submission{
				submission(0, 0, 0, 0, " Gore "),
				submission(0, 0, 0, 0, "gore"),
			},
			want: []string{"gore"},
		},
		{
			name: "duplicate tag inside one submission counts once",
			submissions: []*content.Submission{
				submission(0, 0, 0, 0, "gore", "gore"),
				submission(0, 0, 0, 0, "war"),
			},
			want: []string{"gore"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			aggregate := content.BuildAggregate(1, test.submissions, nil)
			assert.Equal(t, test.want, aggregate.CommonTags)
		})
	}
}

/*
TestBuildAggregate_Idempotent verifies that rebuilding from the same
submission set yields an identical aggregate.
*/
func TestBuildAggregate_Idempotent(t *testing.T) {
	submissions := []*content.Submission{
		submission(2, 1, 0, 3, "gore", "war"),
		submission(4, 2, 1, 3, "gore"),
		submission(1, 1, 0, 2, "war", "addiction"),
	}

	first := content.BuildAggregate(7, submissions, nil)
	second := content.BuildAggregate(7, submissions, nil)

	assert.Equal(t, first, second)
}
