package schema

// SocialContentSubmissionTable represents the 'social.contentsubmission' table
type SocialContentSubmissionTable struct {
	Table         string
	ID            string
	UserID        string
	BookID        string
	Source        string
	Violence      string
	Language      string
	SexualContent string
	SubstanceUse  string
	Tags          string
	CreatedAt     string
	UpdatedAt     string
}

// SocialContentSubmission is the schema definition for social.contentsubmission
var SocialContentSubmission = SocialContentSubmissionTable{
	Table:         "social.contentsubmission",
	ID:            "id",
	UserID:        "userid",
	BookID:        "bookid",
	Source:        "source",
	Violence:      "violence",
	Language:      "language",
	SexualContent: "sexualcontent",
	SubstanceUse:  "substanceuse",
	Tags:          "tags",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
