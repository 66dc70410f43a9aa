package schema

// SocialRatingTable represents the 'social.rating' table
type SocialRatingTable struct {
	Table                string
	ID                   string
	UserID               string
	BookID               string
	Pace                 string
	EmotionalImpact      string
	Complexity           string
	CharacterDevelopment string
	PlotQuality          string
	ProseStyle           string
	Originality          string
	CreatedAt            string
	UpdatedAt            string
}

// SocialRating is the schema definition for social.rating
var SocialRating = SocialRatingTable{
	Table:                "social.rating",
	ID:                   "id",
	UserID:               "userid",
	BookID:               "bookid",
	Pace:                 "pace",
	EmotionalImpact:      "emotionalimpact",
	Complexity:           "complexity",
	CharacterDevelopment: "characterdevelopment",
	PlotQuality:          "plotquality",
	ProseStyle:           "prosestyle",
	Originality:          "originality",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}

// SocialFingerprintTable represents the 'social.bookfingerprint' table.
// Dimension means and counts live in a single JSONB column so the seven-axis
// shape can evolve without a migration per dimension.
type SocialFingerprintTable struct {
	Table          string
	BookID         string
	Dimensions     string
	StarEquivalent string
	TotalRatings   string
	UpdatedAt      string
}

// SocialFingerprint is the schema definition for social.bookfingerprint
var SocialFingerprint = SocialFingerprintTable{
	Table:          "social.bookfingerprint",
	BookID:         "bookid",
	Dimensions:     "dimensions",
	StarEquivalent: "starequivalent",
	TotalRatings:   "totalratings",
	UpdatedAt:      "updatedat",
}
