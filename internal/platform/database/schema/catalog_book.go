package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table           string
	ID              string
	Title           string
	Author          string
	ISBN            string
	Description     string
	CoverURL        string
	PublicationDate string
	CreatedAt       string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:           "catalog.book",
	ID:              "id",
	Title:           "title",
	Author:          "author",
	ISBN:            "isbn",
	Description:     "description",
	CoverURL:        "coverurl",
	PublicationDate: "publicationdate",
	CreatedAt:       "createdat",
}
