package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/content"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// Handler implements the HTTP layer for catalogue browsing and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog domain's endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Browsing and faceted filtering for all visitors.
//   - Management (Protected): Creating books and genres requires a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/genres", handler.listGenres)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createBook)
		protected.Post("/genres", handler.createGenre)
	})

	return router
}

/*
GET /api/v1/books.

Query parameters:
  - q: case-insensitive substring over title and author
  - genre: genre slug
  - max_violence, max_language, max_sexual_content, max_substance_use:
    content level caps (0-4); unreported books always pass
  - page, limit: pagination
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	query, err := queryFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, meta, err := handler.service.ListBooks(request.Context(), query, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, books, meta)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil || bookID <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Invalid book ID"))
		return
	}

	detail, err := handler.service.GetBookDetail(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

// bookPayload is the write body for book creation.
type bookPayload struct {
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	Description     string     `json:"description"`
	CoverURL        string     `json:"cover_url"`
	PublicationDate *time.Time `json:"publication_date"`
	GenreIDs        []int      `json:"genre_ids"`
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	payload := bookPayload{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateBook(request.Context(), &Book{
		Title:           payload.Title,
		Author:          payload.Author,
		ISBN:            payload.ISBN,
		Description:     payload.Description,
		CoverURL:        payload.CoverURL,
		PublicationDate: payload.PublicationDate,
	}, payload.GenreIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	payload := struct {
		Name string `json:"name"`
	}{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.CreateGenre(request.Context(), &Genre{Name: payload.Name})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}

// queryFromRequest parses the discovery facets from the query string.
func queryFromRequest(request *http.Request) (Query, error) {
	values := request.URL.Query()
	query := Query{
		Text:      values.Get("q"),
		GenreSlug: values.Get("genre"),
	}

	thresholds := []struct {
		param  string
		target **content.Level
	}{
		{"max_violence", &query.MaxViolence},
		{"max_language", &query.MaxLanguage},
		{"max_sexual_content", &query.MaxSexualContent},
		{"max_substance_use", &query.MaxSubstanceUse},
	}

	for _, threshold := range thresholds {
		raw := values.Get(threshold.param)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil || !content.Level(parsed).Valid() {
			return Query{}, apperr.ValidationError("Invalid " + threshold.param)
		}
		level := content.Level(parsed)
		*threshold.target = &level
	}

	return query, nil
}
