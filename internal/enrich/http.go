package enrich

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
)

// Handler implements the HTTP layer for enrichment runs.
type Handler struct {
	service *Service
}

// NewHandler constructs a new enrichment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the enrichment endpoints. Every route
// requires authentication: runs consume external rate-limit budget.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/run", handler.run)

	return router
}

// runPayload is the write body for an enrichment run. Concurrency and
// spacing are optional overrides; zero values use the platform defaults.
type runPayload struct {
	BookIDs          []int `json:"book_ids"`
	Concurrency      int   `json:"concurrency"`
	MinSpacingMillis int   `json:"min_spacing_ms"`
}

/*
POST /api/v1/enrichment/run.

Description: Enriches the given books from the external review source and
returns a per-book report. The run is synchronous; failures for individual
books are reported, never fatal to the run.
*/
func (handler *Handler) run(writer http.ResponseWriter, request *http.Request) {
	payload := runPayload{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Run(request.Context(), payload.BookIDs, Options{
		Concurrency: payload.Concurrency,
		MinSpacing:  time.Duration(payload.MinSpacingMillis) * time.Millisecond,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
