package content

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
)

// Handler implements the HTTP layer for content submissions and aggregates.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the content domain's endpoints.
//
// # Routing Strategy
//
//   - Aggregates (Public): Any visitor may read a book's content summary.
//   - Submissions (Protected): Readers manage only their own submission.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{bookID}", handler.getAggregate)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/{bookID}/me", handler.getMySubmission)
		protected.Put("/{bookID}/me", handler.upsertMySubmission)
		protected.Delete("/{bookID}/me", handler.deleteMySubmission)
	})

	return router
}

// submissionPayload is the write body for a submission upsert.
type submissionPayload struct {
	Violence      Level    `json:"violence_level"`
	Language      Level    `json:"language_level"`
	SexualContent Level    `json:"sexual_content_level"`
	SubstanceUse  Level    `json:"substance_use_level"`
	Tags          []string `json:"other_tags"`
}

func bookIDParam(request *http.Request) (int, error) {
	bookID, err := strconv.Atoi(requestutil.Param(request, "bookID"))
	if err != nil || bookID <= 0 {
		return 0, apperr.ValidationError("Invalid book ID")
	}
	return bookID, nil
}

func (handler *Handler) getAggregate(writer http.ResponseWriter, request *http.Request) {
	bookID, err := bookIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	aggregate, err := handler.service.GetAggregate(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, aggregate)
}

func (handler *Handler) getMySubmission(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := bookIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submission, err := handler.service.GetSubmission(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submission)
}

func (handler *Handler) upsertMySubmission(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := bookIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := submissionPayload{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	aggregate, err := handler.service.UpsertSubmission(request.Context(), &Submission{
		BookID:        bookID,
		UserID:        userID,
		Source:        SourceUser,
		Violence:      payload.Violence,
		Language:      payload.Language,
		SexualContent: payload.SexualContent,
		SubstanceUse:  payload.SubstanceUse,
		Tags:          payload.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, aggregate)
}

func (handler *Handler) deleteMySubmission(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := bookIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSubmission(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
