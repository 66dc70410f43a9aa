package rating

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
)

// Handler implements the HTTP layer for ratings and fingerprints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the rating domain's endpoints.
//
// # Routing Strategy
//
//   - Fingerprints (Public): Any visitor may read a book's fingerprint.
//   - Ratings (Protected): Readers manage only their own rating.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{bookID}", handler.getFingerprint)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/{bookID}/me", handler.getMyRating)
		protected.Put("/{bookID}/me", handler.upsertMyRating)
		protected.Delete("/{bookID}/me", handler.deleteMyRating)
	})

	return router
}

// ratingPayload is the write body for a rating upsert. Missing or null
// dimensions are left unset.
type ratingPayload struct {
	Pace                 *int `json:"pace"`
	EmotionalImpact      *int `json:"emotional_impact"`
	Complexity           *int `json:"complexity"`
	CharacterDevelopment *int `json:"character_development"`
	PlotQuality          *int `json:"plot_quality"`
	ProseStyle           *int `json:"prose_style"`
	Originality          *int `json:"originality"`
}

func bookIDParam(request *http.Request) (int, error) {
	bookID, err := strconv.Atoi(requestutil.Param(request, "bookID"))
	if err != nil || bookID <= 0 {
		return 0, apperr.ValidationError("Invalid book ID")
	}
	return bookID, nil
}

func (handler *Handler) getFingerprint(writer http.ResponseWriter, request *http.Request) {
	bookID, err := bookIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fingerprint, err := handler.service.GetFingerprint(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fingerprint)
}

func (handler *Handler) getMyRating(writer http.ResponseWriter, request *http.Request) {
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

	rating, err := handler.service.GetRating(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rating)
}

func (handler *Handler) upsertMyRating(writer http.ResponseWriter, request *http.Request) {
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

	payload := ratingPayload{}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fingerprint, err := handler.service.UpsertRating(request.Context(), &Rating{
		BookID:               bookID,
		UserID:               userID,
		Pace:                 payload.Pace,
		EmotionalImpact:      payload.EmotionalImpact,
		Complexity:           payload.Complexity,
		CharacterDevelopment: payload.CharacterDevelopment,
		PlotQuality:          payload.PlotQuality,
		ProseStyle:           payload.ProseStyle,
		Originality:          payload.Originality,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fingerprint)
}

func (handler *Handler) deleteMyRating(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteRating(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
