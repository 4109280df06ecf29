// AngelaMos | 2026
// handler.go

package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/goals", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{goalID}", h.Get)
		r.Put("/{goalID}", h.Update)
		r.Post("/{goalID}/checkin", h.CheckIn)
		r.Post("/{goalID}/share", h.Share)
		r.Delete("/{goalID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response := CreateGoalResponse{
		Created:    result.Created,
		ReasonKind: result.ReasonKind,
		Reason:     result.Reason,
	}
	if result.Goal != nil {
		goalResp := ToGoalResponse(result.Goal)
		response.Goal = &goalResp
	}

	if result.Created {
		core.Created(w, response)
		return
	}

	// Over-cap is a first-class outcome, not an error: the body carries
	// the reason so the UI can route the right remediation.
	core.OK(w, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	views, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToGoalResponseList(views))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goalID := chi.URLParam(r, "goalID")

	view, err := h.service.Get(r.Context(), userID, goalID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToGoalResponse(view))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goalID := chi.URLParam(r, "goalID")

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	view, err := h.service.Update(r.Context(), userID, goalID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToGoalResponse(view))
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goalID := chi.URLParam(r, "goalID")

	result, err := h.service.CheckIn(r.Context(), userID, goalID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, CheckInResponse{
		CheckedIn:        result.CheckedIn,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
		StreakCount:      result.StreakCount,
	})
}

func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goalID := chi.URLParam(r, "goalID")

	result, err := h.service.Share(r.Context(), userID, goalID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ShareResponse{ShareToken: result.ShareToken})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goalID := chi.URLParam(r, "goalID")

	if err := h.service.Delete(r.Context(), userID, goalID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var permErr PermissionError
	if errors.As(err, &permErr) {
		core.Forbidden(w, permErr.Error())
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "goal")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
