// AngelaMos | 2026
// handler.go

package nudge

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/compass/internal/core"
	"github.com/angelamos/compass/internal/goal"
	"github.com/angelamos/compass/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/goals/{goalID}/nudge", h.Generate)
		r.Get("/nudges/remaining", h.Remaining)
	})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goalID := chi.URLParam(r, "goalID")

	result, err := h.service.Generate(r.Context(), userID, goalID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	// A denied attempt is a 200 with Allowed=false; the body carries the
	// reason kind the UI routes on.
	core.OK(w, result)
}

func (h *Handler) Remaining(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.service.Remaining(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var permErr goal.PermissionError
	if errors.As(err, &permErr) {
		core.Forbidden(w, permErr.Error())
		return
	}

	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "goal")
		return
	}

	core.InternalServerError(w, err)
}
