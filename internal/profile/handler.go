// AngelaMos | 2026
// handler.go

package profile

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
	r.Route("/me", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.GetMe)
		r.Put("/", h.UpdateMe)
	})
}

// RegisterBillingRoutes wires the billing collaborator's webhook. Billing
// calls in with a service token carrying the admin role.
func (h *Handler) RegisterBillingRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/billing", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/subscription", h.ApplySubscription)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if _, err := h.service.EnsureProfile(
		r.Context(),
		userID,
		middleware.GetUserEmail(r.Context()),
	); err != nil {
		core.InternalServerError(w, err)
		return
	}

	snap, err := h.service.LoadSnapshot(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMeResponse(snap))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.UpdateProfile(r.Context(), userID, req); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid timezone")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	snap, err := h.service.LoadSnapshot(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMeResponse(snap))
}

func (h *Handler) ApplySubscription(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.ApplySubscriptionEvent(
		r.Context(),
		req.UserID,
		req.Subscribed,
		req.Tier,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sub)
}
