// AngelaMos | 2026
// handler.go

package upgrade

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type DecisionResponse struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Post("/upgrade-request", h.Create)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/upgrade-requests", h.ListPending)
		r.Post("/approve-request/{userId}", h.Approve)
		r.Post("/reject-request/{userId}", h.Reject)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if !core.IsAppError(err) && errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, req)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.ListPending(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if pending == nil {
		pending = []PendingRequest{}
	}
	core.OK(w, pending)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Approve(r.Context(), userID); err != nil {
		writeDecisionError(w, err)
		return
	}

	core.OK(w, DecisionResponse{UserID: userID, Status: "approved"})
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Reject(r.Context(), userID); err != nil {
		writeDecisionError(w, err)
		return
	}

	core.OK(w, DecisionResponse{UserID: userID, Status: "rejected"})
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}

func writeDecisionError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "pending upgrade request")
		return
	}
	core.InternalServerError(w, err)
}
