// AngelaMos | 2026
// handler.go

package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type StatusResponse struct {
	ToolID    int64 `json:"tool_id"`
	Favorited bool  `json:"favorited"`
	Changed   bool  `json:"changed"`
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/favorites", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/{toolId}", h.Add)
		r.Delete("/{toolId}", h.Remove)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tools, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, catalog.ToToolResponseList(tools))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	toolID, ok := toolIDParam(w, r)
	if !ok {
		return
	}

	inserted, err := h.service.Add(r.Context(), middleware.GetUserID(r.Context()), toolID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tool")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, StatusResponse{ToolID: toolID, Favorited: true, Changed: inserted})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	toolID, ok := toolIDParam(w, r)
	if !ok {
		return
	}

	removed, err := h.service.Remove(r.Context(), middleware.GetUserID(r.Context()), toolID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, StatusResponse{ToolID: toolID, Favorited: false, Changed: removed})
}

func toolIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "toolId"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid tool id")
		return 0, false
	}
	return id, true
}
