// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/ittools/internal/core"
)

var routePathPattern = regexp.MustCompile(`^/[a-z0-9]+(-[a-z0-9]+)*$`)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck // tag name is a constant
	_ = v.RegisterValidation("routepath", func(fl validator.FieldLevel) bool {
		return routePathPattern.MatchString(fl.Field().String())
	})

	return &Handler{service: service, validator: v}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/categories-with-tools", h.ListCategoriesWithTools)
	r.Get("/tool-details", h.GetToolDetails)
	r.Get("/tools/{toolId}", h.GetToolStatus)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/admin/tools", h.ListAllTools)
		r.Post("/add-tool", h.AddTool)
		r.Patch("/tools/{toolId}/toggle-is_premium", h.TogglePremium)
		r.Patch("/tools/{toolId}/toggle-is_active", h.ToggleActive)
		r.Delete("/delete-tool/{toolId}", h.DeleteTool)
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCategoryResponseList(categories))
}

func (h *Handler) ListCategoriesWithTools(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.CategoriesWithTools(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, grouped)
}

func (h *Handler) GetToolDetails(w http.ResponseWriter, r *http.Request) {
	tool, err := h.service.ToolDetails(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeToolError(w, err)
		return
	}

	core.OK(w, ToolDetailsResponse{Name: tool.Name, Description: tool.Description})
}

func (h *Handler) GetToolStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := toolIDParam(w, r)
	if !ok {
		return
	}

	tool, err := h.service.ToolStatus(r.Context(), id)
	if err != nil {
		writeToolError(w, err)
		return
	}

	core.OK(w, ToolStatusResponse{
		ID:        tool.ID,
		IsActive:  tool.IsActive,
		IsPremium: tool.IsPremium,
	})
}

func (h *Handler) ListAllTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.service.AllTools(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToToolResponseList(tools))
}

func (h *Handler) AddTool(w http.ResponseWriter, r *http.Request) {
	var req AddToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tool, err := h.service.AddTool(r.Context(), req)
	if err != nil {
		writeToolError(w, err)
		return
	}

	core.Created(w, ToToolResponse(tool))
}

func (h *Handler) TogglePremium(w http.ResponseWriter, r *http.Request) {
	id, ok := toolIDParam(w, r)
	if !ok {
		return
	}

	tool, err := h.service.TogglePremium(r.Context(), id)
	if err != nil {
		writeToolError(w, err)
		return
	}

	core.OK(w, ToToolResponse(tool))
}

func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := toolIDParam(w, r)
	if !ok {
		return
	}

	tool, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		writeToolError(w, err)
		return
	}

	core.OK(w, ToToolResponse(tool))
}

func (h *Handler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	id, ok := toolIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTool(r.Context(), id); err != nil {
		writeToolError(w, err)
		return
	}

	core.OK(w, map[string]int64{"deleted": id})
}

func toolIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "toolId"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid tool id")
		return 0, false
	}
	return id, true
}

func writeToolError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "tool")
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("tool name or route path"))
	default:
		core.InternalServerError(w, err)
	}
}
