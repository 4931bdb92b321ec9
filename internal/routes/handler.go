// AngelaMos | 2026
// handler.go

package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/middleware"
)

const maxRunBody = 1 << 20

type Handler struct {
	composer *Composer
}

func NewHandler(composer *Composer) *Handler {
	return &Handler{composer: composer}
}

type RouteResponse struct {
	Route
	Allowed bool          `json:"allowed"`
	Reason  access.Reason `json:"reason"`
}

type RunResponse struct {
	Tool       string `json:"tool"`
	Output     any    `json:"output"`
	DurationMS int64  `json:"duration_ms"`
}

// RegisterRoutes mounts the route listing and the widget runner. viewer
// must attach an optional identity and resolve it; limiter throttles runs.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	viewer, limiter func(http.Handler) http.Handler,
) {
	r.With(viewer).Get("/routes", h.List)
	r.With(viewer, limiter).Post("/run/{routePath}", h.Run)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	table := h.composer.Table()

	out := make([]RouteResponse, 0, table.Len())
	for _, route := range table.Routes() {
		d := access.Decide(viewer, route.target())
		out = append(out, RouteResponse{
			Route:   route,
			Allowed: d.Allowed && route.Available,
			Reason:  d.Reason,
		})
	}

	core.OK(w, out)
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	path := "/" + chi.URLParam(r, "routePath")

	route, widget, err := h.composer.Resolve(path, middleware.GetViewer(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRunBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			core.BadRequest(w, "request body too large")
			return
		}
		core.BadRequest(w, "could not read request body")
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		core.BadRequest(w, "request body must be JSON")
		return
	}

	ctx, span := core.StartSpan(r.Context(), "widget.run",
		attribute.String("tool.identifier", route.Identifier),
		attribute.Int64("tool.id", route.ToolID),
	)
	defer span.End()

	start := time.Now()
	output, err := widget.Run(ctx, body)
	if err != nil {
		if !core.IsAppError(err) {
			core.SetSpanError(ctx, err)
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, RunResponse{
		Tool:       route.Name,
		Output:     output,
		DurationMS: time.Since(start).Milliseconds(),
	})
}
