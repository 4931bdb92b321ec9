// AngelaMos | 2026
// composer.go

package routes

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/toolkit"
)

const changeRefreshTimeout = 10 * time.Second

// Source yields the active catalog.
type Source interface {
	ActiveTools(ctx context.Context) ([]catalog.Tool, error)
}

type Composer struct {
	source   Source
	manifest toolkit.Manifest
	logger   *slog.Logger
	table    atomic.Pointer[Table]
}

func NewComposer(source Source, manifest toolkit.Manifest, logger *slog.Logger) *Composer {
	c := &Composer{source: source, manifest: manifest, logger: logger}
	c.table.Store(Compose(nil, manifest))
	return c
}

// Refresh recomposes the table from the catalog and swaps it in. When the
// catalog cannot be read the current table stays in place and the error is
// returned; before the first successful refresh that table is empty.
func (c *Composer) Refresh(ctx context.Context) error {
	ctx, span := core.StartSpan(ctx, "routes.refresh")
	defer span.End()

	tools, err := c.source.ActiveTools(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		c.logger.Error("route composition failed, keeping current table",
			"error", err,
			"routes", c.Table().Len(),
		)
		return fmt.Errorf("refresh routes: %w", err)
	}

	table := Compose(tools, c.manifest)
	c.table.Store(table)

	span.SetAttributes(
		attribute.Int("routes.count", table.Len()),
		attribute.Int("routes.unavailable", len(table.Unavailable())),
	)
	for _, r := range table.Unavailable() {
		c.logger.Warn("tool has no widget", "tool", r.Name, "identifier", r.Identifier)
	}

	return nil
}

// ChangeHook returns a catalog change callback. The refresh and broadcast
// ignore the caller's cancellation. broadcast may be nil and is skipped
// when the refresh fails.
func (c *Composer) ChangeHook(broadcast func(ctx context.Context) error) func(ctx context.Context) {
	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), changeRefreshTimeout)
		defer cancel()

		if err := c.Refresh(ctx); err != nil {
			return
		}
		if broadcast == nil {
			return
		}
		if err := broadcast(ctx); err != nil {
			c.logger.Warn("catalog change not broadcast", "error", err)
		}
	}
}

// Schedule refreshes the table on the cron spec until the returned stop
// function is called. Refresh errors are logged by Refresh itself.
func (c *Composer) Schedule(ctx context.Context, spec string) (stop func(), err error) {
	sched := cron.New()
	if _, err := sched.AddFunc(spec, func() {
		_ = c.Refresh(ctx) //nolint:errcheck // logged in Refresh
	}); err != nil {
		return nil, fmt.Errorf("schedule route refresh %q: %w", spec, err)
	}

	sched.Start()
	return func() { <-sched.Stop().Done() }, nil
}

func (c *Composer) Table() *Table {
	return c.table.Load()
}

// ValidateManifest returns the names of active tools with no widget.
func (c *Composer) ValidateManifest(ctx context.Context) ([]string, error) {
	tools, err := c.source.ActiveTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return c.manifest.Unmapped(names), nil
}

// Resolve finds the route at path and gates it for viewer. The gate runs
// before availability, so a free viewer learns a premium tool is premium
// even while its widget is missing.
func (c *Composer) Resolve(path string, viewer *access.Viewer) (Route, toolkit.Widget, error) {
	route, ok := c.Table().Lookup(path)
	if !ok {
		return Route{}, nil, core.NotFoundError("tool")
	}

	if d := access.Decide(viewer, route.target()); !d.Allowed {
		return route, nil, core.PremiumRequiredError()
	}

	widget, ok := c.manifest.Lookup(route.Identifier)
	if !ok {
		return route, nil, core.UnavailableError("tool unavailable")
	}

	return route, widget, nil
}
