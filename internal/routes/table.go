// AngelaMos | 2026
// table.go

package routes

import (
	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/toolkit"
)

// Route is one navigable tool. Available is false when the tool has no
// compiled widget; the route is still listed so the client can show it as
// unavailable.
type Route struct {
	ToolID     int64  `json:"tool_id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Identifier string `json:"identifier"`
	Premium    bool   `json:"premium"`
	Available  bool   `json:"available"`
}

func (r Route) target() access.Target {
	return access.Target{Active: true, Premium: r.Premium}
}

// Table is immutable once composed.
type Table struct {
	routes []Route
	byPath map[string]int
}

// Compose builds one route per active tool, in input order. Inactive tools
// are skipped even when the caller passes them in.
func Compose(tools []catalog.Tool, manifest toolkit.Manifest) *Table {
	t := &Table{
		routes: make([]Route, 0, len(tools)),
		byPath: make(map[string]int, len(tools)),
	}

	for _, tool := range tools {
		if !tool.IsActive {
			continue
		}
		if _, dup := t.byPath[tool.RoutePath]; dup {
			continue
		}

		id := toolkit.Identifier(tool.Name)
		t.byPath[tool.RoutePath] = len(t.routes)
		t.routes = append(t.routes, Route{
			ToolID:     tool.ID,
			Name:       tool.Name,
			Path:       tool.RoutePath,
			Identifier: id,
			Premium:    tool.IsPremium,
			Available:  manifest.Has(id),
		})
	}

	return t
}

func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *Table) Lookup(path string) (Route, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

func (t *Table) Len() int {
	return len(t.routes)
}

// Unavailable lists the routes whose identifier has no widget.
func (t *Table) Unavailable() []Route {
	var out []Route
	for _, r := range t.routes {
		if !r.Available {
			out = append(out, r)
		}
	}
	return out
}
