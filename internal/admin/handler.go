// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/upgrade"
	"github.com/carterperez-dev/ittools/internal/user"
)

type UserCounter interface {
	Counts(ctx context.Context) (*user.Counts, error)
}

type CatalogCounter interface {
	Counts(ctx context.Context) (*catalog.Counts, error)
}

type UpgradeQueue interface {
	ListPending(ctx context.Context) ([]upgrade.PendingRequest, error)
}

type Handler struct {
	dbStats     func() sql.DBStats
	redisStats  func() *redis.PoolStats
	redisPing   func(ctx context.Context) error
	dbPing      func(ctx context.Context) error
	users       UserCounter
	catalog     CatalogCounter
	upgrades    UpgradeQueue
	unavailable func() []string
}

type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
	Users      UserCounter
	Catalog    CatalogCounter
	Upgrades   UpgradeQueue
	// UnavailableTools names active tools that have no widget.
	UnavailableTools func() []string
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:     cfg.DBStats,
		redisStats:  cfg.RedisStats,
		redisPing:   cfg.RedisPing,
		dbPing:      cfg.DBPing,
		users:       cfg.Users,
		catalog:     cfg.Catalog,
		upgrades:    cfg.Upgrades,
		unavailable: cfg.UnavailableTools,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/admin/overview", h.GetOverview)
		r.Get("/admin/stats", h.GetSystemStats)
		r.Get("/admin/stats/db", h.GetDatabaseStats)
		r.Get("/admin/stats/redis", h.GetRedisStats)
		r.Get("/admin/stats/runtime", h.GetRuntimeStats)
	})
}

// GetOverview reports the state of the catalog and its users in one call.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	var (
		resp OverviewResponse
		g    errgroup.Group
	)

	if h.users != nil {
		g.Go(func() error {
			counts, err := h.users.Counts(r.Context())
			if err != nil {
				return fmt.Errorf("count users: %w", err)
			}
			resp.Users = *counts
			return nil
		})
	}

	if h.catalog != nil {
		g.Go(func() error {
			counts, err := h.catalog.Counts(r.Context())
			if err != nil {
				return fmt.Errorf("count tools: %w", err)
			}
			resp.Catalog = *counts
			return nil
		})
	}

	if h.upgrades != nil {
		g.Go(func() error {
			pending, err := h.upgrades.ListPending(r.Context())
			if err != nil {
				return fmt.Errorf("list upgrade requests: %w", err)
			}
			resp.PendingUpgrades = len(pending)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		core.InternalServerError(w, err)
		return
	}

	resp.UnavailableTools = []string{}
	if h.unavailable != nil {
		if names := h.unavailable(); names != nil {
			resp.UnavailableTools = names
		}
	}

	core.OK(w, resp)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	core.OK(w, SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: pingOK(ctx, h.dbPing),
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: pingOK(ctx, h.redisPing),
			Stats:   h.getRedisStats(),
		},
		Runtime: readRuntimeStats(),
	})
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntimeStats())
}

func pingOK(ctx context.Context, ping func(context.Context) error) bool {
	if ping == nil {
		return true
	}
	return ping(ctx) == nil
}

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     mem.Alloc,
		MemAllocText: humanize.Bytes(mem.Alloc),
		MemSys:       mem.Sys,
		MemSysText:   humanize.Bytes(mem.Sys),
		NumGC:        mem.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

type OverviewResponse struct {
	Users            user.Counts    `json:"users"`
	Catalog          catalog.Counts `json:"catalog"`
	PendingUpgrades  int            `json:"pending_upgrades"`
	UnavailableTools []string       `json:"unavailable_tools"`
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemAllocText string `json:"mem_alloc"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	MemSysText   string `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}
