package router

import (
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/handler"
)

// Handlers groups every HTTP handler the service exposes
type Handlers struct {
	Simulation *handler.SimulationHandler
	Article    *handler.ArticleHandler
	Watchlist  *handler.WatchlistHandler
	System     *handler.SystemHandler
}

// LegacyRoutes are mounted at the root for the dashboard clients:
// POST /simulate_order and GET /health.
func LegacyRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("legacy", "")
	g.POST("/simulate_order", h.Simulation.SimulateOrder)
	g.GET("/health", h.System.Health)
	return g
}

// PlanningRoutes serves order simulation under the versioned API
func PlanningRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("planning", "/planning")
	g.POST("/simulate", h.Simulation.SimulateOrder)
	return g
}

// ArticleRoutes serves single-article lookups
func ArticleRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("articles", "/articles")
	g.GET("/:code/description", h.Article.GetDescription)
	g.GET("/:code/availability", h.Article.GetAvailability)
	return g
}

// WatchlistRoutes serves the availability dashboard watchlist.
// /order is registered before /:position so the static segment wins.
func WatchlistRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("watchlist", "/watchlist")
	g.GET("", h.Watchlist.List).
		POST("", h.Watchlist.Create).
		PUT("/order", h.Watchlist.Swap).
		PUT("/:position", h.Watchlist.Update).
		DELETE("/:position", h.Watchlist.Delete)
	return g
}

// SystemRoutes serves process information
func SystemRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/info", h.System.GetSystemInfo)
	g.GET("/ping", h.System.Ping)
	return g
}

// RegisterAll mounts every group on r
func RegisterAll(r *Router, h Handlers) *Router {
	return r.RegisterRoot(LegacyRoutes(h)).
		Register(PlanningRoutes(h)).
		Register(ArticleRoutes(h)).
		Register(WatchlistRoutes(h)).
		Register(SystemRoutes(h))
}
