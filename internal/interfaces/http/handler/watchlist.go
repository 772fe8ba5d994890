package handler

import (
	watchlistapp "github.com/alessandrv/FEC-mrp/internal/application/watchlist"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/dto"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// WatchlistHandler handles the availability dashboard watchlist
type WatchlistHandler struct {
	BaseHandler
	watchlistService *watchlistapp.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(watchlistService *watchlistapp.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// List handles GET /api/v1/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	entries, err := h.watchlistService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, entries)
}

// Create handles POST /api/v1/watchlist
func (h *WatchlistHandler) Create(c *gin.Context) {
	var req watchlistapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	entry, err := h.watchlistService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Update handles PUT /api/v1/watchlist/:position
func (h *WatchlistHandler) Update(c *gin.Context) {
	var uri dto.PositionRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	var req watchlistapp.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	entry, err := h.watchlistService.Update(c.Request.Context(), uri.Position, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, entry)
}

// Delete handles DELETE /api/v1/watchlist/:position
// Later entries move up one position.
func (h *WatchlistHandler) Delete(c *gin.Context) {
	var uri dto.PositionRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.watchlistService.Delete(c.Request.Context(), uri.Position); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Swap handles PUT /api/v1/watchlist/order
func (h *WatchlistHandler) Swap(c *gin.Context) {
	var req watchlistapp.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.watchlistService.Swap(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
