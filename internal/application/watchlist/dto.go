package watchlist

import (
	"github.com/alessandrv/FEC-mrp/internal/domain/watchlist"
	"github.com/samber/lo"
)

// EntryResponse is one watchlist slot
type EntryResponse struct {
	Position    int    `json:"position"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreateEntryRequest pins an article at a position
type CreateEntryRequest struct {
	Position    int    `json:"position" binding:"required,min=1"`
	Code        string `json:"code" binding:"required,max=32"`
	Description string `json:"description" binding:"required,max=255"`
}

// UpdateEntryRequest relabels the article kept at a position
type UpdateEntryRequest struct {
	Code        string `json:"code" binding:"required,max=32"`
	Description string `json:"description" binding:"required,max=255"`
}

// SwapItem names one of the two positions to exchange
type SwapItem struct {
	Position int `json:"position" binding:"required,min=1"`
}

// SwapRequest exchanges exactly two positions
type SwapRequest struct {
	Items []SwapItem `json:"items" binding:"required,len=2,dive"`
}

// ToEntryResponse converts a domain entry to its response form
func ToEntryResponse(e watchlist.Entry) EntryResponse {
	return EntryResponse{
		Position:    e.Position,
		Code:        e.Code,
		Description: e.Description,
	}
}

// ToEntryResponses converts entries, keeping order. Never returns nil.
func ToEntryResponses(entries []watchlist.Entry) []EntryResponse {
	if len(entries) == 0 {
		return []EntryResponse{}
	}
	return lo.Map(entries, func(e watchlist.Entry, _ int) EntryResponse {
		return ToEntryResponse(e)
	})
}
