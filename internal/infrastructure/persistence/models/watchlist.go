package models

import "github.com/alessandrv/FEC-mrp/internal/domain/watchlist"

// WatchlistEntryModel is one row of the availability dashboard list
type WatchlistEntryModel struct {
	Position    int    `gorm:"primaryKey;autoIncrement:false"`
	Code        string `gorm:"type:varchar(32);not null"`
	Description string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for the model
func (WatchlistEntryModel) TableName() string {
	return "products_availability"
}

// ToDomain converts the model to a domain entry
func (m *WatchlistEntryModel) ToDomain() watchlist.Entry {
	return watchlist.Entry{
		Position:    m.Position,
		Code:        m.Code,
		Description: m.Description,
	}
}

// WatchlistEntryModelFromDomain creates a model from a domain entry
func WatchlistEntryModelFromDomain(e *watchlist.Entry) *WatchlistEntryModel {
	return &WatchlistEntryModel{
		Position:    e.Position,
		Code:        e.Code,
		Description: e.Description,
	}
}
