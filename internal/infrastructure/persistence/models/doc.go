// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - planning.go: read-side ERP tables (articles, BOM links, availability snapshot)
//   - watchlist.go: the products_availability dashboard list
package models
