package planning

import "context"

// BOMSource reads single-level bill-of-materials links
type BOMSource interface {
	// GetBOMLinks returns the direct components of parentCode.
	// An article without links returns an empty slice, not an error.
	GetBOMLinks(ctx context.Context, parentCode string) ([]BOMLink, error)
}

// ArticleSource reads article master data
type ArticleSource interface {
	// GetArticleDescription returns the display description of code.
	// Returns shared.ErrNotFound when the article does not exist.
	GetArticleDescription(ctx context.Context, code string) (string, error)
}

// AvailabilitySource reads stock, demand and supply figures
type AvailabilitySource interface {
	// GetAvailabilityBatch returns one row per known code using a single
	// round trip. Unknown codes are simply missing from the result.
	GetAvailabilityBatch(ctx context.Context, codes []string) ([]AvailabilityRow, error)
}
