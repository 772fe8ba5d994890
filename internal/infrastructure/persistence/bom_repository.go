package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBOMRepository implements planning.BOMSource using GORM
type GormBOMRepository struct {
	db *Database
}

// NewGormBOMRepository creates a new GormBOMRepository
func NewGormBOMRepository(db *Database) *GormBOMRepository {
	return &GormBOMRepository{db: db}
}

type bomLinkRow struct {
	ParentCode   string
	ChildCode    string
	Coefficient  sql.NullString
	Description  sql.NullString
	Description2 sql.NullString
}

// GetBOMLinks returns the direct components of parentCode in BOM line order.
// The component description comes from the article master; a component with
// no article record gets an empty description.
func (r *GormBOMRepository) GetBOMLinks(ctx context.Context, parentCode string) ([]planning.BOMLink, error) {
	var rows []bomLinkRow
	err := r.db.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Table(models.BOMLinkModel{}.TableName()+" AS b").
			Select("b.parent_code, b.child_code, CAST(b.coefficient AS TEXT) AS coefficient, a.description, a.description2").
			Joins("LEFT JOIN "+models.ArticleModel{}.TableName()+" a ON a.code = b.child_code").
			Where("b.parent_code = ?", parentCode).
			Order("b.line_no, b.child_code").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM of %s: %w", parentCode, err)
	}

	links := make([]planning.BOMLink, 0, len(rows))
	for _, row := range rows {
		links = append(links, planning.BOMLink{
			ParentCode:  row.ParentCode,
			ChildCode:   row.ChildCode,
			Description: models.JoinDescription(row.Description.String, row.Description2.String),
			Coefficient: models.RawFromNull(row.Coefficient),
		})
	}
	return links, nil
}
