package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormArticleRepository implements planning.ArticleSource using GORM
type GormArticleRepository struct {
	db *Database
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *Database) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// GetArticleDescription returns both description lines of code joined by a
// space, or shared.ErrNotFound when the article does not exist
func (r *GormArticleRepository) GetArticleDescription(ctx context.Context, code string) (string, error) {
	var article models.ArticleModel
	err := r.db.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Select("code", "description", "description2").
			Where("code = ?", code).
			First(&article).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound.WithMessage("Article %s not found", code)
		}
		return "", fmt.Errorf("failed to load article %s: %w", code, err)
	}
	return article.DisplayDescription(), nil
}
