package persistence

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var availabilityNumericColumns = []string{
	"lead_time", "safety_stock", "stock_on_hand",
	"demand_mc", "demand_ms", "demand_msa", "demand_mss",
	"supply_mc", "supply_ms", "supply_msa", "supply_mss",
}

// GormAvailabilityRepository implements planning.AvailabilitySource. The
// whole code set is read with one IN query built by squirrel.
type GormAvailabilityRepository struct {
	db      *Database
	sb      sq.StatementBuilderType
	columns []string
}

// NewGormAvailabilityRepository creates a new GormAvailabilityRepository
func NewGormAvailabilityRepository(db *Database) *GormAvailabilityRepository {
	columns := []string{"code", "description"}
	for _, c := range availabilityNumericColumns {
		// Numeric figures travel as text so no precision is lost before coercion
		columns = append(columns, fmt.Sprintf("CAST(%s AS TEXT) AS %s", c, c))
	}
	return &GormAvailabilityRepository{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(placeholderFor(db.DB)),
		columns: columns,
	}
}

// GetAvailabilityBatch returns the availability rows of codes in code order.
// Unknown codes are missing from the result.
func (r *GormAvailabilityRepository) GetAvailabilityBatch(ctx context.Context, codes []string) ([]planning.AvailabilityRow, error) {
	if len(codes) == 0 {
		return []planning.AvailabilityRow{}, nil
	}

	query, args, err := r.sb.
		Select(r.columns...).
		From(models.AvailabilityModel{}.TableName()).
		Where(sq.Eq{"code": codes}).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build availability query: %w", err)
	}

	var snapshots []models.AvailabilityModel
	err = r.db.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Raw(query, args...).Scan(&snapshots).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load availability of %d articles: %w", len(codes), err)
	}

	rows := make([]planning.AvailabilityRow, 0, len(snapshots))
	for i := range snapshots {
		rows = append(rows, snapshots[i].ToDomain())
	}
	return rows, nil
}

// placeholderFor picks the bind style the connected dialect expects
func placeholderFor(db *gorm.DB) sq.PlaceholderFormat {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}
