package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
)

// ArticleModel is the article master record
type ArticleModel struct {
	Code         string `gorm:"type:varchar(32);primaryKey"`
	Description  string `gorm:"type:varchar(255);not null;default:''"`
	Description2 string `gorm:"column:description2;type:varchar(255);not null;default:''"`
}

// TableName returns the table name for the model
func (ArticleModel) TableName() string {
	return "articles"
}

// DisplayDescription joins both description lines the way the ERP shows them
func (m ArticleModel) DisplayDescription() string {
	return JoinDescription(m.Description, m.Description2)
}

// JoinDescription trims both parts and joins them with a single space
func JoinDescription(first, second string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(second))
}

// BOMLinkModel is one single-level bill-of-materials line
type BOMLinkModel struct {
	ParentCode  string         `gorm:"type:varchar(32);primaryKey"`
	ChildCode   string         `gorm:"type:varchar(32);primaryKey"`
	LineNo      int            `gorm:"not null;default:0"`
	Coefficient sql.NullString `gorm:"type:numeric(18,6)"`
}

// TableName returns the table name for the model
func (BOMLinkModel) TableName() string {
	return "bom_links"
}

// AvailabilityModel is the per-article stock snapshot refreshed from the ERP.
// Numeric columns are nullable; NULL means the figure is unknown.
type AvailabilityModel struct {
	Code        string         `gorm:"type:varchar(32);primaryKey"`
	Description string         `gorm:"type:varchar(255);not null;default:''"`
	LeadTime    sql.NullString `gorm:"type:numeric(18,6)"`
	SafetyStock sql.NullString `gorm:"type:numeric(18,6)"`
	StockOnHand sql.NullString `gorm:"type:numeric(18,6)"`
	DemandMC    sql.NullString `gorm:"column:demand_mc;type:numeric(18,6)"`
	DemandMS    sql.NullString `gorm:"column:demand_ms;type:numeric(18,6)"`
	DemandMSA   sql.NullString `gorm:"column:demand_msa;type:numeric(18,6)"`
	DemandMSS   sql.NullString `gorm:"column:demand_mss;type:numeric(18,6)"`
	SupplyMC    sql.NullString `gorm:"column:supply_mc;type:numeric(18,6)"`
	SupplyMS    sql.NullString `gorm:"column:supply_ms;type:numeric(18,6)"`
	SupplyMSA   sql.NullString `gorm:"column:supply_msa;type:numeric(18,6)"`
	SupplyMSS   sql.NullString `gorm:"column:supply_mss;type:numeric(18,6)"`
	RefreshedAt time.Time      `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for the model
func (AvailabilityModel) TableName() string {
	return "article_availability"
}

// ToDomain converts the snapshot into a domain availability row
func (m *AvailabilityModel) ToDomain() planning.AvailabilityRow {
	return planning.AvailabilityRow{
		Code:        m.Code,
		Description: strings.TrimSpace(m.Description),
		LeadTime:    RawFromNull(m.LeadTime),
		SafetyStock: RawFromNull(m.SafetyStock),
		StockOnHand: RawFromNull(m.StockOnHand),
		Demand: [planning.BucketCount]planning.RawNumber{
			RawFromNull(m.DemandMC),
			RawFromNull(m.DemandMS),
			RawFromNull(m.DemandMSA),
			RawFromNull(m.DemandMSS),
		},
		Supply: [planning.BucketCount]planning.RawNumber{
			RawFromNull(m.SupplyMC),
			RawFromNull(m.SupplyMS),
			RawFromNull(m.SupplyMSA),
			RawFromNull(m.SupplyMSS),
		},
	}
}

// RawFromNull converts a nullable numeric column into a domain figure
func RawFromNull(v sql.NullString) planning.RawNumber {
	return planning.RawNumber{Value: v.String, Valid: v.Valid}
}

// NullFromRaw converts a domain figure into a nullable numeric column
func NullFromRaw(v planning.RawNumber) sql.NullString {
	return sql.NullString{String: v.Value, Valid: v.Valid}
}
