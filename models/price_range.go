package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceRange is a named seasonal period with nightly/weekly rates. Owner rates
// are what the owner receives; public rates are what the guest pays. When the
// public rates are omitted on create they are derived from the owner rates and
// the commission percentage.
type PriceRange struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint   `gorm:"index;column:property_id" json:"property_id"`
	Name       string `gorm:"size:191" json:"name"`

	// StartDate inclusive, EndDate exclusive.
	StartDate time.Time `gorm:"column:start_date;index" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;index" json:"end_date"`

	OwnerNightly float64 `gorm:"column:owner_nightly" json:"owner_nightly"`
	OwnerWeekly  float64 `gorm:"column:owner_weekly" json:"owner_weekly"`

	PublicNightly float64 `gorm:"column:public_nightly" json:"public_nightly"`
	PublicWeekly  float64 `gorm:"column:public_weekly" json:"public_weekly"`

	CommissionPct float64 `gorm:"column:commission_pct" json:"commission_pct"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}

// Covers reports whether day falls inside the range.
func (p *PriceRange) Covers(day time.Time) bool {
	return !day.Before(p.StartDate) && day.Before(p.EndDate)
}
