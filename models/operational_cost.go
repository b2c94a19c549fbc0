package models

import (
	"gorm.io/gorm"
)

// Common cost types. Free text is allowed; these are the seeded defaults.
const (
	CostHousekeeping    = "housekeeping"
	CostLinenChange     = "linen_change"
	CostAirportTransfer = "airport_transfer"
	CostPoolService     = "pool_service"
)

// OperationalCost is an ancillary fee attached to a property. EstimatedPrice
// is the internal cost estimate, PublicPrice what the guest is charged.
// PerStay costs are added once per booking in quotes.
type OperationalCost struct {
	gorm.Model

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	CostType string `gorm:"column:cost_type;size:64" json:"cost_type"`
	Label    string `gorm:"size:191" json:"label"`

	EstimatedPrice float64 `gorm:"column:estimated_price" json:"estimated_price"`
	PublicPrice    float64 `gorm:"column:public_price" json:"public_price"`

	PerStay bool `gorm:"column:per_stay;default:true" json:"per_stay"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}
