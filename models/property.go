package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model

	Name string `json:"name" gorm:"column:name;uniqueIndex;type:varchar(191)"`
	Slug string `json:"slug" gorm:"column:slug;type:varchar(191)"`

	Address string `json:"address" gorm:"type:text"`
	City    string `json:"city" gorm:"size:100"`

	Bedrooms  int `json:"bedrooms"`
	MaxGuests int `json:"maxGuests" gorm:"column:max_guests"`

	// Fallback commission when a price range doesn't set its own.
	DefaultCommissionPct float64 `json:"defaultCommissionPct" gorm:"column:default_commission_pct"`

	CheckInHour  int  `json:"checkInHour" gorm:"column:check_in_hour;default:15"`
	CheckOutHour int  `json:"checkOutHour" gorm:"column:check_out_hour;default:11"`
	Active       bool `json:"active" gorm:"default:true"`

	Bookings    []Booking         `gorm:"foreignKey:PropertyID" json:"bookings,omitempty"`
	PriceRanges []PriceRange      `gorm:"foreignKey:PropertyID" json:"priceRanges,omitempty"`
	StayRules   []MinimumStayRule `gorm:"foreignKey:PropertyID" json:"stayRules,omitempty"`
	Costs       []OperationalCost `gorm:"foreignKey:PropertyID" json:"costs,omitempty"`
	Resources   []Resource        `gorm:"foreignKey:PropertyID" json:"resources,omitempty"`
}
