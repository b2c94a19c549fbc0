package models

import (
	"time"

	"gorm.io/gorm"
)

// Minimum stay rule types.
const (
	// RulePerNight: any check-in inside the rule period must stay >= MinNights.
	RulePerNight = "per_night"
	// RuleFixedDay: check-in must land on CheckInDay and stay >= MinNights
	// (classic saturday-to-saturday weekly rental).
	RuleFixedDay = "fixed_day"
)

type MinimumStayRule struct {
	gorm.Model

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`

	MinNights int    `gorm:"column:min_nights" json:"min_nights"`
	RuleType  string `gorm:"column:rule_type;size:32;default:per_night" json:"rule_type"`

	// CheckInDay is only meaningful for fixed_day rules (time.Weekday, 0=Sunday).
	CheckInDay *int `gorm:"column:check_in_day" json:"check_in_day,omitempty"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}

// AppliesTo reports whether the rule governs a stay checking in on checkIn.
func (r *MinimumStayRule) AppliesTo(checkIn time.Time) bool {
	return !checkIn.Before(r.StartDate) && checkIn.Before(r.EndDate)
}
