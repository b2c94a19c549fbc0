package models

import "time"

// AgencySetting is the singleton back-office configuration row.
type AgencySetting struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"size:150" json:"email"`
	Phone    string `gorm:"size:50" json:"phone"`
	Website  string `gorm:"size:255" json:"website"`
	Currency string `gorm:"size:8;default:EUR" json:"currency"`

	DefaultCommissionPct float64 `gorm:"column:default_commission_pct;default:20" json:"default_commission_pct"`

	// How long a tentative booking holds its dates before conflicting
	// bookings downgrade from warning to grace_period.
	TentativeHoldHours int `gorm:"column:tentative_hold_hours;default:72" json:"tentative_hold_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
