package models

import (
	"time"

	"gorm.io/gorm"
)

// Availability request statuses.
const (
	RequestPending   = "pending"
	RequestConfirmed = "confirmed"
	RequestRejected  = "rejected"
)

// AvailabilityRequest is a guest-submitted date-range inquiry. Confirming one
// creates a confirmed Booking and stores its id in BookingID.
type AvailabilityRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	GuestName  string `gorm:"column:guest_name;size:191" json:"guest_name"`
	GuestEmail string `gorm:"column:guest_email;size:191" json:"guest_email"`
	GuestPhone string `gorm:"column:guest_phone;size:64" json:"guest_phone,omitempty"`

	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`

	Adults   int `gorm:"default:1" json:"adults"`
	Children int `gorm:"default:0" json:"children"`

	Status    string     `gorm:"size:32;default:pending;index" json:"status"`
	Message   string     `gorm:"type:text" json:"message,omitempty"`
	DecidedAt *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	BookingID *uint      `gorm:"column:booking_id" json:"booking_id,omitempty"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
	Booking  *Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}
