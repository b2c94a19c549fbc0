package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking types. "blocked", "maintenance", "owner" and "contract" occupy the
// calendar without a paying guest.
const (
	BookingConfirmed   = "confirmed"
	BookingTentative   = "tentative"
	BookingBlocked     = "blocked"
	BookingMaintenance = "maintenance"
	BookingOwner       = "owner"
	BookingContract    = "contract"
)

// Booking sources.
const (
	SourceManual  = "manual"
	SourceImport  = "import"
	SourceRequest = "request"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`
	BookingType   string `gorm:"column:booking_type;size:32;index" json:"booking_type"`

	// StartDate inclusive, EndDate exclusive (checkout day).
	StartDate time.Time `gorm:"column:start_date;index" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;index" json:"end_date"`

	GuestName  string `gorm:"column:guest_name;size:191" json:"guest_name,omitempty"`
	GuestEmail string `gorm:"column:guest_email;size:191" json:"guest_email,omitempty"`
	GuestPhone string `gorm:"column:guest_phone;size:64" json:"guest_phone,omitempty"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	TotalPrice float64 `gorm:"column:total_price" json:"total_price"`
	Source     string  `gorm:"column:source;size:32;default:manual" json:"source"`
	Notes      string  `gorm:"type:text" json:"notes,omitempty"`

	// Free-form extras from imports or the request form (flight numbers,
	// arrival time, ...). Not queried, so kept as a JSON blob.
	GuestDetails datatypes.JSON `gorm:"column:guest_details" json:"guestDetails,omitempty"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// Nights returns the stay length in nights.
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// Occupying reports whether this booking type blocks the calendar outright.
func Occupying(bookingType string) bool {
	switch bookingType {
	case BookingConfirmed, BookingBlocked, BookingMaintenance, BookingOwner, BookingContract:
		return true
	}
	return false
}

// ValidBookingType reports whether t is one of the known booking types.
func ValidBookingType(t string) bool {
	switch t {
	case BookingConfirmed, BookingTentative, BookingBlocked, BookingMaintenance, BookingOwner, BookingContract:
		return true
	}
	return false
}
