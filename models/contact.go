package models

import (
	"gorm.io/gorm"
)

// Contact types.
const (
	ContactOwner  = "owner"
	ContactGuest  = "guest"
	ContactAgency = "agency"
	ContactVendor = "vendor"
)

type Contact struct {
	gorm.Model

	FullName    string `json:"fullName" gorm:"column:full_name;size:191"`
	Email       string `json:"email" gorm:"size:191;index"`
	Phone       string `json:"phone" gorm:"size:64"`
	ContactType string `json:"contactType" gorm:"column:contact_type;size:32;default:guest"`
	Language    string `json:"language" gorm:"size:8"`
	Notes       string `json:"notes" gorm:"type:text"`

	Properties []ContactProperty `gorm:"foreignKey:ContactID" json:"properties,omitempty"`
}

// ContactProperty links a contact to a property with a role
// (e.g. an owner contact linked as "owner", a vendor as "housekeeping").
type ContactProperty struct {
	gorm.Model

	ContactID  uint   `gorm:"index;column:contact_id" json:"contact_id"`
	PropertyID uint   `gorm:"index;column:property_id" json:"property_id"`
	Role       string `gorm:"size:64" json:"role"`

	Contact  Contact  `gorm:"foreignKey:ContactID;references:ID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// ValidContactType reports whether t is a known contact type.
func ValidContactType(t string) bool {
	switch t {
	case ContactOwner, ContactGuest, ContactAgency, ContactVendor:
		return true
	}
	return false
}
