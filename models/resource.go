package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resource categories.
const (
	ResourceLegalDocument = "legal_document"
	ResourceImage         = "image"
)

// Resource is an uploaded file (legal document, destination imagery)
// attached to a property. The file lives under the uploads dir; StoredPath
// is relative to it so the row stays valid if the dir moves.
type Resource struct {
	gorm.Model

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	Category   string `gorm:"size:32;index" json:"category"`
	FileName   string `gorm:"column:file_name;size:255" json:"file_name"`
	StoredPath string `gorm:"column:stored_path;size:255" json:"stored_path"`
	MimeType   string `gorm:"column:mime_type;size:128" json:"mime_type"`
	SizeBytes  int64  `gorm:"column:size_bytes" json:"size_bytes"`

	Meta datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}
