package models

import (
	"gorm.io/gorm"
)

type Admin struct {
	gorm.Model

	FullName string `json:"fullName" gorm:"column:full_name;size:191"`
	Username string `json:"username" gorm:"uniqueIndex;size:191"`
	Password string `json:"-" gorm:"size:255"`
}
