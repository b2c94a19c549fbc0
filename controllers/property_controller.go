package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"property-backend/config"
	"property-backend/models"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// isDuplicateErr detects a unique-index violation across MySQL and the
// sqlite driver used in tests.
func isDuplicateErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}

// GetProperties (GET /api/properties)
func GetProperties(c *gin.Context) {
	var properties []models.Property

	q := config.DB.Order("name ASC")
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&properties).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty (GET /api/properties/:id)
func GetProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := config.DB.
		Preload("PriceRanges").
		Preload("StayRules").
		Preload("Costs").
		Preload("Resources").
		First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty (POST /api/properties)
func CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	property.Name = strings.TrimSpace(property.Name)
	if property.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}
	if property.Slug == "" {
		property.Slug = slugify(property.Name)
	}

	if result := config.DB.Create(&property); result.Error != nil {
		if isDuplicateErr(result.Error) {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("property %q already exists", property.Name))
			return
		}
		log.Printf("DB error creating property: %v", result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty (PATCH/PUT /api/properties/:id)
func UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	var property models.Property
	if err := config.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve property")
		return
	}

	if err := config.DB.Model(&property).Updates(updates).Error; err != nil {
		if isDuplicateErr(err) {
			utils.JSONError(c, http.StatusConflict, "property name already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteProperty (DELETE /api/properties/:id). Soft delete; the property's
// bookings drop out of availability with it.
func DeleteProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Property{}, id)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete property")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "property_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
