package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"property-backend/config"
	"property-backend/models"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetOperationalCosts (GET /api/operational-costs?property_id=)
func GetOperationalCosts(c *gin.Context) {
	q := config.DB.Order("cost_type ASC")
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		q = q.Where("property_id = ?", uint(id))
	}

	var costs []models.OperationalCost
	if err := q.Find(&costs).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve operational costs")
		return
	}
	c.JSON(http.StatusOK, costs)
}

// CreateOperationalCost (POST /api/operational-costs)
func CreateOperationalCost(c *gin.Context) {
	var cost models.OperationalCost
	if err := c.ShouldBindJSON(&cost); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if cost.PropertyID == 0 || cost.CostType == "" {
		utils.JSONError(c, http.StatusBadRequest, "property_id and cost_type are required")
		return
	}
	if cost.EstimatedPrice < 0 || cost.PublicPrice < 0 {
		utils.JSONError(c, http.StatusBadRequest, "prices must not be negative")
		return
	}

	var property models.Property
	if err := config.DB.First(&property, cost.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to check property")
		return
	}

	if err := config.DB.Create(&cost).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create operational cost")
		return
	}
	c.JSON(http.StatusCreated, cost)
}

// UpdateOperationalCost (PATCH /api/operational-costs/:id)
func UpdateOperationalCost(c *gin.Context) {
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
	delete(updates, "property_id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	var cost models.OperationalCost
	if err := config.DB.First(&cost, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "cost_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve cost")
		return
	}

	if err := config.DB.Model(&cost).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update cost")
		return
	}
	c.JSON(http.StatusOK, cost)
}

// DeleteOperationalCost (DELETE /api/operational-costs/:id)
func DeleteOperationalCost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.OperationalCost{}, id)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete cost")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "cost_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
