package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"property-backend/config"
	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type priceRangePayload struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`

	OwnerNightly  float64 `json:"owner_nightly"`
	OwnerWeekly   float64 `json:"owner_weekly"`
	PublicNightly float64 `json:"public_nightly"`
	PublicWeekly  float64 `json:"public_weekly"`
	CommissionPct float64 `json:"commission_pct"`
}

// GetPriceRanges (GET /api/price-ranges?property_id=)
func GetPriceRanges(c *gin.Context) {
	q := config.DB.Order("start_date ASC")
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		q = q.Where("property_id = ?", uint(id))
	}

	var ranges []models.PriceRange
	if err := q.Find(&ranges).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve price ranges")
		return
	}
	c.JSON(http.StatusOK, ranges)
}

// CreatePriceRange (POST /api/price-ranges)
func CreatePriceRange(c *gin.Context) {
	var payload priceRangePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	start, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := utils.ParseDate(payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !end.After(start) {
		utils.JSONError(c, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	var property models.Property
	if err := config.DB.First(&property, payload.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to check property")
		return
	}

	pr := models.PriceRange{
		PropertyID:    payload.PropertyID,
		Name:          payload.Name,
		StartDate:     start,
		EndDate:       end,
		OwnerNightly:  payload.OwnerNightly,
		OwnerWeekly:   payload.OwnerWeekly,
		PublicNightly: payload.PublicNightly,
		PublicWeekly:  payload.PublicWeekly,
		CommissionPct: payload.CommissionPct,
	}

	pricing := services.NewPricingService(config.DB)
	if err := pricing.NormalizeRates(&pr); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Create(&pr).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create price range")
		return
	}
	c.JSON(http.StatusCreated, pr)
}

// UpdatePriceRange (PUT /api/price-ranges/:id)
func UpdatePriceRange(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var pr models.PriceRange
	if err := config.DB.First(&pr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "price_range_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve price range")
		return
	}

	var payload priceRangePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	start, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := utils.ParseDate(payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !end.After(start) {
		utils.JSONError(c, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	pr.Name = payload.Name
	pr.StartDate = start
	pr.EndDate = end
	pr.OwnerNightly = payload.OwnerNightly
	pr.OwnerWeekly = payload.OwnerWeekly
	pr.PublicNightly = payload.PublicNightly
	pr.PublicWeekly = payload.PublicWeekly
	pr.CommissionPct = payload.CommissionPct

	pricing := services.NewPricingService(config.DB)
	if err := pricing.NormalizeRates(&pr); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Save(&pr).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update price range")
		return
	}
	c.JSON(http.StatusOK, pr)
}

// DeletePriceRange (DELETE /api/price-ranges/:id)
func DeletePriceRange(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.PriceRange{}, id)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete price range")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "price_range_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
