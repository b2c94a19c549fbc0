package controllers

import (
	"errors"
	"net/http"

	"property-backend/config"
	"property-backend/models"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAgencySettings (GET /api/settings/agency)
func GetAgencySettings(c *gin.Context) {
	var setting models.AgencySetting
	if err := config.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Singleton row is seeded on boot; an empty table means a
			// fresh database, return the defaults.
			c.JSON(http.StatusOK, models.AgencySetting{
				Currency:             "EUR",
				DefaultCommissionPct: 20,
				TentativeHoldHours:   72,
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve settings")
		return
	}
	c.JSON(http.StatusOK, setting)
}

type agencySettingsPayload struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	Website              string  `json:"website"`
	Currency             string  `json:"currency"`
	DefaultCommissionPct float64 `json:"default_commission_pct"`
	TentativeHoldHours   int     `json:"tentative_hold_hours"`
}

// UpdateAgencySettings (PUT /api/settings/agency)
func UpdateAgencySettings(c *gin.Context) {
	var payload agencySettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if payload.DefaultCommissionPct < 0 || payload.DefaultCommissionPct >= 100 {
		utils.JSONError(c, http.StatusBadRequest, "default_commission_pct must be in [0,100)")
		return
	}
	if payload.TentativeHoldHours < 0 {
		utils.JSONError(c, http.StatusBadRequest, "tentative_hold_hours must not be negative")
		return
	}

	var setting models.AgencySetting
	err := config.DB.First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve settings")
		return
	}

	setting.Name = payload.Name
	setting.Email = payload.Email
	setting.Phone = payload.Phone
	setting.Website = payload.Website
	if payload.Currency != "" {
		setting.Currency = payload.Currency
	}
	setting.DefaultCommissionPct = payload.DefaultCommissionPct
	if payload.TentativeHoldHours > 0 {
		setting.TentativeHoldHours = payload.TentativeHoldHours
	}

	if err := config.DB.Save(&setting).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save settings")
		return
	}
	c.JSON(http.StatusOK, setting)
}
