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

type stayRulePayload struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	MinNights  int    `json:"min_nights" binding:"required,min=1"`
	RuleType   string `json:"rule_type"`
	CheckInDay *int   `json:"check_in_day"`
}

func (p *stayRulePayload) toModel() (*models.MinimumStayRule, string) {
	start, err := utils.ParseDate(p.StartDate)
	if err != nil {
		return nil, err.Error()
	}
	end, err := utils.ParseDate(p.EndDate)
	if err != nil {
		return nil, err.Error()
	}
	if !end.After(start) {
		return nil, "end_date must be after start_date"
	}

	ruleType := p.RuleType
	if ruleType == "" {
		ruleType = models.RulePerNight
	}
	if ruleType != models.RulePerNight && ruleType != models.RuleFixedDay {
		return nil, "rule_type must be per_night or fixed_day"
	}
	if ruleType == models.RuleFixedDay {
		if p.CheckInDay == nil || *p.CheckInDay < 0 || *p.CheckInDay > 6 {
			return nil, "fixed_day rules need check_in_day between 0 (Sunday) and 6"
		}
	}

	return &models.MinimumStayRule{
		PropertyID: p.PropertyID,
		StartDate:  start,
		EndDate:    end,
		MinNights:  p.MinNights,
		RuleType:   ruleType,
		CheckInDay: p.CheckInDay,
	}, ""
}

// GetStayRules (GET /api/minimum-stay-rules?property_id=)
func GetStayRules(c *gin.Context) {
	q := config.DB.Order("start_date ASC")
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		q = q.Where("property_id = ?", uint(id))
	}

	var rules []models.MinimumStayRule
	if err := q.Find(&rules).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve stay rules")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// CreateStayRule (POST /api/minimum-stay-rules)
func CreateStayRule(c *gin.Context) {
	var payload stayRulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	rule, msg := payload.toModel()
	if rule == nil {
		utils.JSONError(c, http.StatusBadRequest, msg)
		return
	}

	var property models.Property
	if err := config.DB.First(&property, rule.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "property_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to check property")
		return
	}

	if err := config.DB.Create(rule).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create stay rule")
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// UpdateStayRule (PUT /api/minimum-stay-rules/:id)
func UpdateStayRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var existing models.MinimumStayRule
	if err := config.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "stay_rule_not_found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve stay rule")
		return
	}

	var payload stayRulePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	rule, msg := payload.toModel()
	if rule == nil {
		utils.JSONError(c, http.StatusBadRequest, msg)
		return
	}

	existing.PropertyID = rule.PropertyID
	existing.StartDate = rule.StartDate
	existing.EndDate = rule.EndDate
	existing.MinNights = rule.MinNights
	existing.RuleType = rule.RuleType
	existing.CheckInDay = rule.CheckInDay

	if err := config.DB.Save(&existing).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update stay rule")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteStayRule (DELETE /api/minimum-stay-rules/:id)
func DeleteStayRule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.MinimumStayRule{}, id)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete stay rule")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "stay_rule_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
