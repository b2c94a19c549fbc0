package controllers

import (
	"net/http"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
	PricingSvc      *services.PricingService
}

func NewAvailabilityController(avail *services.AvailabilityService, pricing *services.PricingService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: avail, PricingSvc: pricing}
}

type checkAvailabilityPayload struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`

	// ExcludeBookingID skips a booking being edited.
	ExcludeBookingID uint `json:"exclude_booking_id,omitempty"`
}

// CheckAvailability (POST /api/bookings/availability)
func (ctrl *AvailabilityController) CheckAvailability(c *gin.Context) {
	var payload checkAvailabilityPayload
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

	report, err := ctrl.AvailabilitySvc.CheckAvailability(payload.PropertyID, start, end, payload.ExcludeBookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCalendar (GET /api/properties/:id/calendar?from=&to=)
func (ctrl *AvailabilityController) GetCalendar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "to: "+err.Error())
		return
	}

	days, err := ctrl.AvailabilitySvc.Calendar(id, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": id, "days": days})
}

// GetQuote (GET /api/properties/:id/quote?from=&to=)
func (ctrl *AvailabilityController) GetQuote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "to: "+err.Error())
		return
	}

	quote, err := ctrl.PricingSvc.Quote(id, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
