// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	PropertyID  uint   `json:"property_id" binding:"required"`
	BookingType string `json:"booking_type" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`

	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`

	TotalPrice float64                `json:"total_price"`
	Notes      string                 `json:"notes"`
	Guests     map[string]interface{} `json:"guest_details,omitempty"`

	Force bool `json:"force,omitempty"`
}

type UpdateBookingRequest struct {
	BookingType *string  `json:"booking_type"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	GuestName   *string  `json:"guest_name"`
	GuestEmail  *string  `json:"guest_email"`
	GuestPhone  *string  `json:"guest_phone"`
	Adults      *int     `json:"adults"`
	Children    *int     `json:"children"`
	TotalPrice  *float64 `json:"total_price"`
	Notes       *string  `json:"notes"`
	Force       bool     `json:"force,omitempty"`
}

// ---------------------------
// Shared helpers
// ---------------------------

// parseIDParam reads the numeric :id path param.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidId", "invalid id "+raw)
		return 0, false
	}
	return uint(id), true
}

// serviceErrorStatus maps the service sentinel codes to HTTP statuses.
func serviceErrorStatus(err error) int {
	switch err.Error() {
	case "booking_not_found", "property_not_found", "contact_not_found",
		"request_not_found", "resource_not_found", "link_not_found":
		return http.StatusNotFound
	case "invalid_date_range", "invalid_booking_type", "invalid_contact_type",
		"invalid_commission", "invalid_category", "guest_contact_required",
		"full_name_required", "unsupported_file_type", "file_too_large":
		return http.StatusBadRequest
	case "request_already_decided":
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondServiceError answers a service failure, expanding booking
// conflicts into a 409 with the availability report attached.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"code": "error.bookingConflict", "message": "requested dates conflict with existing bookings"},
			"report":  conflict.Report,
		})
		return
	}
	utils.JSONError(c, serviceErrorStatus(err), err.Error())
}

func parseOptionalDate(c *gin.Context, query string) (*time.Time, bool) {
	raw := c.Query(query)
	if raw == "" {
		return nil, true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &t, true
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// GetBookings (GET /api/bookings?property_id=&type=&from=&to=)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	filter := services.BookingFilter{
		BookingType: c.Query("type"),
	}
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		filter.PropertyID = uint(id)
	}

	var ok bool
	if filter.From, ok = parseOptionalDate(c, "from"); !ok {
		return
	}
	if filter.To, ok = parseOptionalDate(c, "to"); !ok {
		return
	}

	bookings, err := ctrl.BookingSvc.GetAll(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingDetails (GET /api/bookings/:id)
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
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

	booking, err := ctrl.BookingSvc.Create(services.CreateBookingInput{
		PropertyID:   payload.PropertyID,
		BookingType:  payload.BookingType,
		StartDate:    start,
		EndDate:      end,
		GuestName:    payload.GuestName,
		GuestEmail:   payload.GuestEmail,
		GuestPhone:   payload.GuestPhone,
		Adults:       payload.Adults,
		Children:     payload.Children,
		TotalPrice:   payload.TotalPrice,
		Notes:        payload.Notes,
		GuestDetails: payload.Guests,
		Force:        payload.Force,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking (PUT/PATCH /api/bookings/:id)
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload UpdateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	input := services.UpdateBookingInput{
		BookingType: payload.BookingType,
		GuestName:   payload.GuestName,
		GuestEmail:  payload.GuestEmail,
		GuestPhone:  payload.GuestPhone,
		Adults:      payload.Adults,
		Children:    payload.Children,
		TotalPrice:  payload.TotalPrice,
		Notes:       payload.Notes,
		Force:       payload.Force,
	}
	if payload.StartDate != nil {
		t, err := utils.ParseDate(*payload.StartDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		input.StartDate = &t
	}
	if payload.EndDate != nil {
		t, err := utils.ParseDate(*payload.EndDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		input.EndDate = &t
	}

	booking, err := ctrl.BookingSvc.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking (DELETE /api/bookings/:id)
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
