package controllers

import (
	"net/http"
	"strconv"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type RequestController struct {
	RequestSvc *services.RequestService
}

func NewRequestController(svc *services.RequestService) *RequestController {
	return &RequestController{RequestSvc: svc}
}

type createRequestPayload struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email" binding:"required,email"`
	GuestPhone string `json:"guest_phone"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	Message    string `json:"message"`
}

// CreateRequest (POST /api/availability-requests). Public endpoint used by
// the website inquiry form.
func (ctrl *RequestController) CreateRequest(c *gin.Context) {
	var payload createRequestPayload
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

	request, err := ctrl.RequestSvc.Create(services.CreateRequestInput{
		PropertyID: payload.PropertyID,
		GuestName:  payload.GuestName,
		GuestEmail: payload.GuestEmail,
		GuestPhone: payload.GuestPhone,
		StartDate:  start,
		EndDate:    end,
		Adults:     payload.Adults,
		Children:   payload.Children,
		Message:    payload.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// GetRequests (GET /api/availability-requests?status=&property_id=)
func (ctrl *RequestController) GetRequests(c *gin.Context) {
	var propertyID uint
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		propertyID = uint(id)
	}

	requests, err := ctrl.RequestSvc.GetAll(c.Query("status"), propertyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

type decideRequestPayload struct {
	Force  bool   `json:"force,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ConfirmRequest (POST /api/availability-requests/:id/confirm)
func (ctrl *RequestController) ConfirmRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload decideRequestPayload
	_ = c.ShouldBindJSON(&payload) // body optional

	request, err := ctrl.RequestSvc.Confirm(id, payload.Force)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// RejectRequest (POST /api/availability-requests/:id/reject)
func (ctrl *RequestController) RejectRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload decideRequestPayload
	_ = c.ShouldBindJSON(&payload)

	request, err := ctrl.RequestSvc.Reject(id, payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
