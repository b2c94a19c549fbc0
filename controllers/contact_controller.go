package controllers

import (
	"fmt"
	"net/http"
	"time"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactSvc *services.ContactService
	ExportSvc  *services.ExportService
}

func NewContactController(contacts *services.ContactService, export *services.ExportService) *ContactController {
	return &ContactController{ContactSvc: contacts, ExportSvc: export}
}

// GetContacts (GET /api/contacts?type=&search=)
func (ctrl *ContactController) GetContacts(c *gin.Context) {
	contacts, err := ctrl.ContactSvc.GetAll(c.Query("type"), c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// GetContact (GET /api/contacts/:id)
func (ctrl *ContactController) GetContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contact, err := ctrl.ContactSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// CreateContact (POST /api/contacts)
func (ctrl *ContactController) CreateContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := ctrl.ContactSvc.Create(&contact); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// UpdateContact (PUT/PATCH /api/contacts/:id)
func (ctrl *ContactController) UpdateContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	contact, err := ctrl.ContactSvc.Update(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContact (DELETE /api/contacts/:id)
func (ctrl *ContactController) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.ContactSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

type linkPropertyPayload struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	Role       string `json:"role"`
}

// LinkProperty (POST /api/contacts/:id/properties)
func (ctrl *ContactController) LinkProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload linkPropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	link, err := ctrl.ContactSvc.LinkProperty(id, payload.PropertyID, payload.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// UnlinkProperty (DELETE /api/contacts/:id/properties/:propertyId)
func (ctrl *ContactController) UnlinkProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	propertyID, ok := parseIDParam(c, "propertyId")
	if !ok {
		return
	}
	if err := ctrl.ContactSvc.UnlinkProperty(id, propertyID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"unlinked": propertyID})
}

// ExportContacts (GET /api/contacts/export?type=)
func (ctrl *ContactController) ExportContacts(c *gin.Context) {
	filename := fmt.Sprintf("contacts_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := ctrl.ExportSvc.ContactsCSV(c.Writer, c.Query("type")); err != nil {
		// Headers may already be out; just log the failure.
		_ = c.Error(err)
	}
}
