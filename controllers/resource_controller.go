package controllers

import (
	"net/http"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceSvc *services.ResourceService
}

func NewResourceController(svc *services.ResourceService) *ResourceController {
	return &ResourceController{ResourceSvc: svc}
}

// UploadResource (POST /api/properties/:id/resources). Multipart form with
// "file" and optional "category" (defaults to legal_document).
func (ctrl *ResourceController) UploadResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file field is required")
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = models.ResourceLegalDocument
	}

	resource, err := ctrl.ResourceSvc.SaveUpload(id, category, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

type base64ImagePayload struct {
	Image string            `json:"image" binding:"required"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// UploadImage (POST /api/properties/:id/resources/image). Destination
// imagery posted as a base64 data URI.
func (ctrl *ResourceController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload base64ImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	resource, err := ctrl.ResourceSvc.SaveBase64Image(id, payload.Image, payload.Meta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// GetResources (GET /api/properties/:id/resources?category=)
func (ctrl *ResourceController) GetResources(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resources, err := ctrl.ResourceSvc.GetByProperty(id, c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// DeleteResource (DELETE /api/resources/:id)
func (ctrl *ResourceController) DeleteResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.ResourceSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
