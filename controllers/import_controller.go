package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type ImportController struct {
	ImportSvc *services.ImportService
	ExportSvc *services.ExportService
}

func NewImportController(imp *services.ImportService, export *services.ExportService) *ImportController {
	return &ImportController{ImportSvc: imp, ExportSvc: export}
}

// ImportBookings (POST /api/bookings/import). Accepts a multipart "file"
// field or a raw text/csv body.
func (ctrl *ImportController) ImportBookings(c *gin.Context) {
	var reader io.Reader

	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to open uploaded file: "+err.Error())
			return
		}
		defer src.Close()
		reader = src
	} else {
		reader = c.Request.Body
	}

	result, err := ctrl.ImportSvc.ImportAvailabilityCSV(reader)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusOK
	if result.Imported == 0 && result.Failed > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

// ExportBookings (GET /api/bookings/export?property_id=&from=&to=)
func (ctrl *ImportController) ExportBookings(c *gin.Context) {
	var propertyID uint
	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		propertyID = uint(id)
	}

	from, ok := parseOptionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := parseOptionalDate(c, "to")
	if !ok {
		return
	}

	filename := fmt.Sprintf("bookings_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := ctrl.ExportSvc.BookingsCSV(c.Writer, propertyID, from, to); err != nil {
		_ = c.Error(err)
	}
}
