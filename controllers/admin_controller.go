package controllers

import (
	"net/http"
	"strings"

	"property-backend/config"
	"property-backend/models"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GetAdmins (GET /api/admins)
func GetAdmins(c *gin.Context) {
	var admins []models.Admin
	if err := config.DB.Order("id ASC").Find(&admins).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve admins")
		return
	}
	c.JSON(http.StatusOK, admins)
}

type createAdminPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateAdmin (POST /api/admins)
func CreateAdmin(c *gin.Context) {
	var payload createAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	admin := models.Admin{
		FullName: strings.TrimSpace(payload.FullName),
		Username: strings.ToLower(strings.TrimSpace(payload.Username)),
		Password: string(hash),
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		if isDuplicateErr(err) {
			utils.JSONError(c, http.StatusConflict, "username already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create admin")
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// DeleteAdmin (DELETE /api/admins/:id). The last admin cannot be removed.
func DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var count int64
	config.DB.Model(&models.Admin{}).Count(&count)
	if count <= 1 {
		utils.JSONError(c, http.StatusConflict, "cannot delete the last admin")
		return
	}

	result := config.DB.Delete(&models.Admin{}, id)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete admin")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "admin_not_found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
