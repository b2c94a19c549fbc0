package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResourceService stores uploaded property files (legal documents,
// destination imagery) under the uploads dir and records them.
type ResourceService struct {
	DB        *gorm.DB
	UploadDir string
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{
		DB:        db,
		UploadDir: utils.EnvOrDefault("UPLOAD_DIR", "./uploads"),
	}
}

func (s *ResourceService) maxUploadBytes() int64 {
	mb, err := strconv.Atoi(utils.EnvOrDefault("MAX_UPLOAD_MB", "20"))
	if err != nil || mb <= 0 {
		mb = 20
	}
	return int64(mb) << 20
}

// SaveUpload validates and stores one multipart file for a property.
func (s *ResourceService) SaveUpload(propertyID uint, category string, file *multipart.FileHeader) (*models.Resource, error) {
	if category != models.ResourceLegalDocument && category != models.ResourceImage {
		return nil, errors.New("invalid_category")
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mime, ok := utils.AllowedUploadExt(ext)
	if !ok {
		return nil, errors.New("unsupported_file_type")
	}
	if file.Size > s.maxUploadBytes() {
		return nil, errors.New("file_too_large")
	}

	destDir := filepath.Join(s.UploadDir, strconv.FormatUint(uint64(propertyID), 10))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir uploads dir: %w", err)
	}

	storedName := utils.RandomFileName("doc", ext)
	fullpath := filepath.Join(destDir, storedName)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullpath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(fullpath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	resource := models.Resource{
		PropertyID: propertyID,
		Category:   category,
		FileName:   filepath.Base(file.Filename),
		StoredPath: filepath.ToSlash(filepath.Join(strconv.FormatUint(uint64(propertyID), 10), storedName)),
		MimeType:   mime,
		SizeBytes:  written,
	}
	if err := s.DB.Create(&resource).Error; err != nil {
		os.Remove(fullpath)
		return nil, fmt.Errorf("failed to record resource: %w", err)
	}
	return &resource, nil
}

// SaveBase64Image stores destination imagery posted as a base64 data URI.
func (s *ResourceService) SaveBase64Image(propertyID uint, b64 string, meta map[string]string) (*models.Resource, error) {
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, err
	}

	destDir := filepath.Join(s.UploadDir, strconv.FormatUint(uint64(propertyID), 10))
	fullpath, err := utils.SaveBase64Image(b64, destDir)
	if err != nil {
		return nil, err
	}

	info, _ := os.Stat(fullpath)
	var size int64
	if info != nil {
		size = info.Size()
	}
	ext := strings.ToLower(filepath.Ext(fullpath))
	mime, _ := utils.AllowedUploadExt(ext)

	var metaJSON datatypes.JSON
	if len(meta) > 0 {
		raw, _ := json.Marshal(meta)
		metaJSON = datatypes.JSON(raw)
	}

	resource := models.Resource{
		PropertyID: propertyID,
		Category:   models.ResourceImage,
		FileName:   filepath.Base(fullpath),
		StoredPath: filepath.ToSlash(filepath.Join(strconv.FormatUint(uint64(propertyID), 10), filepath.Base(fullpath))),
		MimeType:   mime,
		SizeBytes:  size,
		Meta:       metaJSON,
	}
	if err := s.DB.Create(&resource).Error; err != nil {
		os.Remove(fullpath)
		return nil, fmt.Errorf("failed to record resource: %w", err)
	}
	return &resource, nil
}

func (s *ResourceService) GetByProperty(propertyID uint, category string) ([]models.Resource, error) {
	var resources []models.Resource
	q := s.DB.Where("property_id = ?", propertyID).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve resources: %w", err)
	}
	return resources, nil
}

// Delete removes the row and best-effort unlinks the file on disk.
func (s *ResourceService) Delete(resourceID uint) error {
	var resource models.Resource
	if err := s.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("resource_not_found")
		}
		return err
	}

	if err := s.DB.Delete(&resource).Error; err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	fullpath := filepath.Join(s.UploadDir, filepath.FromSlash(resource.StoredPath))
	if err := os.Remove(fullpath); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to remove resource file %s: %v", fullpath, err)
	}
	return nil
}
