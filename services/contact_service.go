package services

import (
	"errors"
	"fmt"
	"strings"

	"property-backend/models"

	"gorm.io/gorm"
)

type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

func (s *ContactService) Create(contact *models.Contact) error {
	contact.FullName = strings.TrimSpace(contact.FullName)
	if contact.FullName == "" {
		return errors.New("full_name_required")
	}
	if contact.ContactType == "" {
		contact.ContactType = models.ContactGuest
	}
	if !models.ValidContactType(contact.ContactType) {
		return errors.New("invalid_contact_type")
	}
	return s.DB.Create(contact).Error
}

// GetAll filters by contact type and a case-insensitive name/email search.
func (s *ContactService) GetAll(contactType, search string) ([]models.Contact, error) {
	var contacts []models.Contact

	q := s.DB.Preload("Properties.Property").Order("full_name ASC")
	if contactType != "" {
		q = q.Where("contact_type = ?", contactType)
	}
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	if err := q.Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve contacts: %w", err)
	}
	return contacts, nil
}

func (s *ContactService) GetByID(contactID uint) (*models.Contact, error) {
	var contact models.Contact
	if err := s.DB.Preload("Properties.Property").First(&contact, contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contact_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve contact: %w", err)
	}
	return &contact, nil
}

func (s *ContactService) Update(contactID uint, updates map[string]interface{}) (*models.Contact, error) {
	// Never let the payload touch identity or bookkeeping columns.
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if t, ok := updates["contact_type"].(string); ok && !models.ValidContactType(t) {
		return nil, errors.New("invalid_contact_type")
	}

	var contact models.Contact
	if err := s.DB.First(&contact, contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contact_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve contact: %w", err)
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&contact).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
	}
	return s.GetByID(contactID)
}

func (s *ContactService) Delete(contactID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Contact{}, contactID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete contact: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("contact_not_found")
		}
		// Drop the property links along with the contact.
		return tx.Where("contact_id = ?", contactID).Delete(&models.ContactProperty{}).Error
	})
}

// LinkProperty attaches the contact to a property with a role, updating the
// role on an existing link instead of duplicating it.
func (s *ContactService) LinkProperty(contactID, propertyID uint, role string) (*models.ContactProperty, error) {
	var contact models.Contact
	if err := s.DB.First(&contact, contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contact_not_found")
		}
		return nil, err
	}
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, err
	}

	var link models.ContactProperty
	err := s.DB.
		Where("contact_id = ? AND property_id = ?", contactID, propertyID).
		First(&link).Error
	if err == nil {
		if link.Role != role {
			if err := s.DB.Model(&link).Update("role", role).Error; err != nil {
				return nil, fmt.Errorf("failed to update link role: %w", err)
			}
			link.Role = role
		}
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing link: %w", err)
	}

	link = models.ContactProperty{ContactID: contactID, PropertyID: propertyID, Role: role}
	if err := s.DB.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to link property: %w", err)
	}
	return &link, nil
}

func (s *ContactService) UnlinkProperty(contactID, propertyID uint) error {
	result := s.DB.
		Where("contact_id = ? AND property_id = ?", contactID, propertyID).
		Delete(&models.ContactProperty{})
	if result.Error != nil {
		return fmt.Errorf("failed to unlink property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("link_not_found")
	}
	return nil
}
