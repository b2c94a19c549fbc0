package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

// RequestService handles guest-submitted availability requests and their
// confirmation into bookings.
type RequestService struct {
	DB *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{DB: db}
}

type CreateRequestInput struct {
	PropertyID uint
	GuestName  string
	GuestEmail string
	GuestPhone string
	StartDate  time.Time
	EndDate    time.Time
	Adults     int
	Children   int
	Message    string
}

func (s *RequestService) Create(input CreateRequestInput) (*models.AvailabilityRequest, error) {
	input.StartDate = utils.DateOnly(input.StartDate)
	input.EndDate = utils.DateOnly(input.EndDate)
	if !input.EndDate.After(input.StartDate) {
		return nil, errors.New("invalid_date_range")
	}
	if strings.TrimSpace(input.GuestName) == "" || strings.TrimSpace(input.GuestEmail) == "" {
		return nil, errors.New("guest_contact_required")
	}
	if input.Adults <= 0 {
		input.Adults = 1
	}

	var property models.Property
	if err := s.DB.First(&property, input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	request := models.AvailabilityRequest{
		PropertyID: input.PropertyID,
		GuestName:  strings.TrimSpace(input.GuestName),
		GuestEmail: strings.TrimSpace(input.GuestEmail),
		GuestPhone: strings.TrimSpace(input.GuestPhone),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Adults:     input.Adults,
		Children:   input.Children,
		Status:     models.RequestPending,
		Message:    input.Message,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create availability request: %w", err)
	}
	return &request, nil
}

func (s *RequestService) GetAll(status string, propertyID uint) ([]models.AvailabilityRequest, error) {
	var list []models.AvailabilityRequest

	q := s.DB.Preload("Property").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if propertyID != 0 {
		q = q.Where("property_id = ?", propertyID)
	}

	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve availability requests: %w", err)
	}
	return list, nil
}

// Confirm turns a pending request into a confirmed booking. The
// availability check runs again inside the transaction; a blocking
// conflict aborts with ConflictError. The status update is guarded by a
// WHERE on the pending status so two concurrent confirms cannot both win.
func (s *RequestService) Confirm(requestID uint, force bool) (*models.AvailabilityRequest, error) {
	var request models.AvailabilityRequest

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("request_not_found")
			}
			return err
		}
		if request.Status != models.RequestPending {
			return errors.New("request_already_decided")
		}

		avail := NewAvailabilityService(tx)
		report, err := avail.CheckAvailability(request.PropertyID, request.StartDate, request.EndDate, 0)
		if err != nil {
			return err
		}
		if blocked(report, force) {
			return &ConflictError{Report: report}
		}

		booking := models.Booking{
			PropertyID:  request.PropertyID,
			BookingType: models.BookingConfirmed,
			StartDate:   request.StartDate,
			EndDate:     request.EndDate,
			GuestName:   request.GuestName,
			GuestEmail:  request.GuestEmail,
			GuestPhone:  request.GuestPhone,
			Adults:      request.Adults,
			Children:    request.Children,
			Source:      models.SourceRequest,
		}
		if err := createWithReference(tx, &booking); err != nil {
			return err
		}

		result := tx.Model(&models.AvailabilityRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Updates(map[string]interface{}{
				"status":     models.RequestConfirmed,
				"decided_at": time.Now().UTC(),
				"booking_id": booking.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("request_already_decided")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Property").Preload("Booking").First(&request, request.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}
	return &request, nil
}

// Reject marks a pending request rejected.
func (s *RequestService) Reject(requestID uint, reason string) (*models.AvailabilityRequest, error) {
	var request models.AvailabilityRequest

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("request_not_found")
			}
			return err
		}

		updates := map[string]interface{}{
			"status":     models.RequestRejected,
			"decided_at": time.Now().UTC(),
		}
		if strings.TrimSpace(reason) != "" {
			updates["message"] = reason
		}

		result := tx.Model(&models.AvailabilityRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("request_already_decided")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.First(&request, request.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}
	return &request, nil
}
