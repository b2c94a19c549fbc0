package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService wraps *gorm.DB for booking lifecycle logic. Conflict
// detection is delegated to the availability service and runs inside the
// same transaction as the write.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Availability: NewAvailabilityService(db)}
}

type CreateBookingInput struct {
	PropertyID  uint
	BookingType string
	StartDate   time.Time
	EndDate     time.Time

	GuestName  string
	GuestEmail string
	GuestPhone string
	Adults     int
	Children   int

	TotalPrice float64
	Source     string
	Notes      string

	GuestDetails map[string]interface{}

	// Force books over grace-period conflicts. Blocking conflicts are
	// never forceable.
	Force bool
}

type BookingFilter struct {
	PropertyID  uint
	BookingType string
	From        *time.Time
	To          *time.Time
}

// ConflictError carries the availability report so controllers can return
// the conflict list with the 409.
type ConflictError struct {
	Report AvailabilityReport
}

func (e *ConflictError) Error() string { return "booking_conflict" }

func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	if !models.ValidBookingType(input.BookingType) {
		return nil, errors.New("invalid_booking_type")
	}
	input.StartDate = utils.DateOnly(input.StartDate)
	input.EndDate = utils.DateOnly(input.EndDate)
	if !input.EndDate.After(input.StartDate) {
		return nil, errors.New("invalid_date_range")
	}
	if input.Adults <= 0 {
		input.Adults = 1
	}
	if input.Children < 0 {
		input.Children = 0
	}
	if input.Source == "" {
		input.Source = models.SourceManual
	}

	var details datatypes.JSON
	if len(input.GuestDetails) > 0 {
		raw, err := json.Marshal(input.GuestDetails)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal guest details: %w", err)
		}
		details = datatypes.JSON(raw)
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		avail := NewAvailabilityService(tx)
		report, err := avail.CheckAvailability(input.PropertyID, input.StartDate, input.EndDate, 0)
		if err != nil {
			return err
		}
		if blocked(report, input.Force) {
			return &ConflictError{Report: report}
		}

		booking = models.Booking{
			PropertyID:   input.PropertyID,
			BookingType:  input.BookingType,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			GuestName:    strings.TrimSpace(input.GuestName),
			GuestEmail:   strings.TrimSpace(input.GuestEmail),
			GuestPhone:   strings.TrimSpace(input.GuestPhone),
			Adults:       input.Adults,
			Children:     input.Children,
			TotalPrice:   input.TotalPrice,
			Source:       input.Source,
			Notes:        input.Notes,
			GuestDetails: details,
		}
		return createWithReference(tx, &booking)
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Property").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

// blocked decides whether the report stops the write. Blocking conflicts
// always do; warnings do unless forced; lapsed holds only without force.
func blocked(report AvailabilityReport, force bool) bool {
	for _, c := range report.Conflicts {
		switch c.Severity {
		case SeverityBlocking:
			return true
		case SeverityWarning, SeverityGracePeriod:
			if !force {
				return true
			}
		}
	}
	return false
}

// createWithReference creates the booking, regenerating the reference code
// on a unique collision.
func createWithReference(tx *gorm.DB, booking *models.Booking) error {
	const maxRetries = 5
	for attempt := 0; attempt < maxRetries; attempt++ {
		ref, err := utils.GenerateBookingReference()
		if err != nil {
			return fmt.Errorf("failed to generate reference: %w", err)
		}
		booking.ReferenceCode = ref

		createErr := tx.Create(booking).Error
		if createErr == nil {
			return nil
		}
		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			log.Printf("booking reference collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return fmt.Errorf("failed to create booking: %w", createErr)
	}
	return errors.New("failed to create booking after retries")
}

type UpdateBookingInput struct {
	BookingType *string
	StartDate   *time.Time
	EndDate     *time.Time
	GuestName   *string
	GuestEmail  *string
	GuestPhone  *string
	Adults      *int
	Children    *int
	TotalPrice  *float64
	Notes       *string
	Force       bool
}

func (s *BookingService) Update(bookingID uint, input UpdateBookingInput) (*models.Booking, error) {
	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		if input.BookingType != nil {
			if !models.ValidBookingType(*input.BookingType) {
				return errors.New("invalid_booking_type")
			}
			booking.BookingType = *input.BookingType
		}
		if input.StartDate != nil {
			booking.StartDate = utils.DateOnly(*input.StartDate)
		}
		if input.EndDate != nil {
			booking.EndDate = utils.DateOnly(*input.EndDate)
		}
		if !booking.EndDate.After(booking.StartDate) {
			return errors.New("invalid_date_range")
		}
		if input.GuestName != nil {
			booking.GuestName = strings.TrimSpace(*input.GuestName)
		}
		if input.GuestEmail != nil {
			booking.GuestEmail = strings.TrimSpace(*input.GuestEmail)
		}
		if input.GuestPhone != nil {
			booking.GuestPhone = strings.TrimSpace(*input.GuestPhone)
		}
		if input.Adults != nil && *input.Adults > 0 {
			booking.Adults = *input.Adults
		}
		if input.Children != nil && *input.Children >= 0 {
			booking.Children = *input.Children
		}
		if input.TotalPrice != nil {
			booking.TotalPrice = *input.TotalPrice
		}
		if input.Notes != nil {
			booking.Notes = *input.Notes
		}

		avail := NewAvailabilityService(tx)
		report, err := avail.CheckAvailability(booking.PropertyID, booking.StartDate, booking.EndDate, booking.ID)
		if err != nil {
			return err
		}
		if blocked(report, input.Force) {
			return &ConflictError{Report: report}
		}

		return tx.Save(&booking).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Property").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Property").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

func (s *BookingService) GetAll(filter BookingFilter) ([]models.Booking, error) {
	var list []models.Booking

	q := s.DB.Preload("Property").Order("start_date DESC")
	if filter.PropertyID != 0 {
		q = q.Where("property_id = ?", filter.PropertyID)
	}
	if filter.BookingType != "" {
		q = q.Where("booking_type = ?", filter.BookingType)
	}
	if filter.From != nil {
		q = q.Where("end_date > ?", utils.DateOnly(*filter.From))
	}
	if filter.To != nil {
		q = q.Where("start_date < ?", utils.DateOnly(*filter.To))
	}

	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// Delete soft-deletes the booking, freeing its dates.
func (s *BookingService) Delete(bookingID uint) error {
	result := s.DB.Delete(&models.Booking{}, bookingID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("booking_not_found")
	}
	return nil
}
