package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

// ExportService writes contacts and bookings as CSV.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

func (s *ExportService) ContactsCSV(w io.Writer, contactType string) error {
	q := s.DB.Order("full_name ASC")
	if contactType != "" {
		q = q.Where("contact_type = ?", contactType)
	}

	var contacts []models.Contact
	if err := q.Find(&contacts).Error; err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"fullName", "email", "phone", "contactType", "language", "notes"}); err != nil {
		return err
	}
	for _, c := range contacts {
		if err := cw.Write([]string{c.FullName, c.Email, c.Phone, c.ContactType, c.Language, c.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) BookingsCSV(w io.Writer, propertyID uint, from, to *time.Time) error {
	q := s.DB.Preload("Property").Order("start_date ASC")
	if propertyID != 0 {
		q = q.Where("property_id = ?", propertyID)
	}
	if from != nil {
		q = q.Where("end_date > ?", utils.DateOnly(*from))
	}
	if to != nil {
		q = q.Where("start_date < ?", utils.DateOnly(*to))
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"propertyName", "referenceCode", "bookingType", "startDate", "endDate", "nights", "guestName", "guestEmail", "totalPrice", "source"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range bookings {
		b := &bookings[i]
		record := []string{
			b.Property.Name,
			b.ReferenceCode,
			b.BookingType,
			b.StartDate.Format(utils.DateLayout),
			b.EndDate.Format(utils.DateLayout),
			strconv.Itoa(b.Nights()),
			b.GuestName,
			b.GuestEmail,
			strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
			b.Source,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
