package services

import (
	"testing"
	"time"

	"property-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. One
// connection only: every pooled sqlite :memory: connection would otherwise
// get its own empty database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.AgencySetting{},
		&models.Property{},
		&models.Contact{},
		&models.ContactProperty{},
		&models.Booking{},
		&models.AvailabilityRequest{},
		&models.PriceRange{},
		&models.MinimumStayRule{},
		&models.OperationalCost{},
		&models.Resource{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeProperty(t *testing.T, db *gorm.DB, name string) *models.Property {
	t.Helper()
	property := models.Property{Name: name, MaxGuests: 6, DefaultCommissionPct: 20, Active: true}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed to create property %q: %v", name, err)
	}
	return &property
}

func makeBooking(t *testing.T, db *gorm.DB, propertyID uint, bookingType string, start, end time.Time) *models.Booking {
	t.Helper()
	svc := NewBookingService(db)
	booking, err := svc.Create(CreateBookingInput{
		PropertyID:  propertyID,
		BookingType: bookingType,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		t.Fatalf("failed to create %s booking %s..%s: %v", bookingType, start.Format("2006-01-02"), end.Format("2006-01-02"), err)
	}
	return booking
}

// backdateBooking rewrites CreatedAt so hold-window tests can age a
// tentative booking.
func backdateBooking(t *testing.T, db *gorm.DB, bookingID uint, createdAt time.Time) {
	t.Helper()
	if err := db.Model(&models.Booking{}).Where("id = ?", bookingID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate booking %d: %v", bookingID, err)
	}
}
