package services

import (
	"strings"
	"testing"

	"property-backend/models"
)

func TestImportAvailabilityCSV(t *testing.T) {
	db := newTestDB(t)
	makeProperty(t, db, "Villa Aurora")
	svc := NewImportService(db)

	csvData := strings.Join([]string{
		"propertyName,bookingType,startDate,endDate,guestName,guestEmail,guestPhone,notes",
		"Villa Aurora,confirmed,2026-07-10,2026-07-17,Marta Ruiz,marta@example.com,+34 600 111 222,paid deposit",
		"villa aurora,blocked,2026-08-01,2026-08-05,,,,owner visit",
		"Villa Aurora,confirmed,2026-07-15,2026-07-20,Jon Doe,jon@example.com,,", // overlaps row 2
		"Unknown House,confirmed,2026-07-01,2026-07-05,,,,",
		"Villa Aurora,party,2026-07-01,2026-07-05,,,,",
		"Villa Aurora,confirmed,2026-07-05,2026-07-01,,,,",
		"Villa Aurora,confirmed,2026-07-01,2026-07-05,Bad Email,not-an-email,,",
	}, "\n")

	result, err := svc.ImportAvailabilityCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportAvailabilityCSV: %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("imported = %d, want 3", result.Imported)
	}
	if result.Warned != 1 {
		t.Errorf("warned = %d, want 1", result.Warned)
	}
	if result.Failed != 4 {
		t.Errorf("failed = %d, want 4", result.Failed)
	}
	if len(result.Rows) != 7 {
		t.Fatalf("rows = %d, want 7", len(result.Rows))
	}

	// The warned row still produced a booking.
	warned := result.Rows[2]
	if warned.Status != RowWarned || warned.BookingID == 0 {
		t.Errorf("row 3 = %+v, want warned with booking id", warned)
	}

	var count int64
	if err := db.Model(&models.Booking{}).Where("source = ?", models.SourceImport).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("imported bookings in db = %d, want 3", count)
	}

	var overlap models.Booking
	if err := db.First(&overlap, warned.BookingID).Error; err != nil {
		t.Fatalf("load warned booking: %v", err)
	}
	if overlap.GuestEmail != "jon@example.com" {
		t.Errorf("guest email = %q", overlap.GuestEmail)
	}
}

func TestImportAvailabilityCSV_HeaderAliases(t *testing.T) {
	db := newTestDB(t)
	makeProperty(t, db, "Casa Alias")
	svc := NewImportService(db)

	csvData := strings.Join([]string{
		"property,type,start,end,guest_name,guest_phone",
		"Casa Alias,owner,2026-09-01,2026-09-10,Owner Family,+49 170 000",
	}, "\n")

	result, err := svc.ImportAvailabilityCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportAvailabilityCSV: %v", err)
	}
	if result.Imported != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v, want one import", result)
	}

	var booking models.Booking
	if err := db.First(&booking, result.Rows[0].BookingID).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if booking.BookingType != models.BookingOwner || booking.GuestName != "Owner Family" {
		t.Fatalf("booking = %+v", booking)
	}
	if booking.GuestPhone != "+49 170 000" {
		t.Errorf("phone = %q", booking.GuestPhone)
	}
	if len(booking.GuestDetails) == 0 {
		t.Error("expected phone mirrored into guest details")
	}
}

func TestImportAvailabilityCSV_MissingColumn(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(db)

	csvData := "propertyName,startDate,endDate\nVilla X,2026-07-01,2026-07-05\n"
	if _, err := svc.ImportAvailabilityCSV(strings.NewReader(csvData)); err == nil || !strings.Contains(err.Error(), "bookingType") {
		t.Fatalf("err = %v, want missing column bookingType", err)
	}
}

func TestImportAvailabilityCSV_SkipsBlankLines(t *testing.T) {
	db := newTestDB(t)
	makeProperty(t, db, "Casa Blanca")
	svc := NewImportService(db)

	csvData := "propertyName,bookingType,startDate,endDate\n\nCasa Blanca,confirmed,2026-07-01,2026-07-05\n\n"
	result, err := svc.ImportAvailabilityCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportAvailabilityCSV: %v", err)
	}
	if result.Imported != 1 || result.Failed != 0 || len(result.Rows) != 1 {
		t.Fatalf("result = %+v, want one imported row only", result)
	}
}
