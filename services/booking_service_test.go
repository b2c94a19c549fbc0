package services

import (
	"errors"
	"regexp"
	"testing"

	"property-backend/models"
)

var referenceCodeRe = regexp.MustCompile(`^BK-[ABCDEFGHJKMNPQRSTUVWXYZ2-9]{6}$`)

func TestBookingCreate(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Roja")
	svc := NewBookingService(db)

	booking, err := svc.Create(CreateBookingInput{
		PropertyID:  property.ID,
		BookingType: models.BookingConfirmed,
		StartDate:   date(2026, 7, 10),
		EndDate:     date(2026, 7, 17),
		GuestName:   "  Ана Петрова ",
		GuestEmail:  "ana@example.com",
		TotalPrice:  1200,
		GuestDetails: map[string]interface{}{
			"arrival_time": "18:00",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !referenceCodeRe.MatchString(booking.ReferenceCode) {
		t.Errorf("reference code %q does not match expected format", booking.ReferenceCode)
	}
	if booking.GuestName != "Ана Петрова" {
		t.Errorf("guest name = %q, want trimmed", booking.GuestName)
	}
	if booking.Adults != 1 {
		t.Errorf("adults = %d, want default 1", booking.Adults)
	}
	if booking.Source != models.SourceManual {
		t.Errorf("source = %q, want %q", booking.Source, models.SourceManual)
	}
	if booking.Nights() != 7 {
		t.Errorf("nights = %d, want 7", booking.Nights())
	}
	if booking.Property.ID != property.ID {
		t.Error("expected property preloaded on the returned booking")
	}
	if len(booking.GuestDetails) == 0 {
		t.Error("expected guest details stored")
	}
}

func TestBookingCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Azul")
	svc := NewBookingService(db)

	tests := []struct {
		name    string
		input   CreateBookingInput
		wantErr string
	}{
		{
			name:    "bad type",
			input:   CreateBookingInput{PropertyID: property.ID, BookingType: "party", StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 2)},
			wantErr: "invalid_booking_type",
		},
		{
			name:    "end before start",
			input:   CreateBookingInput{PropertyID: property.ID, BookingType: models.BookingConfirmed, StartDate: date(2026, 7, 5), EndDate: date(2026, 7, 1)},
			wantErr: "invalid_date_range",
		},
		{
			name:    "unknown property",
			input:   CreateBookingInput{PropertyID: 9999, BookingType: models.BookingConfirmed, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 2)},
			wantErr: "property_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(tt.input); err == nil || err.Error() != tt.wantErr {
				t.Fatalf("err = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestBookingCreate_Conflicts(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Verde")
	svc := NewBookingService(db)

	makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 17))
	tentative := makeBooking(t, db, property.ID, models.BookingTentative, date(2026, 7, 20), date(2026, 7, 25))

	t.Run("blocking conflict returns report", func(t *testing.T) {
		_, err := svc.Create(CreateBookingInput{
			PropertyID:  property.ID,
			BookingType: models.BookingConfirmed,
			StartDate:   date(2026, 7, 15),
			EndDate:     date(2026, 7, 20),
		})
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("err = %v, want *ConflictError", err)
		}
		if len(conflictErr.Report.Conflicts) != 1 {
			t.Fatalf("report conflicts = %d, want 1", len(conflictErr.Report.Conflicts))
		}
		if conflictErr.Report.Conflicts[0].Severity != SeverityBlocking {
			t.Errorf("severity = %s, want blocking", conflictErr.Report.Conflicts[0].Severity)
		}
	})

	t.Run("blocking conflict not forceable", func(t *testing.T) {
		_, err := svc.Create(CreateBookingInput{
			PropertyID:  property.ID,
			BookingType: models.BookingConfirmed,
			StartDate:   date(2026, 7, 15),
			EndDate:     date(2026, 7, 20),
			Force:       true,
		})
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("err = %v, want *ConflictError even with force", err)
		}
	})

	t.Run("tentative overlap blocks without force", func(t *testing.T) {
		_, err := svc.Create(CreateBookingInput{
			PropertyID:  property.ID,
			BookingType: models.BookingConfirmed,
			StartDate:   date(2026, 7, 22),
			EndDate:     date(2026, 7, 27),
		})
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("err = %v, want *ConflictError", err)
		}
	})

	t.Run("force books over tentative", func(t *testing.T) {
		booking, err := svc.Create(CreateBookingInput{
			PropertyID:  property.ID,
			BookingType: models.BookingConfirmed,
			StartDate:   date(2026, 7, 22),
			EndDate:     date(2026, 7, 27),
			Force:       true,
		})
		if err != nil {
			t.Fatalf("Create with force: %v", err)
		}
		if booking.ID == tentative.ID {
			t.Fatal("expected a new booking")
		}
	})

	t.Run("back to back allowed", func(t *testing.T) {
		if _, err := svc.Create(CreateBookingInput{
			PropertyID:  property.ID,
			BookingType: models.BookingConfirmed,
			StartDate:   date(2026, 7, 17),
			EndDate:     date(2026, 7, 20),
		}); err != nil {
			t.Fatalf("Create back-to-back: %v", err)
		}
	})
}

func TestBookingUpdate(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Blanca")
	svc := NewBookingService(db)

	booking := makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 17))
	makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 20), date(2026, 7, 25))

	t.Run("extending within free dates succeeds", func(t *testing.T) {
		end := date(2026, 7, 18)
		name := "Luca Bianchi"
		updated, err := svc.Update(booking.ID, UpdateBookingInput{EndDate: &end, GuestName: &name})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if !updated.EndDate.Equal(end) || updated.GuestName != name {
			t.Fatalf("updated = %+v", updated)
		}
	})

	t.Run("own dates do not conflict", func(t *testing.T) {
		start := date(2026, 7, 11)
		if _, err := svc.Update(booking.ID, UpdateBookingInput{StartDate: &start}); err != nil {
			t.Fatalf("Update into own range: %v", err)
		}
	})

	t.Run("extending into another booking conflicts", func(t *testing.T) {
		end := date(2026, 7, 22)
		_, err := svc.Update(booking.ID, UpdateBookingInput{EndDate: &end})
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("err = %v, want *ConflictError", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		if _, err := svc.Update(9999, UpdateBookingInput{}); err == nil || err.Error() != "booking_not_found" {
			t.Fatalf("err = %v, want booking_not_found", err)
		}
	})
}

func TestBookingGetAll(t *testing.T) {
	db := newTestDB(t)
	first := makeProperty(t, db, "Casa Uno")
	second := makeProperty(t, db, "Casa Dos")
	svc := NewBookingService(db)

	makeBooking(t, db, first.ID, models.BookingConfirmed, date(2026, 7, 1), date(2026, 7, 5))
	makeBooking(t, db, first.ID, models.BookingBlocked, date(2026, 8, 1), date(2026, 8, 5))
	makeBooking(t, db, second.ID, models.BookingConfirmed, date(2026, 7, 3), date(2026, 7, 8))

	all, err := svc.GetAll(BookingFilter{})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}

	byProperty, err := svc.GetAll(BookingFilter{PropertyID: first.ID})
	if err != nil {
		t.Fatalf("GetAll by property: %v", err)
	}
	if len(byProperty) != 2 {
		t.Fatalf("by property = %d, want 2", len(byProperty))
	}

	byType, err := svc.GetAll(BookingFilter{BookingType: models.BookingBlocked})
	if err != nil {
		t.Fatalf("GetAll by type: %v", err)
	}
	if len(byType) != 1 {
		t.Fatalf("by type = %d, want 1", len(byType))
	}

	from := date(2026, 7, 6)
	to := date(2026, 7, 31)
	inWindow, err := svc.GetAll(BookingFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("GetAll by window: %v", err)
	}
	if len(inWindow) != 1 {
		t.Fatalf("in window = %d, want 1", len(inWindow))
	}
}

func TestBookingDelete(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Libre")
	svc := NewBookingService(db)

	booking := makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 17))

	if err := svc.Delete(booking.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(booking.ID); err == nil || err.Error() != "booking_not_found" {
		t.Fatalf("second delete err = %v, want booking_not_found", err)
	}

	// Deleting frees the dates.
	if _, err := svc.Create(CreateBookingInput{
		PropertyID:  property.ID,
		BookingType: models.BookingConfirmed,
		StartDate:   date(2026, 7, 10),
		EndDate:     date(2026, 7, 17),
	}); err != nil {
		t.Fatalf("Create over deleted booking: %v", err)
	}
}

func TestBookingGetByID(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Rosa")
	svc := NewBookingService(db)

	booking := makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 12))

	got, err := svc.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ReferenceCode != booking.ReferenceCode {
		t.Fatalf("reference = %q, want %q", got.ReferenceCode, booking.ReferenceCode)
	}
	if _, err := svc.GetByID(9999); err == nil || err.Error() != "booking_not_found" {
		t.Fatalf("err = %v, want booking_not_found", err)
	}
}
