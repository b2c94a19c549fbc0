package services

import (
	"testing"
	"time"

	"property-backend/models"
)

func TestCheckAvailability_Conflicts(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Villa Aurora")
	svc := NewAvailabilityService(db)

	makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 17))

	tests := []struct {
		name          string
		start, end    time.Time
		wantConflicts int
		wantAvailable bool
	}{
		{
			name:  "fully before",
			start: date(2026, 7, 1), end: date(2026, 7, 5),
			wantConflicts: 0, wantAvailable: true,
		},
		{
			name:  "same-day turnover on checkout",
			start: date(2026, 7, 17), end: date(2026, 7, 20),
			wantConflicts: 0, wantAvailable: true,
		},
		{
			name:  "same-day turnover on checkin",
			start: date(2026, 7, 5), end: date(2026, 7, 10),
			wantConflicts: 0, wantAvailable: true,
		},
		{
			name:  "partial overlap at tail",
			start: date(2026, 7, 15), end: date(2026, 7, 20),
			wantConflicts: 1, wantAvailable: false,
		},
		{
			name:  "fully contained",
			start: date(2026, 7, 11), end: date(2026, 7, 13),
			wantConflicts: 1, wantAvailable: false,
		},
		{
			name:  "surrounding",
			start: date(2026, 7, 1), end: date(2026, 7, 31),
			wantConflicts: 1, wantAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.CheckAvailability(property.ID, tt.start, tt.end, 0)
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if len(report.Conflicts) != tt.wantConflicts {
				t.Fatalf("conflicts = %d, want %d", len(report.Conflicts), tt.wantConflicts)
			}
			if report.Available != tt.wantAvailable {
				t.Fatalf("available = %v, want %v", report.Available, tt.wantAvailable)
			}
		})
	}
}

func TestCheckAvailability_Severities(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa del Mar")
	svc := NewAvailabilityService(db)

	blocking := makeBooking(t, db, property.ID, models.BookingMaintenance, date(2026, 5, 1), date(2026, 5, 5))
	fresh := makeBooking(t, db, property.ID, models.BookingTentative, date(2026, 5, 10), date(2026, 5, 15))
	stale := makeBooking(t, db, property.ID, models.BookingTentative, date(2026, 5, 20), date(2026, 5, 25))
	backdateBooking(t, db, stale.ID, time.Now().UTC().Add(-96*time.Hour)) // past the 72h default hold

	report, err := svc.CheckAvailability(property.ID, date(2026, 5, 1), date(2026, 5, 31), 0)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if len(report.Conflicts) != 3 {
		t.Fatalf("conflicts = %d, want 3", len(report.Conflicts))
	}

	severities := map[uint]string{}
	for _, c := range report.Conflicts {
		severities[c.BookingID] = c.Severity
	}
	if severities[blocking.ID] != SeverityBlocking {
		t.Errorf("maintenance severity = %s, want %s", severities[blocking.ID], SeverityBlocking)
	}
	if severities[fresh.ID] != SeverityWarning {
		t.Errorf("fresh tentative severity = %s, want %s", severities[fresh.ID], SeverityWarning)
	}
	if severities[stale.ID] != SeverityGracePeriod {
		t.Errorf("stale tentative severity = %s, want %s", severities[stale.ID], SeverityGracePeriod)
	}

	// The blocking maintenance booking makes the range unavailable.
	if report.Available {
		t.Error("expected Available=false with a blocking conflict")
	}

	// Only the tentative ones in range: no blocking conflict, still available.
	report, err = svc.CheckAvailability(property.ID, date(2026, 5, 9), date(2026, 5, 26), 0)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !report.Available {
		t.Error("expected Available=true with only tentative conflicts")
	}
}

func TestCheckAvailability_HoldWindowFromSettings(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Finca Vieja")
	if err := db.Create(&models.AgencySetting{TentativeHoldHours: 24}).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	svc := NewAvailabilityService(db)

	tentative := makeBooking(t, db, property.ID, models.BookingTentative, date(2026, 6, 1), date(2026, 6, 5))
	backdateBooking(t, db, tentative.ID, time.Now().UTC().Add(-36*time.Hour))

	report, err := svc.CheckAvailability(property.ID, date(2026, 6, 2), date(2026, 6, 4), 0)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if len(report.Conflicts) != 1 || report.Conflicts[0].Severity != SeverityGracePeriod {
		t.Fatalf("conflicts = %+v, want one grace_period conflict (24h hold)", report.Conflicts)
	}
}

func TestCheckAvailability_ExcludesBooking(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Villa Brisa")
	svc := NewAvailabilityService(db)

	booking := makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 8, 1), date(2026, 8, 8))

	report, err := svc.CheckAvailability(property.ID, date(2026, 8, 3), date(2026, 8, 10), booking.ID)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if len(report.Conflicts) != 0 {
		t.Fatalf("conflicts = %d, want 0 when excluding the booking itself", len(report.Conflicts))
	}
}

func TestCheckAvailability_StayRules(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Chalet Norte")
	svc := NewAvailabilityService(db)

	saturday := int(time.Saturday)
	rules := []models.MinimumStayRule{
		{PropertyID: property.ID, StartDate: date(2026, 7, 1), EndDate: date(2026, 9, 1), MinNights: 7, RuleType: models.RuleFixedDay, CheckInDay: &saturday},
		{PropertyID: property.ID, StartDate: date(2026, 6, 1), EndDate: date(2026, 7, 1), MinNights: 3, RuleType: models.RulePerNight},
	}
	if err := db.Create(&rules).Error; err != nil {
		t.Fatalf("failed to create rules: %v", err)
	}

	tests := []struct {
		name           string
		start, end     time.Time
		wantViolations int
	}{
		// 2026-07-04 is a Saturday.
		{"saturday week in july", date(2026, 7, 4), date(2026, 7, 11), 0},
		{"monday checkin in july", date(2026, 7, 6), date(2026, 7, 13), 1},
		{"saturday but short", date(2026, 7, 4), date(2026, 7, 8), 1},
		{"june three nights", date(2026, 6, 10), date(2026, 6, 13), 0},
		{"june two nights", date(2026, 6, 10), date(2026, 6, 12), 1},
		{"outside any rule", date(2026, 9, 10), date(2026, 9, 11), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.CheckAvailability(property.ID, tt.start, tt.end, 0)
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if len(report.StayViolations) != tt.wantViolations {
				t.Fatalf("violations = %+v, want %d", report.StayViolations, tt.wantViolations)
			}
		})
	}
}

func TestCheckAvailability_Errors(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Villa Sur")
	svc := NewAvailabilityService(db)

	if _, err := svc.CheckAvailability(property.ID, date(2026, 7, 10), date(2026, 7, 10), 0); err == nil || err.Error() != "invalid_date_range" {
		t.Errorf("zero-night range: err = %v, want invalid_date_range", err)
	}
	if _, err := svc.CheckAvailability(9999, date(2026, 7, 10), date(2026, 7, 12), 0); err == nil || err.Error() != "property_not_found" {
		t.Errorf("unknown property: err = %v, want property_not_found", err)
	}
}

func TestCalendar(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Casa Calendario")
	svc := NewAvailabilityService(db)

	// Two back-to-back bookings: 10-13 and 13-15.
	makeBooking(t, db, property.ID, models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 13))
	makeBooking(t, db, property.ID, models.BookingOwner, date(2026, 7, 13), date(2026, 7, 15))

	pr := models.PriceRange{
		PropertyID: property.ID, Name: "Summer",
		StartDate: date(2026, 7, 1), EndDate: date(2026, 8, 1),
		PublicNightly: 150,
	}
	if err := db.Create(&pr).Error; err != nil {
		t.Fatalf("failed to create price range: %v", err)
	}

	days, err := svc.Calendar(property.ID, date(2026, 7, 9), date(2026, 7, 16))
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}
	if len(days) != 8 {
		t.Fatalf("days = %d, want 8", len(days))
	}

	wantStates := map[string]string{
		"2026-07-09": DayAvailable,
		"2026-07-10": DayCheckIn,
		"2026-07-11": DayOccupied,
		"2026-07-12": DayOccupied,
		"2026-07-13": DayTurnover,
		"2026-07-14": DayOccupied,
		"2026-07-15": DayCheckOut,
		"2026-07-16": DayAvailable,
	}
	for _, day := range days {
		if want := wantStates[day.Date]; day.State != want {
			t.Errorf("state[%s] = %s, want %s", day.Date, day.State, want)
		}
		if day.NightlyRate == nil || *day.NightlyRate != 150 {
			t.Errorf("rate[%s] = %v, want 150", day.Date, day.NightlyRate)
		}
	}

	// The turnover day lists both bookings.
	for _, day := range days {
		if day.Date == "2026-07-13" && len(day.Bookings) != 2 {
			t.Errorf("turnover day bookings = %d, want 2", len(day.Bookings))
		}
	}
}
