package services

import (
	"errors"
	"fmt"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

// Conflict severities.
const (
	SeverityBlocking = "blocking"
	SeverityWarning  = "warning"
	// SeverityGracePeriod marks a tentative booking whose hold window has
	// lapsed: it still shows on the calendar but can be booked over.
	SeverityGracePeriod = "grace_period"
)

const defaultTentativeHoldHours = 72

// AvailabilityService answers date-range availability questions for a
// property: overlapping bookings with a severity label, minimum-stay rule
// violations and the calendar day grid.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

type Conflict struct {
	BookingID     uint      `json:"booking_id"`
	ReferenceCode string    `json:"reference_code"`
	BookingType   string    `json:"booking_type"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Severity      string    `json:"severity"`
}

type StayViolation struct {
	RuleID    uint   `json:"rule_id"`
	RuleType  string `json:"rule_type"`
	MinNights int    `json:"min_nights"`
	Message   string `json:"message"`
}

type AvailabilityReport struct {
	PropertyID uint      `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Nights     int       `json:"nights"`

	Conflicts      []Conflict      `json:"conflicts"`
	StayViolations []StayViolation `json:"stay_violations"`

	// Available is true when no blocking conflict exists. Warnings and
	// grace-period conflicts leave it true; it is the caller's call.
	Available bool `json:"available"`
}

// severityFor classifies an overlapping booking. Occupying types always
// block; tentative ones block nothing but warn until their hold window
// (holdHours since creation) lapses.
func severityFor(b *models.Booking, holdHours int, now time.Time) string {
	if models.Occupying(b.BookingType) {
		return SeverityBlocking
	}
	if now.After(b.CreatedAt.Add(time.Duration(holdHours) * time.Hour)) {
		return SeverityGracePeriod
	}
	return SeverityWarning
}

func (s *AvailabilityService) tentativeHoldHours() int {
	var setting models.AgencySetting
	if err := s.DB.First(&setting).Error; err != nil || setting.TentativeHoldHours <= 0 {
		return defaultTentativeHoldHours
	}
	return setting.TentativeHoldHours
}

// CheckAvailability builds the conflict report for booking [start,end) on a
// property. excludeBookingID skips one booking (used when updating it).
func (s *AvailabilityService) CheckAvailability(propertyID uint, start, end time.Time, excludeBookingID uint) (AvailabilityReport, error) {
	report := AvailabilityReport{
		PropertyID:     propertyID,
		StartDate:      utils.DateOnly(start),
		EndDate:        utils.DateOnly(end),
		Conflicts:      []Conflict{},
		StayViolations: []StayViolation{},
	}

	if !report.EndDate.After(report.StartDate) {
		return report, errors.New("invalid_date_range")
	}
	report.Nights = utils.NightsBetween(report.StartDate, report.EndDate)

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return report, errors.New("property_not_found")
		}
		return report, fmt.Errorf("failed to load property: %w", err)
	}

	var overlapping []models.Booking
	q := s.DB.
		Where("property_id = ?", propertyID).
		Where("start_date < ? AND end_date > ?", report.EndDate, report.StartDate)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Order("start_date ASC").Find(&overlapping).Error; err != nil {
		return report, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}

	holdHours := s.tentativeHoldHours()
	now := time.Now().UTC()
	for i := range overlapping {
		b := &overlapping[i]
		report.Conflicts = append(report.Conflicts, Conflict{
			BookingID:     b.ID,
			ReferenceCode: b.ReferenceCode,
			BookingType:   b.BookingType,
			StartDate:     b.StartDate,
			EndDate:       b.EndDate,
			Severity:      severityFor(b, holdHours, now),
		})
	}

	var rules []models.MinimumStayRule
	if err := s.DB.
		Where("property_id = ?", propertyID).
		Where("start_date <= ? AND end_date > ?", report.StartDate, report.StartDate).
		Find(&rules).Error; err != nil {
		return report, fmt.Errorf("failed to query stay rules: %w", err)
	}
	for i := range rules {
		if v, ok := evaluateStayRule(&rules[i], report.StartDate, report.Nights); ok {
			report.StayViolations = append(report.StayViolations, v)
		}
	}

	report.Available = true
	for _, c := range report.Conflicts {
		if c.Severity == SeverityBlocking {
			report.Available = false
			break
		}
	}
	return report, nil
}

// evaluateStayRule returns a violation when the stay breaks the rule.
func evaluateStayRule(rule *models.MinimumStayRule, checkIn time.Time, nights int) (StayViolation, bool) {
	v := StayViolation{RuleID: rule.ID, RuleType: rule.RuleType, MinNights: rule.MinNights}

	if rule.RuleType == models.RuleFixedDay && rule.CheckInDay != nil {
		want := time.Weekday(*rule.CheckInDay)
		if checkIn.Weekday() != want {
			v.Message = fmt.Sprintf("check-in must be on %s", want)
			return v, true
		}
	}
	if nights < rule.MinNights {
		v.Message = fmt.Sprintf("minimum stay is %d nights, got %d", rule.MinNights, nights)
		return v, true
	}
	return v, false
}

// Calendar day states.
const (
	DayAvailable = "available"
	DayOccupied  = "occupied"
	DayCheckIn   = "check_in"
	DayCheckOut  = "check_out"
	DayTurnover  = "turnover"
)

type CalendarBooking struct {
	BookingID     uint   `json:"booking_id"`
	ReferenceCode string `json:"reference_code"`
	BookingType   string `json:"booking_type"`
	GuestName     string `json:"guest_name,omitempty"`
}

type CalendarDay struct {
	Date        string            `json:"date"`
	State       string            `json:"state"`
	Bookings    []CalendarBooking `json:"bookings"`
	NightlyRate *float64          `json:"nightly_rate,omitempty"`
}

// Calendar produces one entry per day in [from,to]: the bookings covering the
// day, the day state and the applicable public nightly rate.
func (s *AvailabilityService) Calendar(propertyID uint, from, to time.Time) ([]CalendarDay, error) {
	from = utils.DateOnly(from)
	to = utils.DateOnly(to)
	if to.Before(from) {
		return nil, errors.New("invalid_date_range")
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	var bookings []models.Booking
	if err := s.DB.
		Where("property_id = ?", propertyID).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	var ranges []models.PriceRange
	if err := s.DB.
		Where("property_id = ?", propertyID).
		Where("start_date <= ? AND end_date > ?", to, from).
		Order("created_at ASC, id ASC").
		Find(&ranges).Error; err != nil {
		return nil, fmt.Errorf("failed to query price ranges: %w", err)
	}

	days := make([]CalendarDay, 0, utils.NightsBetween(from, to)+1)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		entry := CalendarDay{
			Date:     day.Format(utils.DateLayout),
			Bookings: []CalendarBooking{},
		}

		starts, ends := false, false
		for i := range bookings {
			b := &bookings[i]
			covering := !day.Before(b.StartDate) && day.Before(b.EndDate)
			if day.Equal(b.StartDate) {
				starts = true
			}
			if day.Equal(b.EndDate) {
				ends = true
			}
			if covering || day.Equal(b.EndDate) {
				entry.Bookings = append(entry.Bookings, CalendarBooking{
					BookingID:     b.ID,
					ReferenceCode: b.ReferenceCode,
					BookingType:   b.BookingType,
					GuestName:     b.GuestName,
				})
			}
		}

		switch {
		case starts && ends:
			entry.State = DayTurnover
		case starts:
			entry.State = DayCheckIn
		case ends:
			entry.State = DayCheckOut
		case len(entry.Bookings) > 0:
			entry.State = DayOccupied
		default:
			entry.State = DayAvailable
		}

		// Last created range covering the day wins, matching quote behavior.
		for i := range ranges {
			if ranges[i].Covers(day) {
				rate := ranges[i].PublicNightly
				entry.NightlyRate = &rate
			}
		}

		days = append(days, entry)
	}
	return days, nil
}
