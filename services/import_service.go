package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportService handles the bulk availability CSV. Columns: propertyName,
// bookingType, startDate, endDate plus optional guestName, guestEmail,
// guestPhone, notes. Rows are independent: a bad row fails alone, an
// overlapping row imports with a warning.
type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

// Row results.
const (
	RowImported = "imported"
	RowWarned   = "warned"
	RowFailed   = "failed"
)

type ImportRowResult struct {
	Line      int    `json:"line"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	BookingID uint   `json:"booking_id,omitempty"`
}

type ImportResult struct {
	Imported int               `json:"imported"`
	Warned   int               `json:"warned"`
	Failed   int               `json:"failed"`
	Rows     []ImportRowResult `json:"rows"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type importRow struct {
	propertyName string
	bookingType  string
	startDate    time.Time
	endDate      time.Time
	guestName    string
	guestEmail   string
	guestPhone   string
	notes        string
}

// headerIndex maps known column names (case-insensitive, snake or camel) to
// their position.
func headerIndex(header []string) (map[string]int, error) {
	aliases := map[string]string{
		"propertyname": "propertyName",
		"property":     "propertyName",
		"bookingtype":  "bookingType",
		"type":         "bookingType",
		"startdate":    "startDate",
		"start":        "startDate",
		"enddate":      "endDate",
		"end":          "endDate",
		"guestname":    "guestName",
		"guestemail":   "guestEmail",
		"guestphone":   "guestPhone",
		"notes":        "notes",
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(col), "_", ""))
		if name, ok := aliases[key]; ok {
			idx[name] = i
		}
	}

	for _, required := range []string{"propertyName", "bookingType", "startDate", "endDate"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return idx, nil
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(record []string, idx map[string]int) (importRow, error) {
	row := importRow{
		propertyName: field(record, idx, "propertyName"),
		bookingType:  strings.ToLower(field(record, idx, "bookingType")),
		guestName:    field(record, idx, "guestName"),
		guestEmail:   field(record, idx, "guestEmail"),
		guestPhone:   field(record, idx, "guestPhone"),
		notes:        field(record, idx, "notes"),
	}

	if row.propertyName == "" {
		return row, errors.New("propertyName is required")
	}
	if !models.ValidBookingType(row.bookingType) {
		return row, fmt.Errorf("unknown bookingType %q", field(record, idx, "bookingType"))
	}

	start, err := utils.ParseDate(field(record, idx, "startDate"))
	if err != nil {
		return row, fmt.Errorf("startDate: %v", err)
	}
	end, err := utils.ParseDate(field(record, idx, "endDate"))
	if err != nil {
		return row, fmt.Errorf("endDate: %v", err)
	}
	if !end.After(start) {
		return row, errors.New("endDate must be after startDate")
	}
	row.startDate, row.endDate = start, end

	if row.guestEmail != "" && !emailRe.MatchString(row.guestEmail) {
		return row, fmt.Errorf("invalid guestEmail %q", row.guestEmail)
	}
	return row, nil
}

// ImportAvailabilityCSV reads the CSV from r and inserts one booking per
// valid row, each in its own transaction.
func (s *ImportService) ImportAvailabilityCSV(r io.Reader) (ImportResult, error) {
	result := ImportResult{Rows: []ImportRowResult{}}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return result, err
	}

	// Cache property lookups; imports tend to repeat the same few names.
	properties := map[string]*models.Property{}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			result.Rows = append(result.Rows, ImportRowResult{Line: line, Status: RowFailed, Message: err.Error()})
			continue
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}

		row, err := parseRow(record, idx)
		if err != nil {
			result.Failed++
			result.Rows = append(result.Rows, ImportRowResult{Line: line, Status: RowFailed, Message: err.Error()})
			continue
		}

		property, err := s.lookupProperty(properties, row.propertyName)
		if err != nil {
			result.Failed++
			result.Rows = append(result.Rows, ImportRowResult{Line: line, Status: RowFailed, Message: err.Error()})
			continue
		}

		rowResult := s.importRow(property, row)
		rowResult.Line = line
		switch rowResult.Status {
		case RowImported:
			result.Imported++
		case RowWarned:
			result.Imported++
			result.Warned++
		default:
			result.Failed++
		}
		result.Rows = append(result.Rows, rowResult)
	}

	return result, nil
}

func (s *ImportService) lookupProperty(cache map[string]*models.Property, name string) (*models.Property, error) {
	key := strings.ToLower(name)
	if p, ok := cache[key]; ok {
		if p == nil {
			return nil, fmt.Errorf("property %q not found", name)
		}
		return p, nil
	}

	var property models.Property
	err := s.DB.Where("LOWER(name) = ?", key).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cache[key] = nil
		return nil, fmt.Errorf("property %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up property %q: %w", name, err)
	}
	cache[key] = &property
	return &property, nil
}

// importRow creates the booking for one row in its own transaction. An
// overlap with an existing booking does not stop the insert; the row is
// reported as warned.
func (s *ImportService) importRow(property *models.Property, row importRow) ImportRowResult {
	out := ImportRowResult{Status: RowImported}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		avail := NewAvailabilityService(tx)
		report, err := avail.CheckAvailability(property.ID, row.startDate, row.endDate, 0)
		if err != nil {
			return err
		}
		if len(report.Conflicts) > 0 {
			out.Status = RowWarned
			out.Message = fmt.Sprintf("overlaps %d existing booking(s)", len(report.Conflicts))
		}

		var details datatypes.JSON
		if row.guestPhone != "" {
			raw, _ := json.Marshal(map[string]string{"phone": row.guestPhone})
			details = datatypes.JSON(raw)
		}

		booking := models.Booking{
			PropertyID:   property.ID,
			BookingType:  row.bookingType,
			StartDate:    row.startDate,
			EndDate:      row.endDate,
			GuestName:    row.guestName,
			GuestEmail:   row.guestEmail,
			GuestPhone:   row.guestPhone,
			Notes:        row.notes,
			Source:       models.SourceImport,
			GuestDetails: details,
		}
		if err := createWithReference(tx, &booking); err != nil {
			return err
		}
		out.BookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return ImportRowResult{Status: RowFailed, Message: txErr.Error()}
	}
	return out
}
