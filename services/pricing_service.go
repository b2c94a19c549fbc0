package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"gorm.io/gorm"
)

// PricingService resolves nightly rates from price ranges and builds stay
// quotes including per-stay operational costs.
type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

// RoundCents rounds to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// PublicFromOwner derives the guest-facing price from the owner price and
// the agency commission: public = owner / (1 - pct/100).
func PublicFromOwner(owner, commissionPct float64) (float64, error) {
	if commissionPct < 0 || commissionPct >= 100 {
		return 0, errors.New("invalid_commission")
	}
	return RoundCents(owner / (1 - commissionPct/100)), nil
}

// OwnerFromPublic is the inverse: owner = public * (1 - pct/100).
func OwnerFromPublic(public, commissionPct float64) (float64, error) {
	if commissionPct < 0 || commissionPct >= 100 {
		return 0, errors.New("invalid_commission")
	}
	return RoundCents(public * (1 - commissionPct/100)), nil
}

// Rate sources in a quote night.
const (
	RateNightly = "nightly"
	RateWeekly  = "weekly"
)

type QuoteNight struct {
	Date         string  `json:"date"`
	Rate         float64 `json:"rate"`
	PriceRangeID uint    `json:"price_range_id"`
	RangeName    string  `json:"range_name"`
	Source       string  `json:"source"`
}

type QuoteCost struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type Quote struct {
	PropertyID uint      `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Nights     int       `json:"nights"`

	NightsPriced []QuoteNight `json:"nights_priced"`
	Gaps         []string     `json:"gaps"`

	Subtotal   float64     `json:"subtotal"`
	Costs      []QuoteCost `json:"costs"`
	CostsTotal float64     `json:"costs_total"`
	Total      float64     `json:"total"`

	// Complete is false when some night has no covering price range.
	Complete bool `json:"complete"`
}

// Quote prices each night of [start,end) against the property's price
// ranges. When two ranges overlap the one created last wins. Stays of 7+
// nights use the weekly rate (per night = weekly/7) where the covering
// range defines one.
func (s *PricingService) Quote(propertyID uint, start, end time.Time) (Quote, error) {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)

	quote := Quote{
		PropertyID:   propertyID,
		StartDate:    start,
		EndDate:      end,
		NightsPriced: []QuoteNight{},
		Gaps:         []string{},
		Costs:        []QuoteCost{},
	}
	if !end.After(start) {
		return quote, errors.New("invalid_date_range")
	}
	quote.Nights = utils.NightsBetween(start, end)

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return quote, errors.New("property_not_found")
		}
		return quote, fmt.Errorf("failed to load property: %w", err)
	}

	var ranges []models.PriceRange
	if err := s.DB.
		Where("property_id = ?", propertyID).
		Where("start_date < ? AND end_date > ?", end, start).
		Order("created_at ASC, id ASC").
		Find(&ranges).Error; err != nil {
		return quote, fmt.Errorf("failed to query price ranges: %w", err)
	}

	weekly := quote.Nights >= 7
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		var covering *models.PriceRange
		for i := range ranges {
			if ranges[i].Covers(day) {
				covering = &ranges[i]
			}
		}
		if covering == nil {
			quote.Gaps = append(quote.Gaps, day.Format(utils.DateLayout))
			continue
		}

		rate := covering.PublicNightly
		source := RateNightly
		if weekly && covering.PublicWeekly > 0 {
			rate = RoundCents(covering.PublicWeekly / 7)
			source = RateWeekly
		}

		quote.NightsPriced = append(quote.NightsPriced, QuoteNight{
			Date:         day.Format(utils.DateLayout),
			Rate:         rate,
			PriceRangeID: covering.ID,
			RangeName:    covering.Name,
			Source:       source,
		})
		quote.Subtotal = RoundCents(quote.Subtotal + rate)
	}

	var costs []models.OperationalCost
	if err := s.DB.
		Where("property_id = ? AND per_stay = ? AND public_price > 0", propertyID, true).
		Find(&costs).Error; err != nil {
		return quote, fmt.Errorf("failed to query operational costs: %w", err)
	}
	for _, cost := range costs {
		label := cost.Label
		if label == "" {
			label = cost.CostType
		}
		quote.Costs = append(quote.Costs, QuoteCost{Label: label, Amount: cost.PublicPrice})
		quote.CostsTotal = RoundCents(quote.CostsTotal + cost.PublicPrice)
	}

	quote.Total = RoundCents(quote.Subtotal + quote.CostsTotal)
	quote.Complete = len(quote.Gaps) == 0
	return quote, nil
}

// NormalizeRates fills missing public rates from owner rates (and the other
// way around) using the range's commission, falling back to the property
// default. Used on price range create/update.
func (s *PricingService) NormalizeRates(pr *models.PriceRange) error {
	pct := pr.CommissionPct
	if pct == 0 {
		var property models.Property
		if err := s.DB.First(&property, pr.PropertyID).Error; err == nil && property.DefaultCommissionPct > 0 {
			pct = property.DefaultCommissionPct
			pr.CommissionPct = pct
		}
	}

	var err error
	if pr.PublicNightly == 0 && pr.OwnerNightly > 0 {
		if pr.PublicNightly, err = PublicFromOwner(pr.OwnerNightly, pct); err != nil {
			return err
		}
	}
	if pr.PublicWeekly == 0 && pr.OwnerWeekly > 0 {
		if pr.PublicWeekly, err = PublicFromOwner(pr.OwnerWeekly, pct); err != nil {
			return err
		}
	}
	if pr.OwnerNightly == 0 && pr.PublicNightly > 0 {
		if pr.OwnerNightly, err = OwnerFromPublic(pr.PublicNightly, pct); err != nil {
			return err
		}
	}
	if pr.OwnerWeekly == 0 && pr.PublicWeekly > 0 {
		if pr.OwnerWeekly, err = OwnerFromPublic(pr.PublicWeekly, pct); err != nil {
			return err
		}
	}
	return nil
}
