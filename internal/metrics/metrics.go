// Package metrics derives performance ratios and classifies a card's results
package metrics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/models"
)

// ErrInvalidMetricsInput indicates a negative or non-finite base value
var ErrInvalidMetricsInput = errors.New("invalid metrics input")

// Base holds the user-entered counters a metrics snapshot is derived from
type Base struct {
	Views       float64 `json:"views" yaml:"views"`
	Clicks      float64 `json:"clicks" yaml:"clicks"`
	Conversions float64 `json:"conversions" yaml:"conversions"`
	Revenue     float64 `json:"revenue" yaml:"revenue"`
	Cost        float64 `json:"cost" yaml:"cost"`
}

// Thresholds are the inclusive minimums a card must reach to be WINNING
type Thresholds struct {
	CTR            float64 `json:"ctr" yaml:"ctr"`
	ConversionRate float64 `json:"conversionRate" yaml:"conversion_rate"`
	ROAS           float64 `json:"roas" yaml:"roas"`
}

// DefaultThresholds: 2% CTR, 1% conversion rate, 1.5x ROAS
func DefaultThresholds() Thresholds {
	return Thresholds{CTR: 2.0, ConversionRate: 1.0, ROAS: 1.5}
}

// BaseOf extracts the base counters of an existing snapshot
func BaseOf(m *models.Metrics) Base {
	if m == nil {
		return Base{}
	}
	return Base{
		Views:       m.Views,
		Clicks:      m.Clicks,
		Conversions: m.Conversions,
		Revenue:     m.Revenue,
		Cost:        m.Cost,
	}
}

func (b Base) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"views", b.Views},
		{"clicks", b.Clicks},
		{"conversions", b.Conversions},
		{"revenue", b.Revenue},
		{"cost", b.Cost},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidMetricsInput, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s cannot be negative (got %v)", ErrInvalidMetricsInput, f.name, f.value)
		}
	}
	return nil
}

// ratio divides, yielding 0 on a zero denominator
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Derive computes a full snapshot from the base counters.
// Zero denominators produce 0, never an error.
func Derive(base Base, actor *models.TeamMember, now time.Time) (models.Metrics, error) {
	if err := base.validate(); err != nil {
		return models.Metrics{}, err
	}

	return models.Metrics{
		Views:          base.Views,
		Clicks:         base.Clicks,
		CTR:            ratio(base.Clicks, base.Views) * 100,
		Conversions:    base.Conversions,
		ConversionRate: ratio(base.Conversions, base.Clicks) * 100,
		Revenue:        base.Revenue,
		EPC:            ratio(base.Revenue, base.Clicks),
		Cost:           base.Cost,
		ROAS:           ratio(base.Revenue, base.Cost),
		UpdatedAt:      now,
		UpdatedBy:      actor,
	}, nil
}

// Evaluate classifies an already-derived snapshot.
// Derived fields are trusted as-is.
func Evaluate(m models.Metrics, t Thresholds) models.Status {
	if m.CTR >= t.CTR && m.ConversionRate >= t.ConversionRate && m.ROAS >= t.ROAS {
		return models.StatusWinning
	}
	return models.StatusNeedsImprovement
}
