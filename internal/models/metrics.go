package models

import "time"

// Metrics is a performance snapshot for a card.
// CTR, ConversionRate, EPC and ROAS are always derived from the base fields.
type Metrics struct {
	Views          float64     `json:"views"`
	Clicks         float64     `json:"clicks"`
	CTR            float64     `json:"ctr"`
	Conversions    float64     `json:"conversions"`
	ConversionRate float64     `json:"conversionRate"`
	Revenue        float64     `json:"revenue"`
	EPC            float64     `json:"epc"`
	Cost           float64     `json:"cost"`
	ROAS           float64     `json:"roas"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	UpdatedBy      *TeamMember `json:"updatedBy"`
}
