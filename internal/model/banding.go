package model

import "math"

// BandingType is a catalog entry for an edge-banding roll product.
type BandingType struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	WidthMM     float64 `json:"width_mm"`
	RollLengthM float64 `json:"roll_length_m"`
	PricePerRol float64 `json:"price_per_roll"`
	Color       string  `json:"color,omitempty"`
	Material    string  `json:"material,omitempty"`
	Supplier    string  `json:"supplier,omitempty"`
	Active      bool    `json:"active"`
}

// BandingUsage is the derived consumption of one banding type across a
// packing result.
type BandingUsage struct {
	BandingTypeID string  `json:"banding_type_id"`
	BandingName   string  `json:"banding_name"`
	TotalLengthMM float64 `json:"total_length_mm"`
	TotalLengthM  float64 `json:"total_length_m"`
	Rolls         int     `json:"rolls"`
	Cost          float64 `json:"cost"`
}

// NewBandingUsage converts a raw banding length into purchasable rolls.
// Rolls are always rounded up: partial rolls cannot be bought.
func NewBandingUsage(totalMM float64, bt BandingType) BandingUsage {
	totalM := totalMM / 1000.0
	rolls := 0
	if totalM > 0 && bt.RollLengthM > 0 {
		rolls = int(math.Ceil(totalM / bt.RollLengthM))
	}
	return BandingUsage{
		BandingTypeID: bt.ID,
		BandingName:   bt.Name,
		TotalLengthMM: totalMM,
		TotalLengthM:  totalM,
		Rolls:         rolls,
		Cost:          float64(rolls) * bt.PricePerRol,
	}
}

// BandingDemand sums the required banding length per banding type over the
// placed parts of a result. Rejected parts will not be cut, so they consume
// no banding. Parts without a banding type or without flagged edges are
// skipped. The returned map is keyed by banding type ID, values in mm.
func BandingDemand(r CutResult) map[string]float64 {
	demand := make(map[string]float64)
	for _, sheet := range r.Sheets {
		for _, placed := range sheet.PlacedParts() {
			tpl := placed.Unit.Tpl
			if tpl.BandingTypeID == "" || !tpl.HasBanding() {
				continue
			}
			demand[tpl.BandingTypeID] += tpl.BandingLength()
		}
	}
	return demand
}
