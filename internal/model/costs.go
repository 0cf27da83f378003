package model

// CostSummary is the material cost of one packed partition: sheets bought at
// the sheet-type price plus banding rolls.
type CostSummary struct {
	SheetCount   int     `json:"sheet_count"`
	SheetPrice   float64 `json:"sheet_price"`
	SheetCost    float64 `json:"sheet_cost"`
	BandingCost  float64 `json:"banding_cost"`
	TotalCost    float64 `json:"total_cost"`
	Utilization  float64 `json:"utilization"`
	PlacedUnits  int     `json:"placed_units"`
	RejectedUnit int     `json:"rejected_units"`
}

// NewCostSummary derives the cost figures for a result at the given per-sheet
// price and banding usages.
func NewCostSummary(r CutResult, sheetPrice float64, bandings []BandingUsage) CostSummary {
	var bandingCost float64
	for _, b := range bandings {
		bandingCost += b.Cost
	}
	sheetCost := float64(len(r.Sheets)) * sheetPrice
	return CostSummary{
		SheetCount:   len(r.Sheets),
		SheetPrice:   sheetPrice,
		SheetCost:    sheetCost,
		BandingCost:  bandingCost,
		TotalCost:    sheetCost + bandingCost,
		Utilization:  r.TotalUtilization(),
		PlacedUnits:  r.PlacedCount(),
		RejectedUnit: r.RejectedCount(),
	}
}
