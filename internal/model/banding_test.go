package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBandingUsageRoundsUp(t *testing.T) {
	bt := BandingType{ID: "pvc19", Name: "PVC 19mm", RollLengthM: 50, PricePerRol: 25}

	cases := []struct {
		name    string
		totalMM float64
		rolls   int
	}{
		{"zero demand buys nothing", 0, 0},
		{"tiny demand buys a roll", 100, 1},
		{"exact roll", 50000, 1},
		{"just over a roll", 50001, 2},
		{"many rolls", 125000, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			usage := NewBandingUsage(tc.totalMM, bt)
			assert.Equal(t, tc.rolls, usage.Rolls)
			assert.InDelta(t, float64(tc.rolls)*25, usage.Cost, 1e-9)
			assert.InDelta(t, tc.totalMM/1000, usage.TotalLengthM, 1e-9)
		})
	}
}

func TestNewBandingUsageZeroRollLength(t *testing.T) {
	usage := NewBandingUsage(1000, BandingType{ID: "broken"})
	assert.Zero(t, usage.Rolls)
	assert.Zero(t, usage.Cost)
}

func TestBandingDemandIgnoresRejected(t *testing.T) {
	banded := &Part{Name: "Shelf", Length: 800, Width: 300, BandingTypeID: "pvc19", BandLengthA: true, BandLengthB: true}
	plain := &Part{Name: "Back", Length: 800, Width: 300}

	r := CutResult{
		Sheets: []Sheet{{Strips: []Strip{{Parts: []PlacedPart{
			{Unit: UnitPart{Tpl: banded, Index: 0}},
			{Unit: UnitPart{Tpl: banded, Index: 1}},
			{Unit: UnitPart{Tpl: plain}},
		}}}}},
		Rejected: []Part{{Name: "Huge", Length: 5000, Width: 3000, Quantity: 2, BandingTypeID: "pvc19", BandLengthA: true}},
	}

	demand := BandingDemand(r)
	assert.Len(t, demand, 1)
	assert.InDelta(t, 3200.0, demand["pvc19"], 1e-9, "two placed units with both length edges banded")
}

func TestCostSummary(t *testing.T) {
	tpl := &Part{Length: 1000, Width: 500}
	r := CutResult{
		Sheets: []Sheet{{
			Length: 2000, Width: 1000,
			Strips: []Strip{{Parts: []PlacedPart{{Unit: UnitPart{Tpl: tpl}}}}},
		}},
		Rejected: []Part{{Length: 9000, Width: 9000, Quantity: 1}},
	}
	usages := []BandingUsage{{Rolls: 2, Cost: 50}, {Rolls: 1, Cost: 30}}

	cs := NewCostSummary(r, 320, usages)
	assert.Equal(t, 1, cs.SheetCount)
	assert.InDelta(t, 320.0, cs.SheetCost, 1e-9)
	assert.InDelta(t, 80.0, cs.BandingCost, 1e-9)
	assert.InDelta(t, 400.0, cs.TotalCost, 1e-9)
	assert.InDelta(t, 25.0, cs.Utilization, 1e-9)
	assert.Equal(t, 1, cs.PlacedUnits)
	assert.Equal(t, 1, cs.RejectedUnit)
}
