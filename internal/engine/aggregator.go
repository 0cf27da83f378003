package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cortesys/cutplan/internal/model"
)

// Catalog resolves the sheet-type and banding-type references carried by
// parts. Implementations are pure data providers; the engine never calls
// them for side effects.
type Catalog interface {
	SheetTypeByID(id string) (model.SheetType, bool)
	BandingTypeByID(id string) (model.BandingType, bool)
}

// Partition is the outcome of packing one sheet-type group.
type Partition struct {
	SheetType model.SheetType      `json:"sheet_type"`
	Result    model.CutResult      `json:"result"`
	Banding   []model.BandingUsage `json:"banding,omitempty"`
	Costs     model.CostSummary    `json:"costs"`
}

// ProjectResult aggregates all partitions of a cut project.
type ProjectResult struct {
	Partitions  []Partition `json:"partitions"`
	TotalSheets int         `json:"total_sheets"`
	SheetCost   float64     `json:"sheet_cost"`
	BandingCost float64     `json:"banding_cost"`
	TotalCost   float64     `json:"total_cost"`
}

// PlacedCount returns the placed units across all partitions.
func (r ProjectResult) PlacedCount() int {
	n := 0
	for _, p := range r.Partitions {
		n += p.Result.PlacedCount()
	}
	return n
}

// RejectedCount returns the rejected units across all partitions.
func (r ProjectResult) RejectedCount() int {
	n := 0
	for _, p := range r.Partitions {
		n += p.Result.RejectedCount()
	}
	return n
}

// Aggregator partitions a cut list by sheet type, runs one optimizer per
// partition, and derives banding usage and material cost per group.
type Aggregator struct {
	Kerf   float64
	Order  Ordering
	Lookup Catalog
}

// NewAggregator returns an aggregator with the default ordering.
func NewAggregator(lookup Catalog, kerf float64) *Aggregator {
	return &Aggregator{Kerf: kerf, Order: OrderByArea, Lookup: lookup}
}

// Run packs every sheet-type partition and aggregates the totals. All
// catalog lookups happen up front so the per-partition work is pure; the
// partitions are independent and run concurrently, reassembled in the
// cut list's first-seen sheet-type order so output stays deterministic.
func (a *Aggregator) Run(parts []model.Part) (*ProjectResult, error) {
	if err := model.ValidateParts(parts); err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string][]model.Part)
	sheetTypes := make(map[string]model.SheetType)
	bandingTypes := make(map[string]model.BandingType)

	for _, p := range parts {
		id := p.SheetTypeID
		if id == "" {
			return nil, fmt.Errorf("part %q has no sheet type: %w", p.Name, model.ErrMissingSheetType)
		}
		if _, ok := sheetTypes[id]; !ok {
			st, found := a.Lookup.SheetTypeByID(id)
			if !found {
				return nil, fmt.Errorf("part %q sheet type %q: %w", p.Name, id, model.ErrMissingSheetType)
			}
			sheetTypes[id] = st
			order = append(order, id)
		}
		if bid := p.BandingTypeID; bid != "" && p.HasBanding() {
			if _, ok := bandingTypes[bid]; !ok {
				bt, found := a.Lookup.BandingTypeByID(bid)
				if !found {
					return nil, fmt.Errorf("part %q banding type %q: %w", p.Name, bid, model.ErrMissingBandingTyp)
				}
				bandingTypes[bid] = bt
			}
		}
		groups[id] = append(groups[id], p)
	}

	partitions := make([]Partition, len(order))
	errs := make([]error, len(order))

	var wg sync.WaitGroup
	for i, id := range order {
		wg.Add(1)
		go func(i int, st model.SheetType, group []model.Part) {
			defer wg.Done()
			opt := &Optimizer{Spec: st.Spec(a.Kerf), Order: a.Order}
			res, err := opt.Optimize(group)
			if err != nil {
				errs[i] = fmt.Errorf("sheet type %s: %w", st.Name, err)
				return
			}
			usages := bandingUsages(res, bandingTypes)
			partitions[i] = Partition{
				SheetType: st,
				Result:    res,
				Banding:   usages,
				Costs:     model.NewCostSummary(res, st.Price, usages),
			}
		}(i, sheetTypes[id], groups[id])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := &ProjectResult{Partitions: partitions}
	for _, p := range partitions {
		out.TotalSheets += len(p.Result.Sheets)
		out.SheetCost += p.Costs.SheetCost
		out.BandingCost += p.Costs.BandingCost
	}
	out.TotalCost = out.SheetCost + out.BandingCost
	return out, nil
}

// bandingUsages converts the placed banding demand of a result into roll
// purchases, ordered by banding type ID for stable output.
func bandingUsages(res model.CutResult, types map[string]model.BandingType) []model.BandingUsage {
	demand := model.BandingDemand(res)
	if len(demand) == 0 {
		return nil
	}
	ids := make([]string, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	usages := make([]model.BandingUsage, 0, len(ids))
	for _, id := range ids {
		bt, ok := types[id]
		if !ok {
			// Lookup was validated up front; a miss here means the part had
			// banding edges but no priced type, so it contributes nothing.
			continue
		}
		usages = append(usages, model.NewBandingUsage(demand[id], bt))
	}
	return usages
}
