// Package engine implements the strip-based guillotine packing heuristic:
// parts are expanded by quantity, ordered by a greedy key, and laid into
// horizontal strips stacked on successive sheets until the pool is empty.
package engine

import (
	"sort"

	"github.com/cortesys/cutplan/internal/model"
)

// Ordering selects the greedy sort key applied to the expanded pool.
type Ordering int

const (
	// OrderByArea sorts units by area descending. Default; gives the best
	// packing on mixed cut lists.
	OrderByArea Ordering = iota
	// OrderByWidth sorts units by width descending. Simpler bias that keeps
	// strips more uniform in height.
	OrderByWidth
)

// ParseOrdering converts a config/CLI string into an Ordering.
func ParseOrdering(s string) Ordering {
	if s == "width" {
		return OrderByWidth
	}
	return OrderByArea
}

func (o Ordering) String() string {
	if o == OrderByWidth {
		return "width"
	}
	return "area"
}

// Optimizer packs one part pool onto sheets of a single spec.
type Optimizer struct {
	Spec  model.SheetSpec
	Order Ordering
}

// New returns an optimizer with the default area-descending ordering.
func New(spec model.SheetSpec) *Optimizer {
	return &Optimizer{Spec: spec, Order: OrderByArea}
}

// Optimize validates the input, expands and orders it, and packs sheets
// until every unit is placed or rejected. Every valid unit ends up in
// exactly one strip of exactly one sheet; units that fit the sheet in no
// permitted orientation are reported in Rejected instead of being looped on.
func (o *Optimizer) Optimize(parts []model.Part) (model.CutResult, error) {
	if err := o.Spec.Validate(); err != nil {
		return model.CutResult{}, err
	}
	if err := model.ValidateParts(parts); err != nil {
		return model.CutResult{}, err
	}

	pool := Expand(parts)
	SortUnits(pool, o.Order)
	pool, rejected := o.splitUnplaceable(pool)

	result := model.CutResult{Spec: o.Spec, Rejected: rejected}

	number := 1
	for len(pool) > 0 {
		sheet, rest := o.buildSheet(number, pool)
		if len(sheet.Strips) == 0 {
			// Degenerate sheet: the remainder cannot make progress. The
			// up-front fit check should prevent this, but if it ever
			// happens the remainder is surfaced instead of spinning.
			result.Rejected = append(result.Rejected, groupUnits(rest)...)
			break
		}
		result.Sheets = append(result.Sheets, sheet)
		pool = rest
		number++
	}
	return result, nil
}

// Expand turns quantity-bearing parts into unit instances. Each template is
// copied once so units stay valid regardless of what the caller does with
// its slice afterwards.
func Expand(parts []model.Part) []model.UnitPart {
	var units []model.UnitPart
	for i := range parts {
		tpl := parts[i]
		ref := &tpl
		for q := 0; q < tpl.Quantity; q++ {
			units = append(units, model.UnitPart{Tpl: ref, Index: q})
		}
	}
	return units
}

// SortUnits orders the pool descending by the chosen key, in place. The sort
// is stable so equal keys keep input order and repeated runs are identical.
func SortUnits(units []model.UnitPart, order Ordering) {
	switch order {
	case OrderByWidth:
		sort.SliceStable(units, func(i, j int) bool {
			return units[i].Width() > units[j].Width()
		})
	default:
		sort.SliceStable(units, func(i, j int) bool {
			return units[i].Length()*units[i].Width() > units[j].Length()*units[j].Width()
		})
	}
}

// splitUnplaceable removes units that fit the sheet in no permitted
// orientation, returning the packable pool and the rejects grouped back
// into parts.
func (o *Optimizer) splitUnplaceable(pool []model.UnitPart) ([]model.UnitPart, []model.Part) {
	spec := o.Spec
	mayRotate := spec.Grain.AllowsRotation()

	var placeable, rejected []model.UnitPart
	for _, u := range pool {
		fitsNormal := u.Length() <= spec.Length && u.Width() <= spec.Width
		fitsRotated := mayRotate && !u.GrainLocked() &&
			u.Width() <= spec.Length && u.Length() <= spec.Width
		if fitsNormal || fitsRotated {
			placeable = append(placeable, u)
		} else {
			rejected = append(rejected, u)
		}
	}
	return placeable, groupUnits(rejected)
}

// groupUnits collapses units back into parts, one entry per template with
// Quantity set to the unit count. First-seen order is preserved.
func groupUnits(units []model.UnitPart) []model.Part {
	if len(units) == 0 {
		return nil
	}
	counts := make(map[*model.Part]int)
	var order []*model.Part
	for _, u := range units {
		if counts[u.Tpl] == 0 {
			order = append(order, u.Tpl)
		}
		counts[u.Tpl]++
	}
	parts := make([]model.Part, 0, len(order))
	for _, tpl := range order {
		p := *tpl
		p.Quantity = counts[tpl]
		parts = append(parts, p)
	}
	return parts
}

// buildSheet fills one sheet top to bottom, starting a new strip below the
// previous one's widest part plus a kerf gap, until the pool empties, the
// sheet width is exhausted, or a strip makes no progress.
func (o *Optimizer) buildSheet(number int, pool []model.UnitPart) (model.Sheet, []model.UnitPart) {
	spec := o.Spec
	sheet := model.Sheet{
		Number:    number,
		Length:    spec.Length,
		Width:     spec.Width,
		Thickness: spec.Thickness,
		Kerf:      spec.Kerf,
	}

	y := 0.0
	for y < spec.Width && len(pool) > 0 {
		strip, rest, ok := o.buildStrip(y, pool)
		if !ok {
			break
		}
		sheet.Strips = append(sheet.Strips, strip)
		pool = rest
		y += strip.MaxWidth() + spec.Kerf
	}
	return sheet, pool
}
