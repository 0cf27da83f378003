package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/cortesys/cutplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() model.SheetSpec {
	return model.SheetSpec{Length: 2750, Width: 1840, Thickness: 18, Kerf: 3, Grain: model.GrainNone}
}

func part(name string, length, width float64, qty int) model.Part {
	return model.Part{Name: name, Length: length, Width: width, Quantity: qty}
}

// rects flattens a sheet into axis-aligned bounding boxes for geometry checks.
func rects(s model.Sheet) [][4]float64 {
	var out [][4]float64
	for _, p := range s.PlacedParts() {
		out = append(out, [4]float64{p.X, p.Y, p.PlacedLength(), p.PlacedWidth()})
	}
	return out
}

func overlap(a, b [4]float64) bool {
	return a[0] < b[0]+b[2] && a[0]+a[2] > b[0] &&
		a[1] < b[1]+b[3] && a[1]+a[3] > b[1]
}

func TestOptimize_FourShelvesOneSheet(t *testing.T) {
	opt := New(testSpec())
	result, err := opt.Optimize([]model.Part{part("Shelf", 800, 300, 4)})
	require.NoError(t, err)

	require.Len(t, result.Sheets, 1, "all four shelves fit one sheet")
	assert.Empty(t, result.Rejected)
	assert.Equal(t, 4, result.PlacedCount())

	// (4 x 800 x 300) / (2750 x 1840) = 18.97%
	util := result.Sheets[0].Utilization()
	assert.InDelta(t, 18.97, util, 0.05)
}

func TestOptimize_OversizedGrainLockedPartIsRejected(t *testing.T) {
	opt := New(testSpec())
	big := part("Countertop", 3000, 300, 1)
	big.GrainLock = true

	result, err := opt.Optimize([]model.Part{big, part("Shelf", 800, 300, 2)})
	require.NoError(t, err)

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "Countertop", result.Rejected[0].Name)
	assert.Equal(t, 1, result.Rejected[0].Quantity)
	assert.Len(t, result.Sheets, 1, "valid parts still pack")
	assert.Equal(t, 2, result.PlacedCount())
}

func TestOptimize_OversizedInBothOrientationsIsRejected(t *testing.T) {
	// 3000mm exceeds the sheet length, and rotated the 3000mm side exceeds
	// the sheet width. Not grain locked, still unplaceable.
	opt := New(testSpec())
	result, err := opt.Optimize([]model.Part{part("Beam", 3000, 300, 2)})
	require.NoError(t, err)

	assert.Empty(t, result.Sheets)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 2, result.Rejected[0].Quantity)
}

func TestOptimize_Conservation(t *testing.T) {
	opt := New(testSpec())
	parts := []model.Part{
		part("Side", 1800, 500, 4),
		part("Shelf", 764, 450, 12),
		part("Back", 1200, 900, 2),
		part("Door", 700, 396, 6),
		part("Oversize", 2900, 2000, 3), // rejected in both orientations
	}
	result, err := opt.Optimize(parts)
	require.NoError(t, err)

	var total int
	for _, p := range parts {
		total += p.Quantity
	}
	assert.Equal(t, total, result.PlacedCount()+result.RejectedCount())
}

func TestOptimize_NoOverlapAndInBounds(t *testing.T) {
	opt := New(testSpec())
	parts := []model.Part{
		part("A", 1200, 600, 3),
		part("B", 900, 450, 5),
		part("C", 400, 300, 9),
		part("D", 2750, 200, 2),
	}
	result, err := opt.Optimize(parts)
	require.NoError(t, err)
	require.NotEmpty(t, result.Sheets)

	for _, sheet := range result.Sheets {
		rs := rects(sheet)
		for i := range rs {
			assert.LessOrEqual(t, rs[i][0]+rs[i][2], sheet.Length+1e-9, "part exceeds sheet length")
			assert.LessOrEqual(t, rs[i][1]+rs[i][3], sheet.Width+1e-9, "part exceeds sheet width")
			for j := i + 1; j < len(rs); j++ {
				assert.False(t, overlap(rs[i], rs[j]), "parts %d and %d overlap on sheet %d", i, j, sheet.Number)
			}
		}
	}
}

func TestOptimize_NextStripClearsOverhangingPart(t *testing.T) {
	// The 305-wide rail joins the 300-high strip under the tolerance and
	// overhangs the defining height by 5mm. The next strip must start below
	// the widest placed part, not below the nominal strip height.
	opt := New(testSpec())
	parts := []model.Part{
		part("Back", 2000, 300, 1),
		part("Door", 1500, 310, 1),
		part("Panel", 1200, 305, 1),
		part("Rail", 700, 305, 1),
	}
	result, err := opt.Optimize(parts)
	require.NoError(t, err)

	require.Len(t, result.Sheets, 1)
	sheet := result.Sheets[0]
	require.Len(t, sheet.Strips, 2)
	assert.Equal(t, 4, result.PlacedCount())

	first := sheet.Strips[0]
	assert.Equal(t, 300.0, first.Height)
	assert.Equal(t, 305.0, first.MaxWidth(), "rail overhangs the defining height")
	assert.Equal(t, 308.0, sheet.Strips[1].Y, "widest part plus kerf, not height plus kerf")

	rs := rects(sheet)
	for i := range rs {
		for j := i + 1; j < len(rs); j++ {
			assert.False(t, overlap(rs[i], rs[j]), "parts %d and %d overlap", i, j)
		}
	}
}

func TestOptimize_RotatedImpliesNotGrainLocked(t *testing.T) {
	opt := New(testSpec())
	locked := part("Locked", 400, 1900, 2) // only fits rotated, but may not rotate
	locked.GrainLock = true
	free := part("Free", 400, 1900, 2) // fits only rotated

	result, err := opt.Optimize([]model.Part{locked, free})
	require.NoError(t, err)

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "Locked", result.Rejected[0].Name)

	for _, sheet := range result.Sheets {
		for _, p := range sheet.PlacedParts() {
			if p.Rotated {
				assert.False(t, p.Unit.GrainLocked())
			}
		}
	}
	assert.Equal(t, 2, result.PlacedCount())
}

func TestOptimize_GrainModeDisablesRotation(t *testing.T) {
	spec := testSpec()
	spec.Grain = model.GrainLengthwise
	opt := New(spec)

	// Fits only rotated; with a lengthwise sheet grain rotation is off.
	result, err := opt.Optimize([]model.Part{part("Panel", 400, 1900, 1)})
	require.NoError(t, err)

	assert.Empty(t, result.Sheets)
	require.Len(t, result.Rejected, 1)
}

func TestOptimize_Deterministic(t *testing.T) {
	parts := []model.Part{
		part("A", 1200, 600, 3),
		part("B", 900, 450, 5),
		part("C", 400, 300, 9),
	}
	first, err := New(testSpec()).Optimize(parts)
	require.NoError(t, err)
	second, err := New(testSpec()).Optimize(parts)
	require.NoError(t, err)

	require.Equal(t, len(first.Sheets), len(second.Sheets))
	for i := range first.Sheets {
		a, b := first.Sheets[i].PlacedParts(), second.Sheets[i].PlacedParts()
		require.Equal(t, len(a), len(b))
		for j := range a {
			assert.Equal(t, a[j].X, b[j].X)
			assert.Equal(t, a[j].Y, b[j].Y)
			assert.Equal(t, a[j].Rotated, b[j].Rotated)
			assert.True(t, reflect.DeepEqual(*a[j].Unit.Tpl, *b[j].Unit.Tpl))
		}
	}
}

func TestOptimize_UtilizationBounds(t *testing.T) {
	opt := New(testSpec())
	result, err := opt.Optimize([]model.Part{
		part("A", 2750, 1840, 1), // exactly one full sheet
		part("B", 100, 100, 40),
	})
	require.NoError(t, err)

	for _, sheet := range result.Sheets {
		u := sheet.Utilization()
		assert.GreaterOrEqual(t, u, 0.0)
		assert.LessOrEqual(t, u, 100.0+1e-9)
		assert.InDelta(t, 100.0, sheet.Utilization()+sheet.Waste(), 1e-9)
	}
}

func TestOptimize_MultiSheetOverflow(t *testing.T) {
	opt := New(testSpec())
	// Each unit occupies nearly a full sheet; ten units need ten sheets.
	result, err := opt.Optimize([]model.Part{part("Panel", 2700, 1800, 10)})
	require.NoError(t, err)

	assert.Len(t, result.Sheets, 10)
	assert.Empty(t, result.Rejected)
	for i, sheet := range result.Sheets {
		assert.Equal(t, i+1, sheet.Number)
		assert.Equal(t, 1, sheet.PartCount())
	}
}

func TestOptimize_InvalidInputRejectedAtBoundary(t *testing.T) {
	opt := New(testSpec())

	_, err := opt.Optimize([]model.Part{part("Bad", 0, 300, 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = opt.Optimize([]model.Part{part("Bad", 300, 300, 0)})
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)

	bad := New(model.SheetSpec{Length: 0, Width: 1840, Kerf: 3})
	_, err = bad.Optimize([]model.Part{part("A", 300, 300, 1)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	neg := New(model.SheetSpec{Length: 2750, Width: 1840, Kerf: -1})
	_, err = neg.Optimize([]model.Part{part("A", 300, 300, 1)})
	assert.ErrorIs(t, err, model.ErrInvalidKerf)
}

func TestExpand_PreservesAttributes(t *testing.T) {
	p := part("Shelf", 800, 300, 3)
	p.BandLengthA = true
	p.GrainLock = true

	units := Expand([]model.Part{p})
	require.Len(t, units, 3)
	for i, u := range units {
		assert.Equal(t, i, u.Index)
		assert.Equal(t, 800.0, u.Length())
		assert.Equal(t, 300.0, u.Width())
		assert.True(t, u.GrainLocked())
		assert.True(t, u.Tpl.BandLengthA)
	}
	// All units of one part share the same template.
	assert.Same(t, units[0].Tpl, units[2].Tpl)
}

func TestSortUnits_StableDescending(t *testing.T) {
	a := part("A", 100, 100, 1) // area 10000
	b := part("B", 200, 100, 1) // area 20000
	c := part("C", 100, 100, 1) // area 10000, after A on ties

	units := Expand([]model.Part{a, b, c})
	SortUnits(units, OrderByArea)
	assert.Equal(t, "B", units[0].Tpl.Name)
	assert.Equal(t, "A", units[1].Tpl.Name)
	assert.Equal(t, "C", units[2].Tpl.Name)

	units = Expand([]model.Part{part("W1", 100, 300, 1), part("W2", 100, 500, 1), part("W3", 900, 300, 1)})
	SortUnits(units, OrderByWidth)
	assert.Equal(t, "W2", units[0].Tpl.Name)
	assert.Equal(t, "W1", units[1].Tpl.Name)
	assert.Equal(t, "W3", units[2].Tpl.Name)
}

func TestOptimize_KerfSpacingWithinStrip(t *testing.T) {
	opt := New(testSpec())
	result, err := opt.Optimize([]model.Part{part("Shelf", 800, 300, 3)})
	require.NoError(t, err)

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Strips, 1)
	strip := result.Sheets[0].Strips[0]
	require.Len(t, strip.Parts, 3)

	assert.Equal(t, 0.0, strip.Parts[0].X, "no kerf before the first part")
	assert.Equal(t, 803.0, strip.Parts[1].X)
	assert.Equal(t, 1606.0, strip.Parts[2].X)
	assert.InDelta(t, 2406.0, strip.UsedLength(3), 1e-9)
}

func TestOptimize_StripStackingLeavesKerfGap(t *testing.T) {
	opt := New(testSpec())
	result, err := opt.Optimize([]model.Part{part("Panel", 2000, 600, 3)})
	require.NoError(t, err)

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Strips, 3)
	strips := result.Sheets[0].Strips
	assert.Equal(t, 0.0, strips[0].Y)
	assert.Equal(t, 603.0, strips[1].Y)
	assert.Equal(t, 1206.0, strips[2].Y)

	// Strip heights plus inter-strip kerf gaps stay within the sheet width.
	total := 0.0
	for i, s := range strips {
		total += s.Height
		if i > 0 {
			total += 3
		}
	}
	assert.LessOrEqual(t, total, 1840.0)
}

func TestOptimize_UsesRotationToRecoverStuckPool(t *testing.T) {
	// Too wide to start a strip upright once y advances, but fits rotated.
	opt := New(model.SheetSpec{Length: 2750, Width: 1000, Kerf: 3, Grain: model.GrainNone})
	result, err := opt.Optimize([]model.Part{part("Tall", 900, 1200, 1)})
	require.NoError(t, err)

	require.Len(t, result.Sheets, 1)
	placed := result.Sheets[0].PlacedParts()
	require.Len(t, placed, 1)
	assert.True(t, placed[0].Rotated)
	assert.Equal(t, 1200.0, placed[0].PlacedLength())
	assert.Equal(t, 900.0, placed[0].PlacedWidth())
}

func TestOptimize_EmptyInput(t *testing.T) {
	result, err := New(testSpec()).Optimize(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Sheets)
	assert.Empty(t, result.Rejected)
}

func TestGroupUnits_CollapsesByTemplate(t *testing.T) {
	a := part("A", 3000, 2000, 3)
	b := part("B", 4000, 2500, 1)
	units := Expand([]model.Part{a, b})

	grouped := groupUnits(units)
	require.Len(t, grouped, 2)
	assert.Equal(t, "A", grouped[0].Name)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.Equal(t, "B", grouped[1].Name)
	assert.Equal(t, 1, grouped[1].Quantity)
}

func TestOptimize_TotalUtilizationMatchesManualSum(t *testing.T) {
	opt := New(testSpec())
	result, err := opt.Optimize([]model.Part{part("A", 1000, 500, 6)})
	require.NoError(t, err)

	var used, total float64
	for _, s := range result.Sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	assert.InDelta(t, used/total*100, result.TotalUtilization(), 1e-9)
	assert.False(t, math.IsNaN(result.TotalUtilization()))
}
