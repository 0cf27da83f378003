package engine

import (
	"math"

	"github.com/cortesys/cutplan/internal/model"
)

// HeightTolerance is how far a part's width may deviate from the strip
// height and still join the strip's band, in mm.
const HeightTolerance = 5.0

// buildStrip greedily fills one strip at vertical offset y. It tries the
// normal orientation first; if that places nothing and the grain mode allows
// it, the same two passes run with length and width swapped for every part
// that is not grain locked. The returned pool is the shrunken remainder.
// ok is false when no part could be placed at all, which is the sheet
// builder's termination signal: an empty strip is never returned as placed.
func (o *Optimizer) buildStrip(y float64, pool []model.UnitPart) (model.Strip, []model.UnitPart, bool) {
	strip, rest := o.fillStrip(y, pool, false)
	if len(strip.Parts) == 0 && o.Spec.Grain.AllowsRotation() {
		strip, rest = o.fillStrip(y, pool, true)
	}
	if len(strip.Parts) == 0 {
		return model.Strip{}, pool, false
	}
	return strip, rest, true
}

// fillStrip runs the defining pass and the gap-fill pass in one orientation.
//
// Defining pass: scan the pool in order, skipping parts too wide for the
// remaining sheet width. The first accepted part fixes the strip height;
// later parts join only if their width matches the height within
// HeightTolerance and they fit before the right sheet edge. The cursor
// advances by part length plus one kerf gap.
//
// Gap-fill pass: with the height fixed, rescan for parts that fit strictly
// inside the remaining length and under the strip height. No tolerance here;
// the part must sit fully inside the band.
func (o *Optimizer) fillStrip(y float64, pool []model.UnitPart, rotated bool) (model.Strip, []model.UnitPart) {
	spec := o.Spec
	strip := model.Strip{Y: y}
	rest := append([]model.UnitPart(nil), pool...)

	x := 0.0
	place := func(u model.UnitPart, length float64) {
		strip.Parts = append(strip.Parts, model.PlacedPart{
			Unit:    u,
			X:       x,
			Y:       y,
			Rotated: rotated,
		})
		x += length + spec.Kerf
	}

	i := 0
	for i < len(rest) {
		u := rest[i]
		if rotated && u.GrainLocked() {
			i++
			continue
		}
		length, width := u.Length(), u.Width()
		if rotated {
			length, width = width, length
		}
		if y+width > spec.Width {
			i++
			continue
		}
		height := strip.Height
		if height == 0 {
			height = width
		}
		if math.Abs(width-height) <= HeightTolerance && x+length <= spec.Length {
			strip.Height = height
			place(u, length)
			rest = append(rest[:i], rest[i+1:]...)
			continue
		}
		i++
	}

	if strip.Height > 0 {
		i = 0
		for i < len(rest) {
			u := rest[i]
			if rotated && u.GrainLocked() {
				i++
				continue
			}
			length, width := u.Length(), u.Width()
			if rotated {
				length, width = width, length
			}
			if length <= spec.Length-x && width <= strip.Height {
				place(u, length)
				rest = append(rest[:i], rest[i+1:]...)
				continue
			}
			i++
		}
	}

	return strip, rest
}
