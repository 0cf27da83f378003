package model

import "sort"

// UsedArea returns the total area covered by placed parts, in square mm.
// Rotation does not change a part's area, so template dimensions are used.
func (s Sheet) UsedArea() float64 {
	var total float64
	for _, st := range s.Strips {
		for _, p := range st.Parts {
			total += p.Unit.Length() * p.Unit.Width()
		}
	}
	return total
}

// TotalArea returns the sheet area in square mm.
func (s Sheet) TotalArea() float64 {
	return s.Length * s.Width
}

// Utilization returns the percentage of the sheet area covered by parts.
// A zero-area sheet is a configuration error caught by SheetSpec.Validate,
// so the division here is unguarded on purpose.
func (s Sheet) Utilization() float64 {
	return s.UsedArea() / s.TotalArea() * 100.0
}

// Waste returns the percentage of the sheet area not covered by parts.
func (s Sheet) Waste() float64 {
	return 100.0 - s.Utilization()
}

// TotalUtilization returns the utilization across all sheets of the result.
func (r CutResult) TotalUtilization() float64 {
	var used, total float64
	for _, s := range r.Sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return used / total * 100.0
}

// Leftover is a usable rectangular remnant of a packed sheet.
type Leftover struct {
	SheetNumber int     `json:"sheet_number"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
}

// Area returns the leftover area in square mm.
func (l Leftover) Area() float64 {
	return l.Length * l.Width
}

// MinLeftoverDimension is the smallest edge (mm) for a remnant to be worth
// keeping. Anything narrower is treated as waste.
const MinLeftoverDimension = 50.0

// Leftovers reports the usable remnants of a packed sheet: the tail of each
// strip past its last part, and the full-length band above the topmost strip.
// Remnants narrower than MinLeftoverDimension on either edge are dropped.
// Results are sorted by area descending.
func (s Sheet) Leftovers() []Leftover {
	var out []Leftover

	var yTop float64
	for _, st := range s.Strips {
		used := st.UsedLength(s.Kerf)
		if len(st.Parts) > 0 {
			used += s.Kerf // trailing cut separating the tail
		}
		tail := s.Length - used
		if tail >= MinLeftoverDimension && st.Height >= MinLeftoverDimension {
			out = append(out, Leftover{
				SheetNumber: s.Number,
				X:           used,
				Y:           st.Y,
				Length:      tail,
				Width:       st.Height,
			})
		}
		if end := st.Y + st.MaxWidth() + s.Kerf; end > yTop {
			yTop = end
		}
	}

	if band := s.Width - yTop; band >= MinLeftoverDimension && s.Length >= MinLeftoverDimension {
		out = append(out, Leftover{
			SheetNumber: s.Number,
			X:           0,
			Y:           yTop,
			Length:      s.Length,
			Width:       band,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Area() > out[j].Area()
	})
	return out
}
