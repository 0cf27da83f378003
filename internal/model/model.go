// Package model defines the value types shared by the cut optimization
// engine, the catalogs, and the exporters. All dimensions are millimeters.
package model

// GrainMode is the sheet-level grain orientation. Any mode other than
// GrainNone forbids rotating parts during packing, because a 90 degree turn
// would put the part's visible grain across the sheet's.
type GrainMode int

const (
	GrainNone       GrainMode = iota // no grain, parts may rotate
	GrainLengthwise                  // grain runs along the sheet length
	GrainWidthwise                   // grain runs along the sheet width
)

func (g GrainMode) String() string {
	switch g {
	case GrainLengthwise:
		return "lengthwise"
	case GrainWidthwise:
		return "widthwise"
	default:
		return "none"
	}
}

// AllowsRotation reports whether the mode permits 90 degree part rotation.
func (g GrainMode) AllowsRotation() bool {
	return g == GrainNone
}

// ParseGrainMode converts a config/CLI string into a GrainMode.
// Unrecognized values fall back to GrainNone.
func ParseGrainMode(s string) GrainMode {
	switch s {
	case "lengthwise", "length":
		return GrainLengthwise
	case "widthwise", "width":
		return GrainWidthwise
	default:
		return GrainNone
	}
}

// Part is a quantity-bearing cut-list entry. The four banding flags mark
// which physical edges receive edge banding: the two length edges (A/B) and
// the two width edges (A/B).
type Part struct {
	Name     string  `json:"name"`
	Length   float64 `json:"length"` // mm
	Width    float64 `json:"width"`  // mm
	Quantity int     `json:"quantity"`

	BandLengthA bool `json:"band_length_a"`
	BandLengthB bool `json:"band_length_b"`
	BandWidthA  bool `json:"band_width_a"`
	BandWidthB  bool `json:"band_width_b"`

	// GrainLock forbids rotating this part regardless of the sheet grain mode.
	GrainLock bool `json:"grain_lock"`

	// Catalog references. Opaque to the packing engine; the aggregator uses
	// SheetTypeID as the partition key and BandingTypeID for roll pricing.
	SheetTypeID   string `json:"sheet_type_id,omitempty"`
	BandingTypeID string `json:"banding_type_id,omitempty"`
}

// Area returns the part area in square mm.
func (p Part) Area() float64 {
	return p.Length * p.Width
}

// HasBanding reports whether any edge of the part receives banding.
func (p Part) HasBanding() bool {
	return p.BandLengthA || p.BandLengthB || p.BandWidthA || p.BandWidthB
}

// BandedEdges returns the number of edges flagged for banding.
func (p Part) BandedEdges() int {
	n := 0
	for _, f := range []bool{p.BandLengthA, p.BandLengthB, p.BandWidthA, p.BandWidthB} {
		if f {
			n++
		}
	}
	return n
}

// BandingLength returns the banding length in mm required by one unit of
// this part: the corresponding dimension once per flagged edge.
func (p Part) BandingLength() float64 {
	var total float64
	if p.BandLengthA {
		total += p.Length
	}
	if p.BandLengthB {
		total += p.Length
	}
	if p.BandWidthA {
		total += p.Width
	}
	if p.BandWidthB {
		total += p.Width
	}
	return total
}

// UnitPart is a single unit of a Part after quantity expansion. It references
// the immutable template instead of duplicating it; Index distinguishes the
// units of one template.
type UnitPart struct {
	Tpl   *Part `json:"part"`
	Index int   `json:"index"`
}

// Length returns the unrotated length of the unit.
func (u UnitPart) Length() float64 { return u.Tpl.Length }

// Width returns the unrotated width of the unit.
func (u UnitPart) Width() float64 { return u.Tpl.Width }

// GrainLocked reports whether this unit may never be rotated.
func (u UnitPart) GrainLocked() bool { return u.Tpl.GrainLock }

// PlacedPart is a unit bound to a position on a sheet. X runs along the
// sheet length, Y along the sheet width.
type PlacedPart struct {
	Unit    UnitPart `json:"unit"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Rotated bool     `json:"rotated"`
}

// PlacedLength returns the extent along the sheet length, considering rotation.
func (p PlacedPart) PlacedLength() float64 {
	if p.Rotated {
		return p.Unit.Width()
	}
	return p.Unit.Length()
}

// PlacedWidth returns the extent along the sheet width, considering rotation.
func (p PlacedPart) PlacedWidth() float64 {
	if p.Rotated {
		return p.Unit.Length()
	}
	return p.Unit.Width()
}

// Strip is one horizontal band of a sheet. Parts are packed left to right
// with one kerf gap between neighbors, never before the first. Height is
// fixed by the strip's defining part.
type Strip struct {
	Y      float64      `json:"y"`
	Height float64      `json:"height"`
	Parts  []PlacedPart `json:"parts"`
}

// UsedLength returns the horizontal extent consumed by the strip's parts,
// including the kerf gaps between them.
func (s Strip) UsedLength(kerf float64) float64 {
	if len(s.Parts) == 0 {
		return 0
	}
	var total float64
	for _, p := range s.Parts {
		total += p.PlacedLength()
	}
	return total + kerf*float64(len(s.Parts)-1)
}

// MaxWidth returns the vertical extent the strip actually occupies. Band
// members may be slightly wider than the defining height, so stacking must
// clear the widest placed part, not Height.
func (s Strip) MaxWidth() float64 {
	w := s.Height
	for _, p := range s.Parts {
		if pw := p.PlacedWidth(); pw > w {
			w = pw
		}
	}
	return w
}

// SheetSpec describes the sheet geometry and packing constraints for one
// optimization run.
type SheetSpec struct {
	Length    float64   `json:"length"`    // mm
	Width     float64   `json:"width"`     // mm
	Thickness float64   `json:"thickness"` // mm
	Kerf      float64   `json:"kerf"`      // blade clearance between cuts, mm
	Grain     GrainMode `json:"grain"`
}

// Sheet is one stock sheet with its packed strips, stacked in Y and
// separated by one kerf gap each.
type Sheet struct {
	Number    int     `json:"number"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Thickness float64 `json:"thickness"`
	Kerf      float64 `json:"kerf"`
	Strips    []Strip `json:"strips"`
}

// PlacedParts returns all parts on the sheet in strip order.
func (s Sheet) PlacedParts() []PlacedPart {
	var parts []PlacedPart
	for _, st := range s.Strips {
		parts = append(parts, st.Parts...)
	}
	return parts
}

// PartCount returns the number of parts placed on the sheet.
func (s Sheet) PartCount() int {
	n := 0
	for _, st := range s.Strips {
		n += len(st.Parts)
	}
	return n
}

// CutResult is the outcome of packing one part pool onto successive sheets.
// Rejected holds parts that fit the sheet in no permitted orientation; their
// Quantity is the number of rejected units.
type CutResult struct {
	Spec     SheetSpec `json:"spec"`
	Sheets   []Sheet   `json:"sheets"`
	Rejected []Part    `json:"rejected,omitempty"`
}

// PlacedCount returns the total number of placed units across all sheets.
func (r CutResult) PlacedCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += s.PartCount()
	}
	return n
}

// RejectedCount returns the total number of rejected units.
func (r CutResult) RejectedCount() int {
	n := 0
	for _, p := range r.Rejected {
		n += p.Quantity
	}
	return n
}
