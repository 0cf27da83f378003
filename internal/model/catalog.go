package model

import (
	"time"

	"github.com/google/uuid"
)

// SheetType is a catalog entry for a purchasable sheet material.
type SheetType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Length    float64   `json:"length"` // mm
	Width     float64   `json:"width"`  // mm
	Thickness float64   `json:"thickness"`
	Price     float64   `json:"price"` // per sheet
	Grain     GrainMode `json:"grain"`
	Active    bool      `json:"active"`
}

// NewSheetType creates a sheet type with a generated ID.
func NewSheetType(name string, length, width, thickness, price float64, grain GrainMode) SheetType {
	return SheetType{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    length,
		Width:     width,
		Thickness: thickness,
		Price:     price,
		Grain:     grain,
		Active:    true,
	}
}

// Spec builds the packing spec for this sheet type with the given kerf.
func (st SheetType) Spec(kerf float64) SheetSpec {
	return SheetSpec{
		Length:    st.Length,
		Width:     st.Width,
		Thickness: st.Thickness,
		Kerf:      kerf,
		Grain:     st.Grain,
	}
}

// NewBandingType creates a banding type with a generated ID.
func NewBandingType(name string, widthMM, rollLengthM, pricePerRoll float64) BandingType {
	return BandingType{
		ID:          uuid.New().String()[:8],
		Name:        name,
		WidthMM:     widthMM,
		RollLengthM: rollLengthM,
		PricePerRol: pricePerRoll,
		Active:      true,
	}
}

// Client is a catalog entry for a customer a cut project belongs to.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// NewClient creates a client with a generated ID and creation timestamp.
func NewClient(name string) Client {
	return Client{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// CutProject is a saved cut list with its packing configuration and,
// optionally, the last computed result.
type CutProject struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ClientID  string     `json:"client_id,omitempty"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
	Parts     []Part     `json:"parts"`
	Kerf      float64    `json:"kerf"`
	Grain     GrainMode  `json:"grain"`
	Notes     string     `json:"notes,omitempty"`
	Result    *CutResult `json:"result,omitempty"`
}

// NewCutProject creates an empty project with a generated ID.
func NewCutProject(name string) CutProject {
	now := time.Now().UTC().Format(time.RFC3339)
	return CutProject{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Parts:     []Part{},
		Kerf:      DefaultKerf,
	}
}

// DefaultKerf is the blade clearance assumed when none is configured, mm.
const DefaultKerf = 3.0

// DefaultSheetTypes seeds a fresh catalog with common furniture boards.
func DefaultSheetTypes() []SheetType {
	return []SheetType{
		NewSheetType("MDF 15mm 2750x1850", 2750, 1850, 15, 280, GrainNone),
		NewSheetType("MDF 18mm 2750x1850", 2750, 1850, 18, 320, GrainNone),
		NewSheetType("MDF 25mm 2750x1850", 2750, 1850, 25, 450, GrainNone),
		NewSheetType("Plywood 18mm 2440x1220", 2440, 1220, 18, 260, GrainLengthwise),
	}
}

// DefaultBandingTypes seeds a fresh catalog with common banding rolls.
func DefaultBandingTypes() []BandingType {
	return []BandingType{
		NewBandingType("PVC 19mm White", 19, 50, 25),
		NewBandingType("PVC 22mm White", 22, 50, 30),
		NewBandingType("PVC 35mm White", 35, 50, 45),
	}
}
