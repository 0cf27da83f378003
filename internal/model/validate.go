package model

import (
	"errors"
	"fmt"
)

// Validation sentinels. Callers match them with errors.Is.
var (
	ErrInvalidDimension  = errors.New("dimension must be positive")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidKerf       = errors.New("kerf must not be negative")
	ErrMissingSheetType  = errors.New("part references unknown sheet type")
	ErrMissingBandingTyp = errors.New("part references unknown banding type")
)

// Validate rejects a degenerate sheet spec before any packing is attempted.
func (s SheetSpec) Validate() error {
	if s.Length <= 0 {
		return fmt.Errorf("sheet length %.2f: %w", s.Length, ErrInvalidDimension)
	}
	if s.Width <= 0 {
		return fmt.Errorf("sheet width %.2f: %w", s.Width, ErrInvalidDimension)
	}
	if s.Thickness < 0 {
		return fmt.Errorf("sheet thickness %.2f: %w", s.Thickness, ErrInvalidDimension)
	}
	if s.Kerf < 0 {
		return fmt.Errorf("kerf %.2f: %w", s.Kerf, ErrInvalidKerf)
	}
	return nil
}

// ValidateParts checks every cut-list entry. Invalid input is rejected at
// the boundary, never coerced.
func ValidateParts(parts []Part) error {
	for i, p := range parts {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if p.Length <= 0 {
			return fmt.Errorf("part %s length %.2f: %w", name, p.Length, ErrInvalidDimension)
		}
		if p.Width <= 0 {
			return fmt.Errorf("part %s width %.2f: %w", name, p.Width, ErrInvalidDimension)
		}
		if p.Quantity < 1 {
			return fmt.Errorf("part %s quantity %d: %w", name, p.Quantity, ErrInvalidQuantity)
		}
	}
	return nil
}
