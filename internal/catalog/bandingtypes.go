package catalog

import (
	"fmt"

	"github.com/cortesys/cutplan/internal/model"
)

const bandingTypesFile = "banding_types.json"

// BandingTypes loads the banding catalog, seeding defaults on first use.
func (s *Store) BandingTypes() ([]model.BandingType, error) {
	var types []model.BandingType
	if err := s.readJSON(bandingTypesFile, &types); err != nil {
		if isNotExist(err) {
			types = model.DefaultBandingTypes()
			if err := s.writeJSON(bandingTypesFile, types); err != nil {
				return nil, err
			}
			return types, nil
		}
		return nil, err
	}
	return types, nil
}

// ActiveBandingTypes returns the banding types still offered for new projects.
func (s *Store) ActiveBandingTypes() ([]model.BandingType, error) {
	types, err := s.BandingTypes()
	if err != nil {
		return nil, err
	}
	out := types[:0]
	for _, t := range types {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

// AddBandingType appends a banding type to the catalog.
func (s *Store) AddBandingType(bt model.BandingType) error {
	types, err := s.BandingTypes()
	if err != nil {
		return err
	}
	return s.writeJSON(bandingTypesFile, append(types, bt))
}

// UpdateBandingType replaces the entry with the same ID.
func (s *Store) UpdateBandingType(bt model.BandingType) error {
	types, err := s.BandingTypes()
	if err != nil {
		return err
	}
	for i := range types {
		if types[i].ID == bt.ID {
			types[i] = bt
			return s.writeJSON(bandingTypesFile, types)
		}
	}
	return fmt.Errorf("banding type %s: %w", bt.ID, ErrNotFound)
}

// DeactivateBandingType soft-deletes a banding type.
func (s *Store) DeactivateBandingType(id string) error {
	types, err := s.BandingTypes()
	if err != nil {
		return err
	}
	for i := range types {
		if types[i].ID == id {
			types[i].Active = false
			return s.writeJSON(bandingTypesFile, types)
		}
	}
	return fmt.Errorf("banding type %s: %w", id, ErrNotFound)
}
