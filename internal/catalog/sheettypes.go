package catalog

import (
	"fmt"

	"github.com/cortesys/cutplan/internal/model"
)

const sheetTypesFile = "sheet_types.json"

// ErrNotFound is returned when a catalog entry with the given ID does not
// exist in the store.
var ErrNotFound = fmt.Errorf("catalog entry not found")

// SheetTypes loads the sheet-type catalog. A fresh store is seeded with the
// default boards and the seed is written back so later edits start from it.
func (s *Store) SheetTypes() ([]model.SheetType, error) {
	var types []model.SheetType
	if err := s.readJSON(sheetTypesFile, &types); err != nil {
		if isNotExist(err) {
			types = model.DefaultSheetTypes()
			if err := s.writeJSON(sheetTypesFile, types); err != nil {
				return nil, err
			}
			return types, nil
		}
		return nil, err
	}
	return types, nil
}

// ActiveSheetTypes returns the sheet types still offered for new projects.
func (s *Store) ActiveSheetTypes() ([]model.SheetType, error) {
	types, err := s.SheetTypes()
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

// AddSheetType appends a sheet type to the catalog.
func (s *Store) AddSheetType(st model.SheetType) error {
	types, err := s.SheetTypes()
	if err != nil {
		return err
	}
	return s.writeJSON(sheetTypesFile, append(types, st))
}

// UpdateSheetType replaces the entry with the same ID.
func (s *Store) UpdateSheetType(st model.SheetType) error {
	types, err := s.SheetTypes()
	if err != nil {
		return err
	}
	for i := range types {
		if types[i].ID == st.ID {
			types[i] = st
			return s.writeJSON(sheetTypesFile, types)
		}
	}
	return fmt.Errorf("sheet type %s: %w", st.ID, ErrNotFound)
}

// DeactivateSheetType soft-deletes a sheet type. Saved projects keep
// referencing it; it just stops being offered for new cut lists.
func (s *Store) DeactivateSheetType(id string) error {
	types, err := s.SheetTypes()
	if err != nil {
		return err
	}
	for i := range types {
		if types[i].ID == id {
			types[i].Active = false
			return s.writeJSON(sheetTypesFile, types)
		}
	}
	return fmt.Errorf("sheet type %s: %w", id, ErrNotFound)
}
