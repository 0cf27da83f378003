package catalog

import "github.com/cortesys/cutplan/internal/model"

// View is an immutable snapshot of the two material catalogs, loaded once so
// the optimizer's lookups never touch the filesystem mid-run. It satisfies
// the engine's Catalog interface.
type View struct {
	sheetTypes   map[string]model.SheetType
	bandingTypes map[string]model.BandingType
}

// CatalogView loads both catalogs into a lookup snapshot.
func (s *Store) CatalogView() (*View, error) {
	sheets, err := s.SheetTypes()
	if err != nil {
		return nil, err
	}
	bandings, err := s.BandingTypes()
	if err != nil {
		return nil, err
	}
	return NewView(sheets, bandings), nil
}

// NewView builds a snapshot from explicit catalog slices.
func NewView(sheets []model.SheetType, bandings []model.BandingType) *View {
	v := &View{
		sheetTypes:   make(map[string]model.SheetType, len(sheets)),
		bandingTypes: make(map[string]model.BandingType, len(bandings)),
	}
	for _, st := range sheets {
		v.sheetTypes[st.ID] = st
	}
	for _, bt := range bandings {
		v.bandingTypes[bt.ID] = bt
	}
	return v
}

// SheetTypeByID returns the sheet type with the given ID.
func (v *View) SheetTypeByID(id string) (model.SheetType, bool) {
	st, ok := v.sheetTypes[id]
	return st, ok
}

// BandingTypeByID returns the banding type with the given ID.
func (v *View) BandingTypeByID(id string) (model.BandingType, bool) {
	bt, ok := v.bandingTypes[id]
	return bt, ok
}
