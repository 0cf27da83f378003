package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cortesys/cutplan/internal/engine"
)

// WriteXLSX writes the project result as an Excel workbook with three
// sheets: the placement list, the material summary and the banding
// purchases.
func WriteXLSX(path string, result *engine.ProjectResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writePlacementsSheet(f, result); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result); err != nil {
		return err
	}
	if err := writeBandingSheet(f, result); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writePlacementsSheet(f *excelize.File, result *engine.ProjectResult) error {
	const name = "Placements"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	headers := []any{"Material", "Sheet", "Part", "Length (mm)", "Width (mm)", "X (mm)", "Y (mm)", "Rotated", "Banded Edges"}
	if err := setRow(f, name, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, part := range result.Partitions {
		for _, sheet := range part.Result.Sheets {
			for _, p := range sheet.PlacedParts() {
				values := []any{
					part.SheetType.Name,
					sheet.Number,
					p.Unit.Tpl.Name,
					p.Unit.Length(),
					p.Unit.Width(),
					p.X,
					p.Y,
					p.Rotated,
					p.Unit.Tpl.BandedEdges(),
				}
				if err := setRow(f, name, row, values); err != nil {
					return err
				}
				row++
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, result *engine.ProjectResult) error {
	const name = "Summary"
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	headers := []any{"Material", "Sheets", "Parts Placed", "Parts Rejected", "Utilization %", "Sheet Cost", "Banding Cost", "Total Cost"}
	if err := setRow(f, name, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, part := range result.Partitions {
		values := []any{
			part.SheetType.Name,
			part.Costs.SheetCount,
			part.Costs.PlacedUnits,
			part.Costs.RejectedUnit,
			part.Costs.Utilization,
			part.Costs.SheetCost,
			part.Costs.BandingCost,
			part.Costs.TotalCost,
		}
		if err := setRow(f, name, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := []any{"TOTAL", result.TotalSheets, result.PlacedCount(), result.RejectedCount(), "", result.SheetCost, result.BandingCost, result.TotalCost}
	return setRow(f, name, row, totals)
}

func writeBandingSheet(f *excelize.File, result *engine.ProjectResult) error {
	const name = "Banding"
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	headers := []any{"Material", "Banding", "Length (m)", "Rolls", "Cost"}
	if err := setRow(f, name, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, part := range result.Partitions {
		for _, u := range part.Banding {
			values := []any{part.SheetType.Name, u.BandingName, u.TotalLengthM, u.Rolls, u.Cost}
			if err := setRow(f, name, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

// setRow writes one row of cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
