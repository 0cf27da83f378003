package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/cortesys/cutplan/internal/engine"
	"github.com/cortesys/cutplan/internal/model"
)

// WriteDXF writes the cut layout as a DXF drawing for CAD or saw-control
// software. Sheets are laid out left to right with a gap between them;
// outlines go on the SHEETS layer, part rectangles on the PARTS layer.
// Coordinates are millimeters, X along the sheet length.
func WriteDXF(path string, result *engine.ProjectResult) error {
	if result.TotalSheets == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("SHEETS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	if _, err := d.AddLayer("PARTS", dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return err
	}

	const sheetGap = 100.0
	offsetX := 0.0
	for _, part := range result.Partitions {
		for _, sheet := range part.Result.Sheets {
			if err := drawSheet(d, sheet, offsetX); err != nil {
				return err
			}
			offsetX += sheet.Length + sheetGap
		}
	}

	return d.SaveAs(path)
}

// drawSheet emits the sheet outline and its part rectangles at offsetX.
func drawSheet(d *drawing.Drawing, sheet model.Sheet, offsetX float64) error {
	if err := d.ChangeLayer("SHEETS"); err != nil {
		return err
	}
	if err := rect(d, offsetX, 0, sheet.Length, sheet.Width); err != nil {
		return err
	}

	if err := d.ChangeLayer("PARTS"); err != nil {
		return err
	}
	for _, p := range sheet.PlacedParts() {
		if err := rect(d, offsetX+p.X, p.Y, p.PlacedLength(), p.PlacedWidth()); err != nil {
			return err
		}
	}
	return nil
}

// rect draws a closed rectangle as a lightweight polyline.
func rect(d *drawing.Drawing, x, y, w, h float64) error {
	_, err := d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
	return err
}
