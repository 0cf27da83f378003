// Package export renders cut plans to shop-floor formats: PDF cutting
// diagrams, QR part labels, DXF layouts and XLSX workbooks.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/cortesys/cutplan/internal/engine"
	"github.com/cortesys/cutplan/internal/model"
)

type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// WritePDF renders a project result as a PDF: one page per packed sheet with
// a scaled layout diagram, then a summary page with costs and rejects.
func WritePDF(path string, result *engine.ProjectResult) error {
	if result.TotalSheets == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, part := range result.Partitions {
		for _, sheet := range part.Result.Sheets {
			pdf.AddPage()
			renderSheetPage(pdf, sheet, part.SheetType)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws one packed sheet on the current page. The sheet
// length runs horizontally, matching how boards ride through a panel saw.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.Sheet, st model.SheetType) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%.0f x %.0f mm)", sheet.Number, st.Name, sheet.Length, sheet.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %.0f mm2 | Utilization: %.1f%% | Kerf: %.1f mm",
		sheet.PartCount(), sheet.UsedArea(), sheet.Utilization(), sheet.Kerf)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/sheet.Length, drawHeight/sheet.Width)
	canvasW := sheet.Length * scale
	canvasH := sheet.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	placed := sheet.PlacedParts()
	for i, p := range placed {
		col := partColors[i%len(partColors)]
		pw := p.PlacedLength() * scale
		ph := p.PlacedWidth() * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			name := p.Unit.Tpl.Name
			dims := fmt.Sprintf("%.0fx%.0f", p.Unit.Length(), p.Unit.Width())

			nameW := pdf.GetStringWidth(name)
			dimsW := pdf.GetStringWidth(dims)
			if nameW < pw-2 {
				pdf.SetXY(px+(pw-nameW)/2, py+ph/2-4)
				pdf.CellFormat(nameW, 4, name, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet, scale, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, placed, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds sheet dimension labels outside the diagram.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.Sheet, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f mm", sheet.Length)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f mm", sheet.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a color-keyed list of the sheet's parts.
func drawPartsLegend(pdf *fpdf.Fpdf, placed []model.PlacedPart, startY float64) {
	if len(placed) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range placed {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Unit.Tpl.Name, p.Unit.Length(), p.Unit.Width())
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderSummaryPage draws the overall statistics, the per-partition table,
// the banding purchases and any rejected parts.
func renderSummaryPage(pdf *fpdf.Fpdf, result *engine.ProjectResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	items := []struct {
		label string
		value string
	}{
		{"Total Sheets", fmt.Sprintf("%d", result.TotalSheets)},
		{"Parts Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Parts Rejected", fmt.Sprintf("%d", result.RejectedCount())},
		{"Sheet Cost", fmt.Sprintf("%.2f", result.SheetCost)},
		{"Banding Cost", fmt.Sprintf("%.2f", result.BandingCost)},
		{"Total Cost", fmt.Sprintf("%.2f", result.TotalCost)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Material Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{70, 25, 25, 30, 30, 30, 30}
	headers := []string{"Material", "Sheets", "Parts", "Utilization", "Sheet Cost", "Banding", "Total"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, part := range result.Partitions {
		row := []string{
			part.SheetType.Name,
			fmt.Sprintf("%d", part.Costs.SheetCount),
			fmt.Sprintf("%d", part.Costs.PlacedUnits),
			fmt.Sprintf("%.1f%%", part.Costs.Utilization),
			fmt.Sprintf("%.2f", part.Costs.SheetCost),
			fmt.Sprintf("%.2f", part.Costs.BandingCost),
			fmt.Sprintf("%.2f", part.Costs.TotalCost),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y = renderBandingSection(pdf, result, y)
	renderRejectedSection(pdf, result, y)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cutplan", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderBandingSection(pdf *fpdf.Fpdf, result *engine.ProjectResult, y float64) float64 {
	var usages []model.BandingUsage
	for _, part := range result.Partitions {
		usages = append(usages, part.Banding...)
	}
	if len(usages) == 0 {
		return y
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Edge Banding", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 9)
	for _, u := range usages {
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("- %s: %.1f m, %d roll(s), %.2f", u.BandingName, u.TotalLengthM, u.Rolls, u.Cost)
		pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

func renderRejectedSection(pdf *fpdf.Fpdf, result *engine.ProjectResult, y float64) {
	var rejected []model.Part
	for _, part := range result.Partitions {
		rejected = append(rejected, part.Result.Rejected...)
	}
	if len(rejected) == 0 {
		return
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 7, "WARNING: Rejected Parts", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, p := range rejected {
		pdf.SetXY(marginLeft+5, y)
		text := fmt.Sprintf("- %s: %.0f x %.0f mm (qty: %d)", p.Name, p.Length, p.Width, p.Quantity)
		pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
		y += 5
	}
}

func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
