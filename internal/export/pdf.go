// Package export writes packing results to PDF reports, label sheets and
// spreadsheets.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// spriteColor represents an RGB color for a placed sprite.
type spriteColor struct {
	R, G, B int
}

var spriteColors = []spriteColor{
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
	manifestSize = 45.0

	// maxManifestBins keeps the manifest within QR code capacity.
	maxManifestBins = 64
)

// Manifest is the compact description of a pack result encoded into the
// summary page QR code.
type Manifest struct {
	Title   string           `json:"title"`
	Mode    model.PackMode   `json:"mode"`
	Padding int              `json:"padding"`
	Total   int              `json:"total"` // Bins in the result; Bins may be truncated
	Bins    []ManifestBinRef `json:"bins"`
}

// ManifestBinRef summarises one bin of the manifest.
type ManifestBinRef struct {
	Width   int `json:"w"`
	Height  int `json:"h"`
	Sprites int `json:"n"`
}

// BuildManifest summarises result for the report QR code.
func BuildManifest(title string, result model.PackResult) Manifest {
	m := Manifest{
		Title:   title,
		Mode:    result.Settings.Mode,
		Padding: result.Settings.Padding,
		Total:   len(result.Bins),
		Bins:    make([]ManifestBinRef, 0, min(len(result.Bins), maxManifestBins)),
	}
	for i, b := range result.Bins {
		if i == maxManifestBins {
			break
		}
		m.Bins = append(m.Bins, ManifestBinRef{Width: b.Size.Width, Height: b.Size.Height, Sprites: len(b.Placements)})
	}
	return m
}

// ExportPDF renders each bin on its own page with its layout diagram,
// followed by a summary page with overall statistics and a QR manifest.
func ExportPDF(path, title string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}
	if title == "" {
		title = "AtlasPack"
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, bin := range result.Bins {
		pdf.AddPage()
		renderBinPage(pdf, bin)
	}

	pdf.AddPage()
	if err := renderSummaryPage(pdf, title, result); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws a single bin on the current PDF page.
func renderBinPage(pdf *fpdf.Fpdf, bin model.BinResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d (%d x %d px)", bin.Index+1, bin.Size.Width, bin.Size.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Sprites: %d | Used area: %d px | Free regions: %d | Efficiency: %.1f%%",
		len(bin.Placements), bin.UsedArea(), len(bin.FreeRegions), bin.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(bin.Size.Width), drawHeight/float64(bin.Size.Height))
	canvasW := float64(bin.Size.Width) * scale
	canvasH := float64(bin.Size.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Bin background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, r := range bin.FreeRegions {
		drawHatchPattern(pdf, offsetX+float64(r.X)*scale, offsetY+float64(r.Y)*scale,
			float64(r.Width)*scale, float64(r.Height)*scale)
	}

	for i, p := range bin.Placements {
		col := spriteColors[i%len(spriteColors)]
		r := p.Mapping.MappedRect
		px := offsetX + float64(r.X)*scale
		py := offsetY + float64(r.Y)*scale
		pw := float64(r.Width) * scale
		ph := float64(r.Height) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Sprite.Label
			dims := r.Size().String()
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, bin.Size, offsetX, offsetY, canvasW, canvasH)
	drawSpriteLegend(pdf, bin, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark free space.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the bin rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, size model.Size, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", size.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", size.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawSpriteLegend renders a compact legend of placed sprites below the bin.
func drawSpriteLegend(pdf *fpdf.Fpdf, bin model.BinResult, startY float64) {
	if len(bin.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Sprites placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range bin.Placements {
		col := spriteColors[i%len(spriteColors)]
		label := fmt.Sprintf("%s (%s)", p.Sprite.Label, p.Mapping.InputSize)
		if p.Rotated() {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom {
			break
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws overall statistics, a per-bin table and the QR manifest.
func renderSummaryPage(pdf *fpdf.Fpdf, title string, result model.PackResult) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title+" Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	settings := result.Settings
	summaryItems := []struct {
		label string
		value string
	}{
		{"Bins Used", fmt.Sprintf("%d", len(result.Bins))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Sprites Placed", fmt.Sprintf("%d", result.SpriteCount())},
		{"Mode", string(settings.Mode)},
		{"Max Bin Dimension", fmt.Sprintf("%d px", settings.MaxBinDimension)},
		{"Padding", fmt.Sprintf("%d px", settings.Padding)},
		{"Rotation", fmt.Sprintf("%t", settings.AllowRotation)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if err := drawManifestQR(pdf, title, result); err != nil {
		return err
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 35, 35, 35, 60}
	headers := []string{"Bin", "Dimensions", "Sprites", "Free Regions", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, bin := range result.Bins {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", bin.Index+1),
			fmt.Sprintf("%d x %d px", bin.Size.Width, bin.Size.Height),
			fmt.Sprintf("%d", len(bin.Placements)),
			fmt.Sprintf("%d", len(bin.FreeRegions)),
			fmt.Sprintf("%.1f%%", bin.Efficiency()),
			fmt.Sprintf("%d / %d px", bin.UsedArea(), bin.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by AtlasPack - Texture Atlas Packer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawManifestQR places the JSON manifest as a QR code in the top right corner.
func drawManifestQR(pdf *fpdf.Fpdf, title string, result model.PackResult) error {
	data, err := json.Marshal(BuildManifest(title, result))
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Low, 512)
	if err != nil {
		return fmt.Errorf("failed to generate manifest QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("manifest", opts, bytes.NewReader(png))
	pdf.ImageOptions("manifest", pageWidth-marginRight-manifestSize, marginTop+15,
		manifestSize, manifestSize, false, opts, 0, "")
	return nil
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
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
