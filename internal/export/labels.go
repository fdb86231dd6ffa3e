package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BarNest/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	Tag      string  `json:"tag"`
	Section  string  `json:"section,omitempty"`
	Length   float64 `json:"length_mm"`
	BarIndex int     `json:"bar"`
	BarLabel string  `json:"bar_label,omitempty"`
	Offset   float64 `json:"offset_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per page). Each label cell is approximately 66.7mm x 25.4mm on
// US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for every placed cut.
// Each label shows the tag, cut length and source bar, with the metadata
// encoded as JSON in the QR code for shop-floor scanning.
func ExportLabels(path string, plan model.NestingPlan) error {
	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no cuts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Tag, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d_%d", info.Tag, info.BarIndex, int(info.Offset*1000))
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Tag (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	tag := fitText(pdf, info.Tag, textW)
	pdf.CellFormat(textW, 4.5, tag, "", 1, "L", false, 0, "")

	// Cut length
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.0f mm", info.Length), "", 1, "L", false, 0, "")

	// Bar and position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	barInfo := fmt.Sprintf("Bar %d @ %.0f mm", info.BarIndex, info.Offset)
	pdf.CellFormat(textW, 3, barInfo, "", 1, "L", false, 0, "")

	if info.Section != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(textW, 3, info.Section, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// fitText shortens s with a trailing ellipsis until it fits the given
// width, trimming whole runes so multi-byte characters stay intact.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// CollectLabelInfos extracts label information from a nesting plan for use
// in testing or alternative export formats.
func CollectLabelInfos(plan model.NestingPlan) []LabelInfo {
	var labels []LabelInfo
	for barIdx, bar := range plan.Bars {
		for _, p := range bar.Placements {
			labels = append(labels, LabelInfo{
				Tag:      p.Item.Tag,
				Section:  p.Item.Section,
				Length:   p.Item.Length,
				BarIndex: barIdx + 1,
				BarLabel: bar.StockLabel,
				Offset:   p.Offset,
			})
		}
	}
	return labels
}
