// Package export renders nesting results to external formats: the
// consolidated PDF report, per-tag PDF archives, QR-coded cut labels and
// DXF layout drawings.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BarNest/internal/engine"
	"github.com/piwi3910/BarNest/internal/model"
)

// cutColor represents an RGB color for a placed cut.
type cutColor struct {
	R, G, B int
}

var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 10.0
	marginRight  = 10.0
	marginTop    = 10.0
	marginBottom = 10.0
	contentWidth = pageWidth - marginLeft - marginRight
	barRowHeight = 9.0
	barRectH     = 5.0
)

// ExportPDF writes the consolidated nesting report: a project header, one
// section per tag with the requirement table, summary lines and a drawn
// bar layout, then a closing summary page.
func ExportPDF(path string, project model.Project) error {
	pdf, err := buildConsolidatedPDF(project)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF renders the consolidated report to a writer instead of a file.
func WritePDF(w io.Writer, project model.Project) error {
	pdf, err := buildConsolidatedPDF(project)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// WriteTagPDF renders a single-tag report to a writer, used for the
// per-tag ZIP archive.
func WriteTagPDF(w io.Writer, project model.Project, tag string) error {
	if project.Plan == nil {
		return fmt.Errorf("project has no nesting plan")
	}
	pdf := newReportPDF()
	pdf.AddPage()
	buildProjectHeader(pdf, project.Meta)
	renderTagSection(pdf, project, tag)
	return pdf.Output(w)
}

func newReportPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	return pdf
}

func buildConsolidatedPDF(project model.Project) (*fpdf.Fpdf, error) {
	if project.Plan == nil {
		return nil, fmt.Errorf("project has no nesting plan")
	}

	pdf := newReportPDF()
	pdf.AddPage()
	buildProjectHeader(pdf, project.Meta)

	for i, tag := range PlanTags(project) {
		if i > 0 {
			pdf.AddPage()
		}
		renderTagSection(pdf, project, tag)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, project)

	return pdf, nil
}

// PlanTags returns the tags appearing in the project's plan or unmet list,
// sorted lexically.
func PlanTags(project model.Project) []string {
	seen := make(map[string]bool)
	if project.Plan != nil {
		for _, bar := range project.Plan.Bars {
			for _, p := range bar.Placements {
				seen[p.Item.Tag] = true
			}
		}
		for _, u := range project.Plan.Unmet {
			seen[u.Item.Tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// buildProjectHeader draws the two-column job details block.
func buildProjectHeader(pdf *fpdf.Fpdf, meta model.ProjectMeta) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, meta.Name, "", 1, "L", false, 0, "")

	left := []struct{ label, value string }{
		{"Location", meta.Location},
		{"Person Cutting", meta.PersonCutting},
		{"Supplier", meta.Supplier},
		{"Order Number", meta.OrderNumber},
	}
	right := []struct{ label, value string }{
		{"Drawing Number", meta.DrawingNumber},
		{"Revision", meta.Revision},
		{"Material", meta.Material},
		{"Date", meta.Date},
	}

	y0 := pdf.GetY()
	y := y0
	for _, row := range left {
		pdf.SetXY(marginLeft, y)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, row.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(60, 6, row.value, "", 0, "L", false, 0, "")
		y += 6
	}
	y = y0
	for _, row := range right {
		pdf.SetXY(110, y)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, row.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(50, 6, row.value, "", 0, "L", false, 0, "")
		y += 6
	}

	pdf.SetY(y + 2)
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.3)
	pdf.Line(marginLeft, pdf.GetY(), pageWidth-marginRight, pdf.GetY())
	pdf.Ln(4)
}

// truncateRunes shortens s to at most max runes, never splitting a
// multi-byte character.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// tagBars returns the plan bars that carry at least one cut of the tag.
func tagBars(plan *model.NestingPlan, tag string) []model.BarAllocation {
	var bars []model.BarAllocation
	for _, bar := range plan.Bars {
		for _, p := range bar.Placements {
			if p.Item.Tag == tag {
				bars = append(bars, bar)
				break
			}
		}
	}
	return bars
}

// renderTagSection draws one tag's requirement table, summary and layout.
func renderTagSection(pdf *fpdf.Fpdf, project model.Project, tag string) {
	plan := project.Plan
	bars := tagBars(plan, tag)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, 8, "Tag: "+tag, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 6,
		fmt.Sprintf("Material: %s    Kerf: %.1f mm", project.Meta.Material, project.Settings.Kerf),
		"", 1, "L", false, 0, "")
	pdf.Ln(1)

	// Requirement table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 7, "Section", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Length (mm)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Cost/m", "1", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Note", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range project.Requirements {
		if r.Tag != tag {
			continue
		}
		note := truncateRunes(r.Note, 30)
		pdf.CellFormat(45, 7, r.Section, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.0f", r.Length), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", r.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", r.CostPerMeter), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, note, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Per-tag summary lines
	stat := tagStat(project, tag)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 6, "Per-Tag Summary:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("- Cuts placed: %d", stat.CutsPlaced),
		fmt.Sprintf("- Total cut length: %.0f mm", stat.ProductLength),
		fmt.Sprintf("- Bars used: %d", stat.BarsUsed),
		fmt.Sprintf("- Meters ordered: %.3f m", stat.MetersOrdered),
		fmt.Sprintf("- Utilization: %.1f%%", stat.Utilization),
	}
	if stat.CostPerMeter > 0 {
		lines = append(lines,
			fmt.Sprintf("- Cost per meter: %.2f", stat.CostPerMeter),
			fmt.Sprintf("- Total cost: %.2f", stat.TotalCost))
	}
	if stat.UnmetCount > 0 {
		lines = append(lines,
			fmt.Sprintf("- UNMET: %d cuts (%.0f mm)", stat.UnmetCount, stat.UnmetLength))
	}
	for _, line := range lines {
		pdf.CellFormat(contentWidth, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Bar layout diagram
	if len(bars) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth, 6, "Cut Layout:", "", 1, "L", false, 0, "")
		drawBarDiagram(pdf, bars)
	}
}

// tagStat recomputes the summary stat for one tag. Stored stats are used
// when present so the report matches what the caller saw.
func tagStat(project model.Project, tag string) model.SummaryStat {
	stats := project.Stats
	if len(stats) == 0 && project.Plan != nil {
		stats, _ = engine.Summarize(*project.Plan, project.Requirements)
	}
	for _, s := range stats {
		if s.Tag == tag {
			return s
		}
	}
	return model.SummaryStat{Tag: tag}
}

// drawBarDiagram renders one horizontal strip per bar: the bar outline,
// a colored rectangle per cut with its length label, and the leftover
// annotated at the right edge.
func drawBarDiagram(pdf *fpdf.Fpdf, bars []model.BarAllocation) {
	maxLen := 0.0
	for _, b := range bars {
		if b.Length > maxLen {
			maxLen = b.Length
		}
	}
	if maxLen == 0 {
		return
	}
	scale := contentWidth / maxLen

	for _, bar := range bars {
		if pdf.GetY()+barRowHeight > pageHeight-marginBottom {
			pdf.AddPage()
		}
		y := pdf.GetY()
		barW := bar.Length * scale

		// Bar outline
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetFillColor(235, 235, 235)
		pdf.SetLineWidth(0.3)
		pdf.Rect(marginLeft, y, barW, barRectH, "FD")

		// Cuts
		for i, p := range bar.Placements {
			col := cutColors[i%len(cutColors)]
			cx := marginLeft + p.Offset*scale
			cw := p.Item.Length * scale

			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.2)
			pdf.Rect(cx, y, cw, barRectH, "FD")

			label := fmt.Sprintf("%.0f", p.Item.Length)
			pdf.SetFont("Helvetica", "", 6)
			if pdf.GetStringWidth(label) < cw-1 {
				pdf.SetTextColor(0, 0, 0)
				pdf.SetXY(cx, y+1)
				pdf.CellFormat(cw, 3, label, "", 0, "C", false, 0, "")
			}
		}

		// Waste annotation
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(120, 120, 120)
		note := fmt.Sprintf("%.0f mm bar, waste %.0f mm", bar.Length, bar.Leftover)
		if bar.StockLabel != "" {
			note = bar.StockLabel + ": " + note
		}
		pdf.SetXY(marginLeft, y+barRectH)
		pdf.CellFormat(contentWidth, 3.5, note, "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetY(y + barRowHeight)
	}
	pdf.Ln(2)
}

// renderSummaryPage draws the final page with the per-tag table and the
// unmet demand warning block.
func renderSummaryPage(pdf *fpdf.Fpdf, project model.Project) {
	plan := project.Plan
	stats := project.Stats
	var overall model.SummaryStat
	if len(stats) == 0 {
		stats, overall = engine.Summarize(*plan, project.Requirements)
	} else {
		_, overall = engine.Summarize(*plan, project.Requirements)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Nesting Summary", "", 1, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, pdf.GetY()+1, pageWidth-marginRight, pdf.GetY()+1)
	pdf.Ln(5)

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Bars Used", fmt.Sprintf("%d", overall.BarsUsed)},
		{"Total Cuts Placed", fmt.Sprintf("%d", overall.CutsPlaced)},
		{"Overall Utilization", fmt.Sprintf("%.1f%%", overall.Utilization)},
		{"Total Waste", fmt.Sprintf("%.0f mm", overall.Waste)},
		{"Kerf Loss", fmt.Sprintf("%.0f mm", overall.KerfLoss)},
		{"Meters Ordered", fmt.Sprintf("%.3f m", overall.MetersOrdered)},
		{"Unmet Cuts", fmt.Sprintf("%d", overall.UnmetCount)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetX(marginLeft + 5)
		pdf.CellFormat(55, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.Ln(4)

	// Per-tag table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 7, "Per-Tag Breakdown", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	colWidths := []float64{35, 18, 18, 30, 25, 25, 20, 19}
	headers := []string{"Tag", "Bars", "Cuts", "Cut Len (mm)", "Meters", "Util %", "Cost/m", "Unmet"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, s := range stats {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			s.Tag,
			fmt.Sprintf("%d", s.BarsUsed),
			fmt.Sprintf("%d", s.CutsPlaced),
			fmt.Sprintf("%.0f", s.ProductLength),
			fmt.Sprintf("%.3f", s.MetersOrdered),
			fmt.Sprintf("%.1f", s.Utilization),
			fmt.Sprintf("%.2f", s.CostPerMeter),
			fmt.Sprintf("%d", s.UnmetCount),
		}
		for j, cell := range row {
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(plan.Unmet) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(contentWidth, 7, "WARNING: Unmet Demand", "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, u := range plan.Unmet {
			pdf.SetX(marginLeft + 5)
			text := fmt.Sprintf("- %s: %.0f mm (%s)", u.Item.Tag, u.Item.Length, u.Reason)
			pdf.CellFormat(contentWidth-5, 5, text, "", 1, "L", false, 0, "")
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom-4)
	pdf.CellFormat(contentWidth, 4, "Generated by BarNest - Steel Bar Nesting Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
