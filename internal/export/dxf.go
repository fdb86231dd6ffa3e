package export

import (
	"fmt"

	"github.com/piwi3910/BarNest/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// Vertical spacing between bar strips in the DXF drawing (mm).
const dxfBarPitch = 100.0

// Drawn height of each bar strip (mm).
const dxfBarHeight = 50.0

// ExportDXF writes the nesting plan as a DXF drawing for CAD handoff.
// Bars are stacked top to bottom at true scale: each bar is a rectangle on
// the STOCK layer, cut boundaries are vertical lines on the CUTS layer,
// and lengths are annotated on the LABELS layer.
func ExportDXF(path string, plan model.NestingPlan) error {
	if len(plan.Bars) == 0 {
		return fmt.Errorf("no bars to export")
	}

	d := dxf.NewDrawing()

	d.AddLayer("STOCK", dxf.DefaultColor, dxf.DefaultLineType, true)
	for i, bar := range plan.Bars {
		top := -float64(i) * dxfBarPitch
		bottom := top - dxfBarHeight

		d.Line(0, top, 0, bar.Length, top, 0)
		d.Line(0, bottom, 0, bar.Length, bottom, 0)
		d.Line(0, top, 0, 0, bottom, 0)
		d.Line(bar.Length, top, 0, bar.Length, bottom, 0)
	}

	d.AddLayer("CUTS", color.Red, dxf.DefaultLineType, true)
	for i, bar := range plan.Bars {
		top := -float64(i) * dxfBarPitch
		bottom := top - dxfBarHeight

		for _, p := range bar.Placements {
			end := p.Offset + p.Item.Length
			if p.Offset > 0 {
				d.Line(p.Offset, top, 0, p.Offset, bottom, 0)
			}
			if end < bar.Length {
				d.Line(end, top, 0, end, bottom, 0)
			}
		}
	}

	d.AddLayer("LABELS", dxf.DefaultColor, dxf.DefaultLineType, true)
	for i, bar := range plan.Bars {
		top := -float64(i) * dxfBarPitch
		textY := top - dxfBarHeight/2

		for _, p := range bar.Placements {
			label := fmt.Sprintf("%s %.0f", p.Item.Tag, p.Item.Length)
			d.Text(label, p.Offset+p.Item.Length/2, textY, 0, dxfBarHeight*0.3)
		}
		d.Text(fmt.Sprintf("BAR %d  %.0f mm  WASTE %.0f mm", i+1, bar.Length, bar.Leftover),
			0, top+dxfBarHeight*0.3, 0, dxfBarHeight*0.3)
	}

	return d.SaveAs(path)
}
