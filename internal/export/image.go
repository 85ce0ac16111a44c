// Package export renders a schedule grid into deliverable blobs. All
// backends consume the same domain.Grid, so image, PDF and spreadsheet
// output agree cell for cell on identical data.
package export

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

const (
	imgTimeColW = 70
	imgColW     = 180
	imgRowH     = 22
	imgHeaderH  = 30
)

// Image renders the grid as a PNG table: a header row of date labels
// and one row per half-hour slot.
func Image(grid domain.Grid) ([]byte, error) {
	w := imgTimeColW + imgColW*len(grid.Dates)
	h := imgHeaderH + imgRowH*len(grid.Slots)

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Header background.
	dc.SetRGB255(242, 242, 242)
	dc.DrawRectangle(0, 0, float64(w), imgHeaderH)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Time", imgTimeColW/2, imgHeaderH/2, 0.5, 0.5)
	for j, d := range grid.Dates {
		x := float64(imgTimeColW + j*imgColW + imgColW/2)
		dc.DrawStringAnchored(domain.HeaderLabel(d), x, imgHeaderH/2, 0.5, 0.5)
	}

	for i, slot := range grid.Slots {
		y := float64(imgHeaderH + i*imgRowH + imgRowH/2)
		dc.DrawStringAnchored(slot, imgTimeColW/2, y, 0.5, 0.5)
		for j := range grid.Dates {
			if c := grid.Cells[i][j]; c != nil {
				x := float64(imgTimeColW + j*imgColW + imgColW/2)
				dc.DrawStringAnchored(cellText(c), x, y, 0.5, 0.5)
			}
		}
	}

	// Grid lines.
	for i := 0; i <= len(grid.Slots); i++ {
		y := float64(imgHeaderH + i*imgRowH)
		dc.DrawLine(0, y, float64(w), y)
	}
	dc.DrawLine(0, 0, float64(w), 0)
	for j := 0; j <= len(grid.Dates); j++ {
		x := float64(imgTimeColW + j*imgColW)
		dc.DrawLine(x, 0, x, float64(h))
	}
	dc.DrawLine(0, 0, 0, float64(h))
	dc.SetLineWidth(1)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func cellText(c *domain.Cell) string {
	return fmt.Sprintf("%s (%d min)", c.Label, c.DurationMin)
}
