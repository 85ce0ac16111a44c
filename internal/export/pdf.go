package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// PDF renders the grid as a paginated A4 document with the same layout
// as the image backend. gofpdf handles the page breaks; long schedules
// simply continue on the next page.
func PDF(grid domain.Grid) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Weekly Schedule", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	timeW := 18.0
	colW := usable - timeW
	if n := len(grid.Dates); n > 0 {
		colW = (usable - timeW) / float64(n)
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(timeW, 6, "Time", "1", 0, "C", false, 0, "")
	for _, d := range grid.Dates {
		pdf.CellFormat(colW, 6, domain.HeaderLabel(d), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for i, slot := range grid.Slots {
		pdf.CellFormat(timeW, 5, slot, "1", 0, "C", false, 0, "")
		for j := range grid.Dates {
			text := ""
			if c := grid.Cells[i][j]; c != nil {
				text = cellText(c)
			}
			pdf.CellFormat(colW, 5, text, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
