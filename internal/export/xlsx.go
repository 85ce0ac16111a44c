package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// XLSX renders the grid as a spreadsheet: one header row of dates, one
// row per slot, same cell contents as the other backends.
func XLSX(grid domain.Grid) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Schedule"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	if err := f.SetCellValue(sheet, "A1", "Time"); err != nil {
		return nil, err
	}
	for j, d := range grid.Dates {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellValue(sheet, cell, domain.HeaderLabel(d)); err != nil {
			return nil, err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(grid.Dates)+1, 1)
	_ = f.SetCellStyle(sheet, "A1", endHeader, headerStyle)

	for i, slot := range grid.Slots {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(sheet, cell, slot); err != nil {
			return nil, err
		}
		for j := range grid.Dates {
			c := grid.Cells[i][j]
			if c == nil {
				continue
			}
			name, _ := excelize.CoordinatesToCellName(j+2, i+2)
			if err := f.SetCellValue(sheet, name, cellText(c)); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(sheet, "B", colName(len(grid.Dates)+1), 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func colName(n int) string {
	if n < 1 {
		return "A"
	}
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
