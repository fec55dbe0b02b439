package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// XLSXExporter renders datasets into a single right-to-left worksheet.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes headers in bold on the first row followed by the data rows.
func (e *XLSXExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	rtl := true
	if err := f.SetSheetView(xlsxSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, fmt.Errorf("set sheet view: %w", err)
	}
	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
			return nil, fmt.Errorf("set doc props: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(xlsxSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
	}

	for rowIdx, record := range data.Records() {
		for colIdx, value := range record {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	buf := &bytes.Buffer{}
	if _, err := f.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
