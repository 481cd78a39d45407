package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"scanvault/internal/domain"
)

const sheet = "Assets"

// AssetsXLSX renders an owner's assets into an XLSX workbook. One row per
// asset; the extracted fields are flattened into a "key=value" column.
func AssetsXLSX(assets []domain.Asset, categoryNames map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Created",
		"Name",
		"File",
		"Category",
		"Status",
		"Mode",
		"Summary",
		"Fields",
		"Entities",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, a := range assets {
		write := func(col int, v interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		category := ""
		if a.CategoryID != nil {
			category = categoryNames[a.CategoryID.String()]
		}

		write(1, a.CreatedAt.Format("2006-01-02"))
		write(2, a.AssetName)
		write(3, a.FileName)
		write(4, category)
		write(5, string(a.Status))
		write(6, string(a.Mode))
		write(7, truncate(a.Summary, 500))
		write(8, truncate(flattenFields(a.Fields), 2000))
		write(9, strings.Join(a.Entities, ", "))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 32)
	_ = f.SetColWidth(sheet, "D", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 48)
	_ = f.SetColWidth(sheet, "H", "H", 60)
	_ = f.SetColWidth(sheet, "I", "I", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func flattenFields(fields domain.FieldList) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		value := field.ValueString()
		if field.Unit != "" {
			value += " " + field.Unit
		}
		parts = append(parts, field.Key+"="+value)
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
