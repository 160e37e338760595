package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	maxSheetName = 31
	headerRow    = 1
)

// Sheet is one table of a workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

var sheetNameReplacer = strings.NewReplacer(
	"[", "(", "]", ")", ":", "-", "*", "-", "?", "-", "/", "-", "\\", "-",
)

// SheetName makes s usable as a worksheet name.
func SheetName(s string) string {
	name := sheetNameReplacer.Replace(s)
	if name == "" {
		name = defaultSheet
	}

	runes := []rune(name)
	if len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}

	return name
}

// WriteWorkbook writes sheets as an XLSX workbook with bold headers.
// Duplicate sheet names get a numeric suffix.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	book := excelize.NewFile()
	defer book.Close()

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}

	used := make(map[string]int, len(sheets))

	for idx, sheet := range sheets {
		name := uniqueSheetName(SheetName(sheet.Name), used)

		if idx == 0 {
			err = book.SetSheetName(defaultSheet, name)
		} else {
			_, err = book.NewSheet(name)
		}

		if err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}

		if err := writeSheet(book, name, sheet, bold); err != nil {
			return err
		}
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeSheet(book *excelize.File, name string, sheet Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}

	if err := book.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", name, err)
	}

	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), headerRow)
		if err != nil {
			return fmt.Errorf("sheet %q header: %w", name, err)
		}

		if err := book.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("sheet %q header: %w", name, err)
		}
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i, err)
		}

		if err := book.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i, err)
		}
	}

	return nil
}

func uniqueSheetName(name string, used map[string]int) string {
	key := strings.ToLower(name)
	used[key]++

	if used[key] == 1 {
		return name
	}

	suffix := fmt.Sprintf(" (%d)", used[key])
	runes := []rune(name)

	if len(runes)+len(suffix) > maxSheetName {
		runes = runes[:maxSheetName-len(suffix)]
	}

	return string(runes) + suffix
}
