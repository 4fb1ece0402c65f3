package forcing

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/chrissnell/dikeprep/internal/hydro"
)

// ReadXLSX reads forcing from a workbook. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*hydro.Conditions, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return parseTable(rows)
}

// ReadXLSXFile reads forcing from the workbook at path
func ReadXLSXFile(path, sheet string) (*hydro.Conditions, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", path, sheet, err)
	}
	c, err := parseTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteXLSX writes forcing to a single-sheet workbook in the layout ReadXLSX reads
func WriteXLSX(w io.Writer, c *hydro.Conditions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "forcing"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for col, header := range Columns {
		if err := setCell(f, sheet, col, 1, header); err != nil {
			return err
		}
	}
	for r, row := range rows(c) {
		for col, value := range row {
			if value == "" {
				continue
			}
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, col, r+2, v); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, name, value)
}
