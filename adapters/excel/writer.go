package excel

import (
	"fmt"
	"io"

	"mbtidash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of an exported workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// WriteWorkbook writes the sheets, in order, as an xlsx document.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.InvalidInput("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return errors.Wrapf(err, "failed to name sheet %s", sheet.Name)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return errors.Wrapf(err, "failed to create sheet %s", sheet.Name)
		}

		header := make([]interface{}, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return errors.Wrapf(err, "failed to write header of %s", sheet.Name)
		}
		if len(sheet.Header) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(sheet.Header), 1)
			if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
				return errors.Wrapf(err, "failed to style header of %s", sheet.Name)
			}
		}

		for r, row := range sheet.Rows {
			row := row
			cell := fmt.Sprintf("A%d", r+2)
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return errors.Wrapf(err, "failed to write row %d of %s", r+1, sheet.Name)
			}
		}
		if err := f.SetColWidth(sheet.Name, "A", "A", 24); err != nil {
			return errors.Wrapf(err, "failed to size columns of %s", sheet.Name)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}
