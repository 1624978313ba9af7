package dashboard

import (
	"io"

	"mbtidash/adapters/excel"
	"mbtidash/internal/errors"
)

// Sheets turns the charted panels of a page into worksheets. Panels showing
// an error are left out.
func Sheets(page *Page) []excel.Sheet {
	var sheets []excel.Sheet
	add := func(p *Panel, name, labelHeader string) {
		if p == nil || p.Error != "" || len(p.Rows) == 0 {
			return
		}
		header := []string{labelHeader, "Percent"}
		if p.ID == "top" {
			header = append(header, "Reference")
		}
		rows := make([][]interface{}, len(p.Rows))
		for i, r := range p.Rows {
			row := []interface{}{r.Label, r.Value}
			if p.ID == "top" {
				row = append(row, r.Highlight)
			}
			rows[i] = row
		}
		sheets = append(sheets, excel.Sheet{Name: name, Header: header, Rows: rows})
	}

	add(page.CountryPanel, "Country", "MBTI")
	add(page.AveragePanel, "Average", "MBTI")
	add(page.TopPanel, "Top", "Country")
	return sheets
}

// WriteWorkbook exports the page's charted panels as xlsx.
func WriteWorkbook(w io.Writer, page *Page) error {
	if page.Fatal != "" {
		return errors.New(page.FatalCode, page.Fatal)
	}
	sheets := Sheets(page)
	if len(sheets) == 0 {
		return errors.InvalidInput("no panel has data to export")
	}
	return excel.WriteWorkbook(w, sheets)
}
