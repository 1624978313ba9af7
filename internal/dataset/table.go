package dataset

import (
	"fmt"
	"math"
	"strings"

	"mbtidash/adapters/excel"
	"mbtidash/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is the normalized country x MBTI-type table. The first column holds
// the country label; every other column holds percentages, NaN when missing.
// A Table is never modified after NewTable returns.
type Table struct {
	df        dataframe.DataFrame
	label     string
	columns   []string
	countries []string
	warnings  []Warning
}

// NewTable builds and normalizes a table from raw records.
func NewTable(records *excel.Records) (*Table, error) {
	if records == nil || len(records.Headers) < 2 {
		return nil, errors.InvalidInput("table needs a country column and at least one value column")
	}
	if len(records.Rows) == 0 {
		return nil, errors.InvalidInput("file has no data rows")
	}

	all := make([][]string, 0, len(records.Rows)+1)
	all = append(all, records.Headers)
	all = append(all, records.Rows...)

	df := dataframe.LoadRecords(all,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to build table: %w", df.Err))
	}

	df, warnings := Normalize(df)
	if df.Err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to normalize table: %w", df.Err))
	}

	names := df.Names()
	t := &Table{
		df:       df,
		label:    names[0],
		columns:  append([]string(nil), names[1:]...),
		warnings: warnings,
	}
	t.countries = distinctLabels(df.Col(t.label))
	return t, nil
}

// distinctLabels returns non-missing labels in order of first appearance.
func distinctLabels(s series.Series) []string {
	records := s.Records()
	nan := s.IsNaN()
	seen := make(map[string]bool, len(records))
	out := make([]string, 0, len(records))
	for i, label := range records {
		if nan[i] || strings.TrimSpace(label) == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

// Label returns the name of the country column.
func (t *Table) Label() string { return t.label }

// Columns returns the value column names in file order.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// Countries returns the distinct non-missing country names in file order.
func (t *Table) Countries() []string { return append([]string(nil), t.countries...) }

// Warnings returns the normalization warnings, one per affected column.
func (t *Table) Warnings() []Warning { return append([]Warning(nil), t.warnings...) }

// Nrow returns the number of data rows, duplicates and unlabeled rows included.
func (t *Table) Nrow() int { return t.df.Nrow() }

// HasCountry reports whether the country appears in the table.
func (t *Table) HasCountry(country string) bool {
	for _, c := range t.countries {
		if c == country {
			return true
		}
	}
	return false
}

// HasColumn reports whether a value column with this exact name exists.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Row returns the values of the first row labelled country, keyed by column.
// Missing cells are NaN.
func (t *Table) Row(country string) (map[string]float64, bool) {
	match := t.df.Filter(dataframe.F{
		Colname:    t.label,
		Comparator: series.Eq,
		Comparando: country,
	})
	if match.Err != nil || match.Nrow() == 0 {
		return nil, false
	}

	row := make(map[string]float64, len(t.columns))
	for _, name := range t.columns {
		row[name] = match.Col(name).Float()[0]
	}
	return row, true
}

// Column returns the country labels and the values of one value column, row by row.
// Labels of unlabeled rows are empty.
func (t *Table) Column(name string) ([]string, []float64, error) {
	if !t.HasColumn(name) {
		return nil, nil, errors.NotFound(fmt.Sprintf("column %q", name))
	}
	labelSeries := t.df.Col(t.label)
	labels := labelSeries.Records()
	for i, nan := range labelSeries.IsNaN() {
		if nan {
			labels[i] = ""
		}
	}
	values := t.df.Col(name).Float()
	if len(values) != len(labels) {
		return nil, nil, errors.InternalError(fmt.Sprintf("column %q has %d values for %d rows", name, len(values), len(labels)))
	}
	return labels, values, nil
}

// Values returns the non-missing values of one column.
func (t *Table) Values(name string) ([]float64, error) {
	_, values, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}
