package dataset

import (
	"fmt"
	"math"
	"testing"

	"mbtidash/adapters/excel"
	"mbtidash/domain/mbti"
	"mbtidash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixteenHeader returns "Country" followed by the sixteen codes.
func sixteenHeader() []string {
	header := []string{"Country"}
	for _, typ := range mbti.Types() {
		header = append(header, string(typ))
	}
	return header
}

// uniformRow fills every type with the same fraction, then applies overrides.
func uniformRow(country, fill string, overrides map[string]string) []string {
	header := sixteenHeader()
	row := make([]string, len(header))
	row[0] = country
	for i := 1; i < len(header); i++ {
		row[i] = fill
		if v, ok := overrides[header[i]]; ok {
			row[i] = v
		}
	}
	return row
}

func newTestTable(t *testing.T, header []string, rows [][]string) *Table {
	t.Helper()
	table, err := NewTable(&excel.Records{Headers: header, Rows: rows})
	require.NoError(t, err)
	return table
}

// rankedTable builds n countries whose INTJ values fall by 0.01 per rank,
// starting at 0.30. The rows are stored in reverse rank order.
func rankedTable(t *testing.T, countries []string) *Table {
	t.Helper()
	rows := make([][]string, 0, len(countries))
	for i := len(countries) - 1; i >= 0; i-- {
		value := fmt.Sprintf("%.2f", 0.30-0.01*float64(i))
		rows = append(rows, uniformRow(countries[i], "0.05", map[string]string{"INTJ": value}))
	}
	return newTestTable(t, sixteenHeader(), rows)
}

func TestNormalizeScalesAndRounds(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP"}, [][]string{
		{"Japan", "0.123456", "1"},
		{"Chile", "0.005", " 0.5 "},
	})

	_, intj, err := table.Column("INTJ")
	require.NoError(t, err)
	assert.Equal(t, []float64{12.35, 0.5}, intj)

	_, enfp, err := table.Column("ENFP")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 50}, enfp)

	assert.Empty(t, table.Warnings())
}

func TestNormalizeKeepsValuesInPercentRange(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP", "ISTP"}, [][]string{
		{"Japan", "0.9999", "-0.1", "abc"},
		{"Chile", "1.5", "0", "NaN"},
		{"Peru", "inf", "0.33333", ""},
	})

	for _, name := range table.Columns() {
		_, values, err := table.Column(name)
		require.NoError(t, err)
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
			assert.Equal(t, math.Round(v*100)/100, v, "value %v has more than 2 decimals", v)
		}
	}
}

func TestNormalizeWarnsOncePerColumn(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP"}, [][]string{
		{"Japan", "0.1", "0.2"},
		{"Chile", "oops", "0.3"},
		{"Peru", "0.2", "0.4"},
	})

	warnings := table.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "INTJ", warnings[0].Column)
	assert.Equal(t, 1, warnings[0].Missing)
	assert.Contains(t, warnings[0].Message, "INTJ")

	_, intj, err := table.Column("INTJ")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(intj[1]))
	assert.Equal(t, 10.0, intj[0])
}

func TestNormalizeSingleWarningForManyBadCells(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{
		{"Japan", "x"},
		{"Chile", "y"},
		{"Peru", ""},
	})

	warnings := table.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Missing)
}

func TestNormalizeNamesOutOfRangeCells(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP", "ISTP"}, [][]string{
		{"Japan", "1.2", "oops", "0.1"},
		{"Chile", "0.2", "0.3", "-0.4"},
		{"Peru", "0.3", "0.2", "n/a"},
	})

	warnings := table.Warnings()
	require.Len(t, warnings, 3)

	assert.Equal(t, "INTJ", warnings[0].Column)
	assert.Equal(t, 1, warnings[0].OutOfRange)
	assert.Equal(t, "Column 'INTJ' contains values outside the 0-1 range; 1 cell(s) were treated as missing.", warnings[0].Message)

	assert.Equal(t, "ENFP", warnings[1].Column)
	assert.Zero(t, warnings[1].OutOfRange)
	assert.Equal(t, "Column 'ENFP' contains non-numeric values; 1 cell(s) were treated as missing.", warnings[1].Message)

	assert.Equal(t, "ISTP", warnings[2].Column)
	assert.Equal(t, 2, warnings[2].Missing)
	assert.Equal(t, 1, warnings[2].OutOfRange)
	assert.Contains(t, warnings[2].Message, "non-numeric values and values outside the 0-1 range")

	_, intj, err := table.Column("INTJ")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(intj[0]))
}

func TestNewTableRejectsShapelessInput(t *testing.T) {
	_, err := NewTable(&excel.Records{Headers: []string{"Country"}, Rows: [][]string{{"Japan"}}})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = NewTable(&excel.Records{Headers: []string{"Country", "INTJ"}})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestCountriesAreDistinctAndNonMissing(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{
		{"Japan", "0.1"},
		{"", "0.2"},
		{"Chile", "0.3"},
		{"Japan", "0.4"},
	})

	assert.Equal(t, []string{"Japan", "Chile"}, table.Countries())
	assert.Equal(t, 4, table.Nrow())
	assert.Equal(t, "Country", table.Label())
	assert.True(t, table.HasCountry("Chile"))
	assert.False(t, table.HasCountry(""))
}

func TestCountryDistributionMatchesRowSortedDescending(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP", "ISTP", "ESFJ"}, [][]string{
		{"Japan", "0.1", "0.4", "0.2", "0.3"},
		{"Chile", "0.4", "0.1", "0.3", "0.2"},
	})

	got, err := CountryDistribution(table, "Japan")
	require.NoError(t, err)

	assert.Equal(t, []mbti.TypeValue{
		{Type: "ENFP", Value: 40},
		{Type: "ESFJ", Value: 30},
		{Type: "ISTP", Value: 20},
		{Type: "INTJ", Value: 10},
	}, got)
}

func TestCountryDistributionSkipsMissingCells(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP"}, [][]string{
		{"Japan", "bad", "0.4"},
	})

	got, err := CountryDistribution(table, "Japan")
	require.NoError(t, err)
	assert.Equal(t, []mbti.TypeValue{{Type: "ENFP", Value: 40}}, got)
}

func TestCountryDistributionUnknownCountry(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{{"Japan", "0.1"}})

	_, err := CountryDistribution(table, "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestGlobalAverageOfTwoCountries(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP"}, [][]string{
		{"Japan", "0.10", "0.30"},
		{"Chile", "0.20", "0.50"},
	})

	got, err := GlobalAverage(table)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, mbti.Type("ENFP"), got[0].Type)
	assert.InDelta(t, 40.0, got[0].Value, 1e-9)
	assert.Equal(t, mbti.Type("INTJ"), got[1].Type)
	assert.InDelta(t, 15.0, got[1].Value, 1e-9)
	assert.Equal(t, "15.00", fmt.Sprintf("%.2f", got[1].Value))
}

func TestGlobalAverageExcludesMissing(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ", "ENFP"}, [][]string{
		{"Japan", "0.10", "n/a"},
		{"Chile", "", "n/a"},
		{"Peru", "0.30", "n/a"},
	})

	got, err := GlobalAverage(table)
	require.NoError(t, err)
	require.Len(t, got, 1, "a column with no values is left out")
	assert.InDelta(t, 20.0, got[0].Value, 1e-9)
}

func TestTopWithReferenceAppendsEleventh(t *testing.T) {
	countries := []string{
		"Argentina", "Brazil", "Canada", "Denmark", "Egypt", "France",
		"Germany", "Hungary", "India", "Japan", "South Korea", "Zambia",
	}
	table := rankedTable(t, countries)

	got, err := TopWithReference(table, "INTJ", 10, "South Korea")
	require.NoError(t, err)
	require.Len(t, got, 11)

	for i, cv := range got {
		assert.Equal(t, countries[i], cv.Country)
		assert.Equal(t, cv.Country == "South Korea", cv.Reference, "reference flag of %s", cv.Country)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Value, cv.Value)
		}
	}
	assert.InDelta(t, 20.0, got[10].Value, 1e-9)
}

func TestTopWithReferenceNoDuplicate(t *testing.T) {
	countries := []string{
		"Argentina", "South Korea", "Canada", "Denmark", "Egypt",
		"France", "Germany", "Hungary", "India", "Japan",
	}
	table := rankedTable(t, countries)

	got, err := TopWithReference(table, "INTJ", 10, "South Korea")
	require.NoError(t, err)
	require.Len(t, got, 10)

	refs := 0
	for _, cv := range got {
		if cv.Country == "South Korea" {
			refs++
			assert.True(t, cv.Reference)
		} else {
			assert.False(t, cv.Reference)
		}
	}
	assert.Equal(t, 1, refs)
	assert.Equal(t, "South Korea", got[1].Country)
}

func TestTopWithReferenceRanksDuplicateCountryOnce(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{
		{"Japan", "0.3"},
		{"Chile", "0.2"},
		{"Japan", "0.25"},
		{"South Korea", "0.1"},
		{"South Korea", "0.5"},
	})

	got, err := TopWithReference(table, "INTJ", 3, "South Korea")
	require.NoError(t, err)
	assert.Equal(t, []mbti.CountryValue{
		{Country: "Japan", Value: 30},
		{Country: "Chile", Value: 20},
		{Country: "South Korea", Value: 10, Reference: true},
	}, got)

	dist, err := CountryDistribution(table, "Japan")
	require.NoError(t, err)
	assert.Equal(t, []mbti.TypeValue{{Type: "INTJ", Value: 30}}, dist)
}

func TestTopWithReferenceTieBreakByName(t *testing.T) {
	rows := [][]string{
		uniformRow("Zambia", "0.05", map[string]string{"INTJ": "0.10"}),
		uniformRow("Austria", "0.05", map[string]string{"INTJ": "0.10"}),
		uniformRow("Mexico", "0.05", map[string]string{"INTJ": "0.20"}),
	}
	table := newTestTable(t, sixteenHeader(), rows)

	got, err := TopWithReference(table, "INTJ", 2, "Nowhere")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mexico", got[0].Country)
	assert.Equal(t, "Austria", got[1].Country, "equal values rank by country name")
}

func TestTopWithReferenceUnknownType(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{{"Japan", "0.1"}})

	_, err := TopWithReference(table, "XXXX", 10, "South Korea")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeTypeNotFound))

	// A real code missing from this file is also unknown.
	_, err = TopWithReference(table, "ENFP", 10, "South Korea")
	assert.True(t, errors.HasCode(err, errors.CodeTypeNotFound))
}

func TestTopWithReferenceSkipsMissingReferenceValue(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{
		{"Japan", "0.3"},
		{"Chile", "0.2"},
		{"South Korea", "?"},
	})

	got, err := TopWithReference(table, "INTJ", 1, "South Korea")
	require.NoError(t, err)
	assert.Equal(t, []mbti.CountryValue{{Country: "Japan", Value: 30}}, got)
}

func TestTopWithReferenceRejectsNonPositiveSize(t *testing.T) {
	table := newTestTable(t, []string{"Country", "INTJ"}, [][]string{{"Japan", "0.1"}})

	_, err := TopWithReference(table, "INTJ", 0, "South Korea")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}
