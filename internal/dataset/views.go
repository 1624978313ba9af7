package dataset

import (
	"fmt"
	"math"

	"mbtidash/domain/mbti"
	"mbtidash/internal/errors"

	"github.com/montanaflynn/stats"
)

// CountryDistribution returns the country's value for every type, sorted
// descending. Missing cells are left out.
func CountryDistribution(t *Table, country string) ([]mbti.TypeValue, error) {
	if !t.HasCountry(country) {
		return nil, errors.NotFound(fmt.Sprintf("country %q", country))
	}
	row, ok := t.Row(country)
	if !ok {
		return nil, errors.InternalError(fmt.Sprintf("no row found for country %q", country))
	}

	out := make([]mbti.TypeValue, 0, len(row))
	for _, name := range t.columns {
		v := row[name]
		if math.IsNaN(v) {
			continue
		}
		out = append(out, mbti.TypeValue{Type: mbti.Type(name), Value: v})
	}
	mbti.SortTypeValues(out)
	return out, nil
}

// GlobalAverage returns the mean of every value column across countries,
// sorted descending. Missing cells do not count; a column with no values is left out.
func GlobalAverage(t *Table) ([]mbti.TypeValue, error) {
	out := make([]mbti.TypeValue, 0, len(t.columns))
	for _, name := range t.columns {
		values, err := t.Values(name)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to average %s", name)
		}
		out = append(out, mbti.TypeValue{Type: mbti.Type(name), Value: mean})
	}
	mbti.SortTypeValues(out)
	return out, nil
}

// TopWithReference returns the n countries with the largest value for the
// type, plus the reference country when it is not already among them. The
// result is sorted descending and the reference entry is flagged.
func TopWithReference(t *Table, typ mbti.Type, n int, reference string) ([]mbti.CountryValue, error) {
	if !t.HasColumn(string(typ)) {
		return nil, errors.TypeNotFound(string(typ))
	}
	if n < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("ranking size must be positive, got %d", n))
	}

	labels, values, err := t.Column(string(typ))
	if err != nil {
		return nil, err
	}

	// A country listed twice is ranked by its first row only.
	seen := make(map[string]bool, len(labels))
	candidates := make([]mbti.CountryValue, 0, len(values))
	for i, v := range values {
		label := labels[i]
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		if math.IsNaN(v) {
			continue
		}
		candidates = append(candidates, mbti.CountryValue{Country: label, Value: v})
	}
	mbti.SortCountryValues(candidates)

	top := candidates
	if len(top) > n {
		top = top[:n]
	}
	top = append([]mbti.CountryValue(nil), top...)

	found := false
	for i := range top {
		if top[i].Country == reference {
			top[i].Reference = true
			found = true
		}
	}
	if !found {
		for i, label := range labels {
			if label != reference {
				continue
			}
			if !math.IsNaN(values[i]) {
				top = append(top, mbti.CountryValue{Country: reference, Value: values[i], Reference: true})
			}
			break
		}
	}

	mbti.SortCountryValues(top)
	return top, nil
}
