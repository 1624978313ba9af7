package mbti

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypesAreSortedAndComplete(t *testing.T) {
	types := Types()
	assert.Len(t, types, 16)
	for i := 1; i < len(types); i++ {
		assert.Less(t, string(types[i-1]), string(types[i]))
	}

	// The returned slice is a copy.
	types[0] = "XXXX"
	assert.Equal(t, Type("ENFJ"), Types()[0])
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"INTJ", "INTJ"},
		{" enfp ", "ENFP"},
		{"ABCD", "ABCD"},
		{"", ""},
	}

	for _, tt := range tests {
		got := ParseType(tt.input)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestSortCountryValuesBreaksTiesByName(t *testing.T) {
	values := []CountryValue{
		{Country: "Chile", Value: 5},
		{Country: "Austria", Value: 5},
		{Country: "Brazil", Value: 7},
	}
	SortCountryValues(values)

	assert.Equal(t, []string{"Brazil", "Austria", "Chile"},
		[]string{values[0].Country, values[1].Country, values[2].Country})
}

func TestSortTypeValuesBreaksTiesByCode(t *testing.T) {
	values := []TypeValue{
		{Type: "ISTP", Value: 1},
		{Type: "ENFJ", Value: 1},
		{Type: "INTJ", Value: 3},
	}
	SortTypeValues(values)

	assert.Equal(t, []Type{"INTJ", "ENFJ", "ISTP"},
		[]Type{values[0].Type, values[1].Type, values[2].Type})
}
