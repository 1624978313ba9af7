package mbti

import (
	"sort"
	"strings"
)

// Type is a four-letter MBTI personality code used as a column label.
type Type string

// The sixteen codes in alphabetical order.
var allTypes = []Type{
	"ENFJ", "ENFP", "ENTJ", "ENTP",
	"ESFJ", "ESFP", "ESTJ", "ESTP",
	"INFJ", "INFP", "INTJ", "INTP",
	"ISFJ", "ISFP", "ISTJ", "ISTP",
}

// Types returns the sixteen MBTI codes sorted alphabetically.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType normalizes user input to a code. It does not check membership
// in the dataset; the caller decides what an unknown code means.
func ParseType(s string) Type {
	return Type(strings.ToUpper(strings.TrimSpace(s)))
}

func (t Type) String() string { return string(t) }

// TypeValue is one bar of a per-type distribution.
type TypeValue struct {
	Type  Type    `json:"type"`
	Value float64 `json:"value"`
}

// CountryValue is one bar of a per-country ranking.
type CountryValue struct {
	Country   string  `json:"country"`
	Value     float64 `json:"value"`
	Reference bool    `json:"reference"`
}

// Selection is the country and type currently chosen on the page.
type Selection struct {
	Country string
	Type    Type
}

// SortTypeValues orders by value descending, then code ascending.
func SortTypeValues(values []TypeValue) {
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Value != values[j].Value {
			return values[i].Value > values[j].Value
		}
		return values[i].Type < values[j].Type
	})
}

// SortCountryValues orders by value descending, then country name ascending.
func SortCountryValues(values []CountryValue) {
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Value != values[j].Value {
			return values[i].Value > values[j].Value
		}
		return values[i].Country < values[j].Country
	})
}
