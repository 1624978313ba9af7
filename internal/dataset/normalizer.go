package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mbtidash/internal/logging"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats/scalar"
)

// Warning is a non-fatal normalization finding, one per affected column.
// Missing counts every dropped cell; OutOfRange counts the numeric ones
// among them that fell outside [0, 1].
type Warning struct {
	Column     string `json:"column"`
	Missing    int    `json:"missing"`
	OutOfRange int    `json:"out_of_range"`
	Message    string `json:"message"`
}

type cellStatus int

const (
	cellOK cellStatus = iota
	cellNonNumeric
	cellOutOfRange
)

const missingRecord = "NaN"

// Normalize converts every column except the first to percentages.
// Cells that are empty, non-numeric or outside [0, 1] become missing; each
// column with at least one missing cell yields exactly one Warning.
func Normalize(df dataframe.DataFrame) (dataframe.DataFrame, []Warning) {
	var warnings []Warning

	names := df.Names()
	for _, name := range names[1:] {
		raw := df.Col(name).Records()
		out := make([]string, len(raw))
		nonNumeric, outOfRange := 0, 0
		for i, cell := range raw {
			pct, status := toPercent(cell)
			switch status {
			case cellNonNumeric:
				nonNumeric++
			case cellOutOfRange:
				outOfRange++
			default:
				out[i] = strconv.FormatFloat(pct, 'f', -1, 64)
				continue
			}
			out[i] = missingRecord
		}

		df = df.Mutate(series.New(out, series.Float, name))

		if missing := nonNumeric + outOfRange; missing > 0 {
			w := Warning{
				Column:     name,
				Missing:    missing,
				OutOfRange: outOfRange,
				Message:    warningMessage(name, nonNumeric, outOfRange),
			}
			logging.Warnf("[Normalize] %s", w.Message)
			warnings = append(warnings, w)
		}
	}

	return df, warnings
}

func warningMessage(column string, nonNumeric, outOfRange int) string {
	var what string
	switch {
	case outOfRange == 0:
		what = "non-numeric values"
	case nonNumeric == 0:
		what = "values outside the 0-1 range"
	default:
		what = "non-numeric values and values outside the 0-1 range"
	}
	return fmt.Sprintf("Column '%s' contains %s; %d cell(s) were treated as missing.", column, what, nonNumeric+outOfRange)
}

// toPercent parses a fraction and scales it to a percentage with 2 decimals.
func toPercent(cell string) (float64, cellStatus) {
	v := strings.TrimSpace(cell)
	if v == "" {
		return 0, cellNonNumeric
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, cellNonNumeric
	}
	if f < 0 || f > 1 {
		return 0, cellOutOfRange
	}
	return scalar.Round(f*100, 2), cellOK
}
