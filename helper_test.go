package marisk

import (
	"testing"

	"github.com/etnz/marisk/date"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

// days returns n consecutive dates starting on 2024-01-01.
func days(n int) []date.Date {
	d := make([]date.Date, n)
	for i := range d {
		d[i] = date.New(2024, 1, 1+i)
	}
	return d
}

// newTestPanel builds a panel over consecutive dates, failing the test on error.
func newTestPanel(t *testing.T, assets []string, rows [][]float64) *Panel {
	t.Helper()
	p, err := NewPanel(days(len(rows)), assets, rows)
	require.NoError(t, err)
	return p
}

// scenarioPanel is the 3 assets × 5 dates reference panel.
func scenarioPanel(t *testing.T) *Panel {
	return newTestPanel(t, []string{"EQ", "BD", "CM"}, [][]float64{
		{100, 50, 10},
		{101, 50, 10},
		{102, 49, 10},
		{103, 49, 11},
		{104, 48, 11},
	})
}

// walkPanel builds a deterministic price panel of n dates following distinct oscillating walks.
func walkPanel(t *testing.T, n int) *Panel {
	t.Helper()
	rows := make([][]float64, n)
	a, b, c := 100.0, 50.0, 20.0
	for i := range rows {
		rows[i] = []float64{a, b, c}
		a *= 1 + 0.01*float64((i*7)%5-2)/2
		b *= 1 + 0.004*float64((i*3)%7-3)/3
		c *= 1 + 0.02*float64((i*5)%3-1)
	}
	return newTestPanel(t, []string{"SPY", "IEF", "GLD"}, rows)
}

// values extracts the float values of a series, undefined points as the given default.
func values(s Series, undefined float64) []float64 {
	xs := make([]float64, s.Len())
	for i, v := range s.Values {
		xs[i] = v.Or(undefined)
	}
	return xs
}
