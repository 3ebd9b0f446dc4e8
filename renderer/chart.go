package renderer

import (
	"errors"
	"fmt"

	"github.com/etnz/marisk"
	"github.com/vicanso/go-charts/v2"
)

// chart size in pixels.
const (
	chartWidth  = 1000
	chartHeight = 600
)

// LineChart renders aligned series as a PNG line chart, one line per name.
//
// The chart starts at the first date where every series is defined; later
// undefined points repeat the previous value.
func LineChart(title string, names []string, series ...marisk.Series) ([]byte, error) {
	if len(series) == 0 {
		return nil, errors.New("no series to chart")
	}
	if len(names) != len(series) {
		return nil, fmt.Errorf("%d names for %d series", len(names), len(series))
	}
	n := series[0].Len()
	for _, s := range series[1:] {
		if s.Len() != n {
			return nil, fmt.Errorf("series are not aligned: %d and %d points", n, s.Len())
		}
	}
	start := firstDefined(n, series)
	if n-start < 2 {
		return nil, errors.New("not enough data points")
	}

	labels := make([]string, 0, n-start)
	for _, d := range series[0].Dates[start:] {
		labels = append(labels, d.String())
	}
	values := make([][]float64, len(series))
	for i, s := range series {
		values[i] = make([]float64, 0, n-start)
		var last float64
		for _, o := range s.Values[start:] {
			last = o.Or(last)
			values[i] = append(values[i], last)
		}
	}

	painter, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// firstDefined returns the first index where every series is defined, or n.
func firstDefined(n int, series []marisk.Series) int {
	for t := 0; t < n; t++ {
		all := true
		for _, s := range series {
			if !s.Values[t].Defined() {
				all = false
				break
			}
		}
		if all {
			return t
		}
	}
	return n
}
