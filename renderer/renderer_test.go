package renderer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parseTables parses markdown with the GFM table extension and returns the cells of every table.
func parseTables(t *testing.T, doc string) [][][]string {
	t.Helper()
	src := []byte(doc)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var tables [][][]string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		var rows [][]string
		for row := table.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, nodeText(cell, src))
			}
			rows = append(rows, cells)
		}
		tables = append(tables, rows)
		return ast.WalkSkipChildren, nil
	})
	require.NoError(t, err)
	return tables
}

func nodeText(n ast.Node, src []byte) string {
	var b bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if txt, ok := c.(*ast.Text); ok {
			b.Write(txt.Segment.Value(src))
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return strings.TrimSpace(b.String())
}

func TestTemplatesRender(t *testing.T) {
	entries, err := templates.ReadDir(".")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestRenderComparison(t *testing.T) {
	c := marisk.Comparison{
		marisk.StrategyFixedMix: {
			AnnualReturn:     marisk.Some(0.05),
			AnnualVolatility: marisk.Some(0.1),
			SharpeRatio:      marisk.Some(0.5),
			MaxDrawdown:      marisk.Some(-0.2),
		},
		marisk.StrategyEqualWeight: {
			AnnualReturn:     marisk.Some(0.0712),
			AnnualVolatility: marisk.Some(0),
			SharpeRatio:      marisk.Undefined(),
			MaxDrawdown:      marisk.Some(0),
		},
	}
	doc := RenderComparison(NewComparison("2024-01-01..2024-12-31", c))
	assert.Contains(t, doc, "# Performance Comparison")
	assert.Contains(t, doc, "Period: 2024-01-01..2024-12-31")

	tables := parseTables(t, doc)
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{
		{"Strategy", "Annual Return", "Annual Volatility", "Sharpe", "Max Drawdown"},
		{"Equal Weight", "7.12%", "0.00%", "n/a", "0.00%"},
		{"60/40", "5.00%", "10.00%", "0.50", "-20.00%"},
	}, tables[0])
}

func TestRenderWeights(t *testing.T) {
	w := map[string]marisk.Weights{
		marisk.StrategyEqualWeight: {0.5, 0.5},
		"Custom":                   {1.25, -0.25},
	}
	tables := parseTables(t, RenderWeights(NewWeightsReport("", []string{"SPY", "IEF"}, w)))
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{
		{"Strategy", "SPY", "IEF", "Total"},
		{"Equal Weight", "50.00%", "50.00%", "100.00%"},
		{"Custom", "125.00%", "-25.00%", "100.00%"},
	}, tables[0])
}

func TestRenderStress(t *testing.T) {
	d := []date.Date{date.New(2024, 1, 1), date.New(2024, 1, 2), date.New(2024, 1, 3)}
	baseline := marisk.NewSeries(d, []float64{100, 110, 120})
	stressed := marisk.NewSeries(d, []float64{90, 99, 108})
	r := NewStressReport("", marisk.ScenarioDown10, "USD", []string{"SPY", "IEF"}, marisk.Weights{0.6, 0.4},
		marisk.Scenario{"SPY": -0.1}, baseline, stressed, 2)

	doc := RenderStress(r)
	assert.Contains(t, doc, "Scenario **down_10**")
	tables := parseTables(t, doc)
	require.Len(t, tables, 2)
	assert.Equal(t, [][]string{
		{"Asset", "Weight", "Shock"},
		{"SPY", "60.00%", "-10.00%"},
		{"IEF", "40.00%", "-"},
	}, tables[0])
	assert.Equal(t, [][]string{
		{"Date", "Baseline", "Stressed", "Impact"},
		{"2024-01-02", "$110.00", "$99.00", "-10.00%"},
		{"2024-01-03", "$120.00", "$108.00", "-10.00%"},
	}, tables[1])
}

func TestRenderRolling(t *testing.T) {
	d := []date.Date{date.New(2024, 1, 1), date.New(2024, 1, 2), date.New(2024, 1, 3)}
	returns := marisk.NewSeries(d, []float64{0.01, 0.03, 0.02})
	stats, err := marisk.ComputeRollingStats(returns, 2)
	require.NoError(t, err)

	doc := RenderRolling(NewRollingReport("", stats, 0, 0))
	assert.Contains(t, doc, "Window: 2 periods")
	tables := parseTables(t, doc)
	require.Len(t, tables, 1)
	require.Len(t, tables[0], 4)
	assert.Equal(t, []string{"2024-01-01", "n/a", "n/a", "n/a"}, tables[0][1])
	assert.Equal(t, "2.00%", tables[0][2][1])
	assert.Equal(t, "2.50%", tables[0][3][1])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "n/a", Percent(marisk.Undefined()))
	assert.Equal(t, "-12.35%", Percent(marisk.Some(-0.12345)))
	assert.Equal(t, "1.23", Ratio(marisk.Some(1.2345)))
	assert.Equal(t, "+5.00%", Shock(0.05))
	assert.Equal(t, "-", Shock(0))
	assert.Equal(t, "1234.57", Money(1234.567, ""))
	assert.Equal(t, "$1,234.57", Money(1234.567, "USD"))
}

func TestFormatNonFinite(t *testing.T) {
	// 21^252 overflows: the annual return is undefined rather than infinite.
	assert.Equal(t, "n/a", Percent(marisk.AnnualizedReturn([]float64{20}, marisk.DefaultPeriodsPerYear)))
	assert.Equal(t, "n/a", Ratio(marisk.Some(math.Inf(-1))))
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		assert.Equal(t, "n/a", Shock(v))
		assert.Equal(t, "n/a", Money(v, "USD"))
		assert.Equal(t, "n/a", Money(v, ""))
	}

	doc := RenderComparison(NewComparison("", marisk.Comparison{
		marisk.StrategyEqualWeight: marisk.PortfolioMetrics([]float64{20}, marisk.DefaultPeriodsPerYear),
	}))
	tables := parseTables(t, doc)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Equal Weight", "n/a", "n/a", "n/a", "0.00%"}, tables[0][1])
}

func TestLineChart(t *testing.T) {
	d := make([]date.Date, 10)
	values := make([]float64, 10)
	for i := range d {
		d[i] = date.New(2024, 1, i+1)
		values[i] = 100 + float64(i)
	}
	a := marisk.NewSeries(d, values)
	b := marisk.Series{Dates: d, Values: append([]marisk.Optional{marisk.Undefined()}, a.Values[1:]...)}

	png, err := LineChart("test", []string{"a", "b"}, a, b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = LineChart("test", []string{"a"}, a, b)
	assert.Error(t, err)
	_, err = LineChart("test", nil)
	assert.Error(t, err)
}
