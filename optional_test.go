package marisk

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert.False(t, Some(math.NaN()).Defined(), "NaN is undefined")
	assert.False(t, Some(math.Inf(1)).Defined(), "+Inf is undefined")
	assert.False(t, Some(math.Inf(-1)).Defined(), "-Inf is undefined")
	assert.Equal(t, 5.0, Some(math.Inf(1)).Or(5))
	assert.True(t, Some(0).Defined())
	assert.Equal(t, 2.0, Undefined().Or(2))
	assert.Equal(t, "0.5", Some(0.5).String())
	assert.Equal(t, "n/a", Undefined().String())
}

func TestOptionalJSON(t *testing.T) {
	data, err := json.Marshal(Metrics{AnnualReturn: Some(0.1), SharpeRatio: Undefined()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"annualReturn":0.1,"annualVolatility":null,"sharpeRatio":null,"maxDrawdown":null}`, string(data))

	var m Metrics
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, Some(0.1), m.AnnualReturn)
	assert.False(t, m.SharpeRatio.Defined())
}

func TestSimpleReturns(t *testing.T) {
	s := NewSeries(days(4), []float64{100, 110, 99, 0})
	r := s.SimpleReturns()
	assert.InDeltaSlice(t, []float64{0, 0.1, -0.1, -1}, values(r, math.NaN()), tolerance)

	zero := NewSeries(days(2), []float64{0, 5}).SimpleReturns()
	assert.Equal(t, []float64{0, 0}, values(zero, math.NaN()))
}

func TestSeriesTrimUndefined(t *testing.T) {
	s := Series{Dates: days(3), Values: []Optional{Undefined(), Some(1), Undefined()}}
	trimmed := s.TrimUndefined()
	assert.Equal(t, days(3)[1:2], trimmed.Dates)
	assert.Equal(t, []float64{1}, trimmed.Defined())

	d, v := trimmed.Last()
	assert.Equal(t, days(3)[1], d)
	assert.Equal(t, Some(1), v)
}
