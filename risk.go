package marisk

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultPeriodsPerYear is the number of trading days used to annualize daily statistics.
const DefaultPeriodsPerYear = 252

// Metrics holds the annualized risk and performance figures of a return series.
type Metrics struct {
	AnnualReturn     Optional `json:"annualReturn"`
	AnnualVolatility Optional `json:"annualVolatility"`
	SharpeRatio      Optional `json:"sharpeRatio"`
	MaxDrawdown      Optional `json:"maxDrawdown"`
}

// AnnualizedReturn compounds the returns into a growth factor G and annualizes it as G^(ppy/n) - 1.
//
// The result is undefined for an empty series, for a negative growth factor
// which has no real fractional power, and when the power overflows.
func AnnualizedReturn(returns []float64, periodsPerYear int) Optional {
	n := len(returns)
	if n == 0 {
		return Undefined()
	}
	g := 1.0
	for _, r := range returns {
		g *= 1 + r
	}
	if g < 0 {
		return Undefined()
	}
	return Some(math.Pow(g, float64(periodsPerYear)/float64(n)) - 1)
}

// AnnualizedVolatility is the sample standard deviation scaled by sqrt(ppy).
// It is undefined with fewer than two returns.
func AnnualizedVolatility(returns []float64, periodsPerYear int) Optional {
	if len(returns) < 2 {
		return Undefined()
	}
	return Some(stat.StdDev(returns, nil) * math.Sqrt(float64(periodsPerYear)))
}

// SharpeRatio is the annualized return over the annualized volatility.
// It is undefined when the volatility is exactly zero.
func SharpeRatio(returns []float64, periodsPerYear int) Optional {
	return ratio(AnnualizedReturn(returns, periodsPerYear), AnnualizedVolatility(returns, periodsPerYear))
}

// ratio divides num by den, zero or undefined den gives an undefined ratio.
func ratio(num, den Optional) Optional {
	n, ok1 := num.Get()
	d, ok2 := den.Get()
	if !ok1 || !ok2 || d == 0 {
		return Undefined()
	}
	return Some(n / d)
}

// MaxDrawdown is the worst decline of the cumulative wealth index from its running peak.
//
// The result is always <= 0, and 0 when wealth never declines. It is undefined for an empty series.
func MaxDrawdown(returns []float64) Optional {
	if len(returns) == 0 {
		return Undefined()
	}
	wealth, peak, worst := 1.0, math.Inf(-1), 0.0
	for _, r := range returns {
		wealth *= 1 + r
		peak = max(peak, wealth)
		if peak == 0 {
			return Undefined()
		}
		worst = min(worst, (wealth-peak)/peak)
	}
	return Some(worst)
}

// PortfolioMetrics computes all metrics of a return series at once.
func PortfolioMetrics(returns []float64, periodsPerYear int) Metrics {
	return Metrics{
		AnnualReturn:     AnnualizedReturn(returns, periodsPerYear),
		AnnualVolatility: AnnualizedVolatility(returns, periodsPerYear),
		SharpeRatio:      SharpeRatio(returns, periodsPerYear),
		MaxDrawdown:      MaxDrawdown(returns),
	}
}
