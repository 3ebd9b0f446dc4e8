package marisk

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// RollingStats holds the trailing-window statistics of a return series.
// All three series are aligned with the input.
type RollingStats struct {
	Window     int
	Mean       Series
	Volatility Series
	Sharpe     Series
}

// rolling applies f to every trailing window of the defined input values.
// The first window-1 points are undefined, as is any window holding an undefined value.
func rolling(returns Series, window int, f func(xs []float64) Optional) (Series, error) {
	if window < 1 {
		return Series{}, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	out := Series{Dates: slices.Clone(returns.Dates), Values: make([]Optional, returns.Len())}
	xs := make([]float64, window)
	for t := window - 1; t < returns.Len(); t++ {
		complete := true
		for i, v := range returns.Values[t-window+1 : t+1] {
			xs[i], complete = v.Get()
			if !complete {
				break
			}
		}
		if complete {
			out.Values[t] = f(xs)
		}
	}
	return out, nil
}

// RollingMean is the simple moving average over the trailing window.
func RollingMean(returns Series, window int) (Series, error) {
	return rolling(returns, window, func(xs []float64) Optional {
		return Some(stat.Mean(xs, nil))
	})
}

// RollingVolatility is the moving sample standard deviation over the trailing window.
// A one-point window has no sample deviation and is undefined.
func RollingVolatility(returns Series, window int) (Series, error) {
	return rolling(returns, window, func(xs []float64) Optional {
		if len(xs) < 2 {
			return Undefined()
		}
		return Some(stat.StdDev(xs, nil))
	})
}

// RollingSharpe is the rolling mean over the rolling volatility.
// A zero volatility gives an undefined ratio.
func RollingSharpe(returns Series, window int) (Series, error) {
	return RollingExcessSharpe(returns, window, 0)
}

// RollingExcessSharpe is (rolling mean - riskFree) over the rolling volatility.
func RollingExcessSharpe(returns Series, window int, riskFree float64) (Series, error) {
	stats, err := computeRollingStats(returns, window, riskFree)
	return stats.Sharpe, err
}

// ComputeRollingStats returns the rolling mean, volatility and Sharpe ratio of returns.
func ComputeRollingStats(returns Series, window int) (RollingStats, error) {
	return computeRollingStats(returns, window, 0)
}

func computeRollingStats(returns Series, window int, riskFree float64) (RollingStats, error) {
	mean, err := RollingMean(returns, window)
	if err != nil {
		return RollingStats{}, err
	}
	vol, err := RollingVolatility(returns, window)
	if err != nil {
		return RollingStats{}, err
	}
	sharpe := Series{Dates: slices.Clone(returns.Dates), Values: make([]Optional, returns.Len())}
	for t := range sharpe.Values {
		excess := mean.Values[t]
		if m, ok := excess.Get(); ok {
			excess = Some(m - riskFree)
		}
		sharpe.Values[t] = ratio(excess, vol.Values[t])
	}
	return RollingStats{Window: window, Mean: mean, Volatility: vol, Sharpe: sharpe}, nil
}
