package marisk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Weights is a portfolio allocation aligned to the panel columns.
//
// Weights are expected to sum to 1, but minimum-variance weights may be
// negative or above 1: short and leveraged positions are allowed.
type Weights []float64

// Sum returns the total allocation.
func (w Weights) Sum() float64 {
	var s float64
	for _, x := range w {
		s += x
	}
	return s
}

func (w Weights) dot(row []float64) float64 {
	var v float64
	for j, x := range w {
		v += x * row[j]
	}
	return v
}

// EqualWeight allocates 1/n to each of n assets.
func EqualWeight(n int) Weights {
	w := make(Weights, n)
	for j := range w {
		w[j] = 1 / float64(n)
	}
	return w
}

// Shares of the 60/40 fixed mix.
const (
	EquityShare = 0.6
	BondShare   = 0.4
)

// FixedMix splits EquityShare evenly across the equity columns and BondShare across the bond columns.
//
// Other columns get 0. Overlapping groups are the caller's responsibility: the
// bond share wins on shared columns.
func FixedMix(n int, equity, bond []int) (Weights, error) {
	w := make(Weights, n)
	for _, group := range []struct {
		columns []int
		share   float64
	}{{equity, EquityShare}, {bond, BondShare}} {
		for _, j := range group.columns {
			if j < 0 || j >= n {
				return nil, &UnknownAssetError{Asset: fmt.Sprintf("#%d", j)}
			}
			w[j] = group.share / float64(len(group.columns))
		}
	}
	return w, nil
}

// MinVarianceWeights returns the unconstrained global minimum-variance weights of the return panel:
//
//	w = Σ⁺·1 / (1ᵗ·Σ⁺·1)
//
// where Σ⁺ is the pseudo-inverse of the sample covariance. Nothing guards
// against ill-conditioned covariances (near-collinear assets, short histories)
// beyond the pseudo-inverse: extreme weights are a legitimate outcome.
func MinVarianceWeights(returns *Panel) (Weights, error) {
	if returns.Width() == 0 {
		return nil, fmt.Errorf("%w: no asset", ErrInsufficientData)
	}
	if returns.Len() < 2 {
		return nil, fmt.Errorf("%w: %d observations for a covariance", ErrInsufficientData, returns.Len())
	}
	return minVariance(returns.matrix(0, returns.Len()))
}

// minVariance computes the minimum-variance weights of observations x (rows are dates).
func minVariance(x mat.Matrix) (Weights, error) {
	_, n := x.Dims()
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, nil)

	inv, err := pinv(&cov)
	if err != nil {
		return nil, err
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	one := mat.NewVecDense(n, ones)
	var u mat.VecDense
	u.MulVec(inv, one)
	denom := mat.Dot(one, &u)
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return nil, fmt.Errorf("%w: 1ᵗΣ⁺1 = %v", ErrDegenerateCovariance, denom)
	}
	w := make(Weights, n)
	for i := range w {
		w[i] = u.AtVec(i) / denom
	}
	return w, nil
}

// pinvRcond is the relative cutoff below which singular values are treated as zero.
const pinvRcond = 1e-15

// pinv returns the Moore-Penrose pseudo-inverse of a through its singular value decomposition.
func pinv(a mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: singular value decomposition failed", ErrDegenerateCovariance)
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var cutoff float64
	if len(values) > 0 {
		cutoff = pinvRcond * values[0] // values are in decreasing order
	}
	// scale the columns of V by 1/σ, dropping the negligible ones
	r, c := v.Dims()
	for j := 0; j < c; j++ {
		s := 0.0
		if values[j] > cutoff {
			s = 1 / values[j]
		}
		for i := 0; i < r; i++ {
			v.Set(i, j, v.At(i, j)*s)
		}
	}
	var inv mat.Dense
	inv.Mul(&v, u.T())
	return &inv, nil
}
