package marisk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPanel reports a panel whose shape, dates, assets or cells break the panel invariants.
	ErrInvalidPanel = errors.New("invalid panel")
	// ErrNonPositivePrice reports a price that cannot produce a log return.
	ErrNonPositivePrice = errors.New("non-positive price")
	// ErrInsufficientData reports a panel too short for the requested computation.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidWindow reports a rolling window out of its domain.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrDegenerateCovariance reports a covariance whose pseudo-inverse cannot be normalized into weights.
	ErrDegenerateCovariance = errors.New("degenerate covariance")
)

// UnknownAssetError reports an asset identifier absent from a panel.
type UnknownAssetError struct {
	Asset string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("unknown asset %q", e.Asset)
}

// ShapeMismatchError reports a weight vector whose length differs from the asset count.
type ShapeMismatchError struct {
	Want, Got int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: want %d columns, got %d", e.Want, e.Got)
}
