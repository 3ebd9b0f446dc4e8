package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/marisk"
)

// selectWeights returns the weights of a fixed-weight strategy by name.
func selectWeights(e *marisk.Engine, name string) (marisk.Weights, error) {
	weights, err := strategyWeights(e)
	if err != nil {
		return nil, err
	}
	w, ok := weights[name]
	if !ok {
		names := slices.Sorted(maps.Keys(weights))
		return nil, fmt.Errorf("unknown fixed-weight strategy %q, available: %s", name, strings.Join(names, ", "))
	}
	return w, nil
}

// optionalFloat is a float flag that knows whether it was set.
type optionalFloat struct {
	value float64
	set   bool
}

func (o *optionalFloat) String() string {
	if !o.set {
		return ""
	}
	return fmt.Sprint(o.value)
}

func (o *optionalFloat) Set(s string) error {
	if _, err := fmt.Sscan(s, &o.value); err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	o.set = true
	return nil
}

// Or returns the flag value if set, def otherwise.
func (o *optionalFloat) Or(def float64) float64 {
	if !o.set {
		return def
	}
	return o.value
}
