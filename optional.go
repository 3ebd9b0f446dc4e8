package marisk

import (
	"encoding/json"
	"math"
	"strconv"
)

// Optional is a float64 that may be undefined.
//
// Undefined values replace the NaN a ratio would otherwise produce: a zero
// volatility, a too short window or a negative growth factor yield an
// undefined value, never a NaN. Overflows are undefined as well: an Optional
// is either undefined or finite.
type Optional struct {
	value   float64
	defined bool
}

// Some returns a defined value. NaN and ±Inf are collapsed to undefined.
func Some(v float64) Optional {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Optional{}
	}
	return Optional{value: v, defined: true}
}

// Undefined returns an undefined value.
func Undefined() Optional { return Optional{} }

// Get returns the value and whether it is defined.
func (o Optional) Get() (float64, bool) { return o.value, o.defined }

// Defined reports whether o holds a value.
func (o Optional) Defined() bool { return o.defined }

// Or returns the value if defined, def otherwise.
func (o Optional) Or(def float64) float64 {
	if !o.defined {
		return def
	}
	return o.value
}

// String formats the value in the shortest exact form, "n/a" when undefined.
func (o Optional) String() string {
	if !o.defined {
		return "n/a"
	}
	return strconv.FormatFloat(o.value, 'g', -1, 64)
}

// MarshalJSON encodes an undefined value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.defined {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as undefined and a number through Some.
func (o *Optional) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*o = Undefined()
		return nil
	}
	*o = Some(*v)
	return nil
}
