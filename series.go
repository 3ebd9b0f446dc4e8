package marisk

import (
	"slices"

	"github.com/etnz/marisk/date"
)

// Series is a sequence of possibly undefined values aligned to trading dates.
type Series struct {
	Dates  []date.Date
	Values []Optional
}

// NewSeries returns a series where every value is defined.
func NewSeries(dates []date.Date, values []float64) Series {
	s := Series{Dates: slices.Clone(dates), Values: make([]Optional, len(values))}
	for i, v := range values {
		s.Values[i] = Some(v)
	}
	return s
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Values) }

// Defined returns the defined values, in date order.
func (s Series) Defined() []float64 {
	values := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if x, ok := v.Get(); ok {
			values = append(values, x)
		}
	}
	return values
}

// TrimUndefined returns the series without its undefined points.
func (s Series) TrimUndefined() Series {
	var r Series
	for i, v := range s.Values {
		if v.Defined() {
			r.Dates = append(r.Dates, s.Dates[i])
			r.Values = append(r.Values, v)
		}
	}
	return r
}

// Last returns the last point of the series.
func (s Series) Last() (date.Date, Optional) {
	if len(s.Values) == 0 {
		return date.Date{}, Undefined()
	}
	return s.Dates[len(s.Dates)-1], s.Values[len(s.Values)-1]
}

// SimpleReturns converts a value series into period returns v[t]/v[t-1]-1.
//
// The first return is 0. A return from or to an undefined value, or from a
// zero value, is 0 as well.
func (s Series) SimpleReturns() Series {
	r := Series{Dates: slices.Clone(s.Dates), Values: make([]Optional, len(s.Values))}
	for t := range s.Values {
		r.Values[t] = Some(0)
		if t == 0 {
			continue
		}
		prev, ok1 := s.Values[t-1].Get()
		cur, ok2 := s.Values[t].Get()
		if ok1 && ok2 && prev != 0 {
			r.Values[t] = Some(cur/prev - 1)
		}
	}
	return r
}
