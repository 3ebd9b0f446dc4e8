package date

import (
	"iter"
	"slices"
)

// Number is the set of value types a History can hold.
type Number interface{ ~float32 | ~float64 }

// History stores a chronological series of values, each associated with a specific date.
// Dates are unique and the series is always sorted.
type History[T Number] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// search returns the position of day, and whether it is present.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append adds a point to the history.
//
// Existing value at that date is overwritten, the latest data wins.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// First returns the earliest date and value, or zero values for an empty history.
func (h *History[T]) First() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, value
	}
	return h.days[0], h.values[0]
}

// Latest returns the latest date and value, or zero values for an empty history.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, value
	}
	return h.days[last], h.values[last]
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var zero T
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return zero, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns false if the history has no value on or before that day.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}
