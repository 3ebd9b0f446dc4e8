// Package date provides a day-granularity Date and the date-indexed series built on it.
package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// Format is the ISO-8601 layout used to write dates.
const Format = "2006-01-02"

// Date represents a trading date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalText lets dates be read from YAML and flag values.
func (d *Date) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// iterate returns an iterator over all unique, sorted dates from multiple sorted series of dates.
func iterate(series ...[]Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		indexes := make([]int, len(series))
		for {
			var m Date
			found := false
			for i, index := range indexes {
				if index < len(series[i]) {
					if on := series[i][index]; !found || on.Before(m) {
						m, found = on, true
					}
				}
			}
			if !found {
				return
			}
			// consume every head equal to the min
			for i, index := range indexes {
				if index < len(series[i]) && series[i][index] == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Union returns an iterator over all unique dates of the histories, in chronological order.
func Union[T Number](histories ...*History[T]) iter.Seq[Date] {
	dates := make([][]Date, 0, len(histories))
	for _, h := range histories {
		dates = append(dates, h.days)
	}
	return iterate(dates...)
}
