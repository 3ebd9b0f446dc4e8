package date

import "fmt"

// Range represents an inclusive range of dates. A zero bound is open.
type Range struct{ From, To Date }

// Contains reports whether day is within the range (boundaries included).
func (r Range) Contains(day Date) bool {
	if !r.From.IsZero() && day.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && day.After(r.To) {
		return false
	}
	return true
}

// String returns "from..to", with empty open bounds.
func (r Range) String() string {
	var from, to string
	if !r.From.IsZero() {
		from = r.From.String()
	}
	if !r.To.IsZero() {
		to = r.To.String()
	}
	return fmt.Sprintf("%s..%s", from, to)
}

// ParseRange reads a range from two optional date strings.
func ParseRange(from, to string) (r Range, err error) {
	if from != "" {
		if r.From, err = Parse(from); err != nil {
			return r, err
		}
	}
	if to != "" {
		if r.To, err = Parse(to); err != nil {
			return r, err
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, fmt.Errorf("invalid range %s: end before start", r)
	}
	return r, nil
}
