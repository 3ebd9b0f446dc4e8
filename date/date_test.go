package date

import (
	"encoding/json"
	"slices"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2024, time.December, 32)
	if want := New(2025, time.January, 1); got != want {
		t.Errorf("New(2024, 12, 32) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, 7, 1), false},
		{"2025-7-1", New(2025, 7, 1), false},
		{"2025/07/01", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	d := New(2020, 1, 2)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2020-01-02"` {
		t.Errorf("Marshal() = %s, want %q", data, "2020-01-02")
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}
}

func TestUnion(t *testing.T) {
	a := new(History[float64]).Append(New(2025, 1, 1), 1).Append(New(2025, 1, 3), 3)
	b := new(History[float64]).Append(New(2025, 1, 2), 2).Append(New(2025, 1, 3), 3)

	got := slices.Collect(Union(a, b))
	want := []Date{New(2025, 1, 1), New(2025, 1, 2), New(2025, 1, 3)}
	if !slices.Equal(got, want) {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}

func TestRange(t *testing.T) {
	r, err := ParseRange("2025-01-02", "2025-01-04")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	for day, want := range map[Date]bool{
		New(2025, 1, 1): false,
		New(2025, 1, 2): true,
		New(2025, 1, 4): true,
		New(2025, 1, 5): false,
	} {
		if got := r.Contains(day); got != want {
			t.Errorf("%v.Contains(%v) = %v, want %v", r, day, got, want)
		}
	}

	open := Range{}
	if !open.Contains(New(1900, 1, 1)) {
		t.Errorf("open range should contain every date")
	}

	if _, err := ParseRange("2025-01-04", "2025-01-02"); err == nil {
		t.Errorf("ParseRange() with end before start: want error")
	}
}
