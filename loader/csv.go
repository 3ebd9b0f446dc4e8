package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
)

const dateHeader = "date"

// ReadPanel reads a CSV table: a header "date,<asset>,...", then one row per date.
//
// Empty cells are missing prices, they are forward-filled by Align. Rows may
// come in any order.
func ReadPanel(r io.Reader) (*marisk.Panel, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv: missing header")
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 || !strings.EqualFold(header[0], dateHeader) {
		return nil, fmt.Errorf("invalid csv header %q: want %q followed by asset columns", header, dateHeader)
	}
	assets := header[1:]
	histories := make([]*date.History[float64], len(assets))
	for j := range histories {
		histories[j] = new(date.History[float64])
	}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		on, err := date.Parse(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for j, cell := range record[1:] {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value for %q: %w", line, assets[j], err)
			}
			histories[j].Append(on, v)
		}
	}
	return Align(assets, histories)
}

// WritePanel writes p in the ReadPanel format.
func WritePanel(w io.Writer, p *marisk.Panel) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{dateHeader}, p.Assets()...)); err != nil {
		return err
	}
	record := make([]string, p.Width()+1)
	for t, on := range p.Dates() {
		record[0] = on.String()
		for j, v := range p.Row(t) {
			record[j+1] = formatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeries writes aligned series as CSV columns; undefined values are empty cells.
func WriteSeries(w io.Writer, names []string, series ...marisk.Series) error {
	if len(names) != len(series) {
		return fmt.Errorf("%d names for %d series", len(names), len(series))
	}
	if len(series) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{dateHeader}, names...)); err != nil {
		return err
	}
	record := make([]string, len(series)+1)
	for t, on := range series[0].Dates {
		record[0] = on.String()
		for j, s := range series {
			record[j+1] = ""
			if t < s.Len() {
				if v, ok := s.Values[t].Get(); ok {
					record[j+1] = formatFloat(v)
				}
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// LoadPanel reads a panel from a CSV file.
func LoadPanel(filename string) (*marisk.Panel, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ReadPanel(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return p, nil
}

// SavePanel writes a panel to a CSV file.
func SavePanel(filename string, p *marisk.Panel) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WritePanel(f, p); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	return f.Close()
}
