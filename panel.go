package marisk

import (
	"fmt"
	"math"
	"slices"

	"github.com/etnz/marisk/date"
	"gonum.org/v1/gonum/mat"
)

// Panel is a dense table of values indexed by trading dates (rows) and asset identifiers (columns).
//
// A Panel is immutable: NewPanel copies its inputs and accessors return copies,
// so a panel can be shared between computations without any locking.
type Panel struct {
	dates  []date.Date
	assets []string
	index  map[string]int
	cells  []float64 // row major, len(dates)*len(assets)
}

// NewPanel creates a panel from rows aligned to dates and assets.
//
// Dates must be strictly increasing, assets unique and non-empty, every row
// must have one finite cell per asset.
func NewPanel(dates []date.Date, assets []string, rows [][]float64) (*Panel, error) {
	if len(rows) != len(dates) {
		return nil, fmt.Errorf("%w: %d rows for %d dates", ErrInvalidPanel, len(rows), len(dates))
	}
	p := &Panel{
		dates:  slices.Clone(dates),
		assets: slices.Clone(assets),
		index:  make(map[string]int, len(assets)),
		cells:  make([]float64, 0, len(dates)*len(assets)),
	}
	for j, a := range assets {
		if a == "" {
			return nil, fmt.Errorf("%w: empty asset identifier in column %d", ErrInvalidPanel, j)
		}
		if _, dup := p.index[a]; dup {
			return nil, fmt.Errorf("%w: duplicate asset %q", ErrInvalidPanel, a)
		}
		p.index[a] = j
	}
	for t, row := range rows {
		if t > 0 && !dates[t-1].Before(dates[t]) {
			return nil, fmt.Errorf("%w: date %v does not follow %v", ErrInvalidPanel, dates[t], dates[t-1])
		}
		if len(row) != len(assets) {
			return nil, fmt.Errorf("%w: row %v has %d cells for %d assets", ErrInvalidPanel, dates[t], len(row), len(assets))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: missing value for %q on %v", ErrInvalidPanel, assets[j], dates[t])
			}
		}
		p.cells = append(p.cells, row...)
	}
	return p, nil
}

// Len returns the number of dates.
func (p *Panel) Len() int { return len(p.dates) }

// Width returns the number of assets.
func (p *Panel) Width() int { return len(p.assets) }

// Dates returns the row dates.
func (p *Panel) Dates() []date.Date { return slices.Clone(p.dates) }

// Assets returns the column identifiers, in column order.
func (p *Panel) Assets() []string { return slices.Clone(p.assets) }

// Index returns the column of asset.
func (p *Panel) Index(asset string) (int, bool) {
	j, ok := p.index[asset]
	return j, ok
}

// Has reports whether asset is a column of the panel.
func (p *Panel) Has(asset string) bool {
	_, ok := p.index[asset]
	return ok
}

// At returns the cell at row t and column j.
func (p *Panel) At(t, j int) float64 { return p.cells[t*len(p.assets)+j] }

// row returns the internal row t, callers must not modify it.
func (p *Panel) row(t int) []float64 {
	w := len(p.assets)
	return p.cells[t*w : (t+1)*w : (t+1)*w]
}

// Row returns a copy of row t.
func (p *Panel) Row(t int) []float64 { return slices.Clone(p.row(t)) }

// Column returns a copy of the column of asset.
func (p *Panel) Column(asset string) ([]float64, error) {
	j, ok := p.index[asset]
	if !ok {
		return nil, &UnknownAssetError{Asset: asset}
	}
	col := make([]float64, len(p.dates))
	for t := range col {
		col[t] = p.At(t, j)
	}
	return col, nil
}

// Between returns the rows within r.
func (p *Panel) Between(r date.Range) *Panel {
	from := slices.IndexFunc(p.dates, r.Contains)
	if from < 0 {
		return p.slice(0, 0)
	}
	to := from
	for to < len(p.dates) && r.Contains(p.dates[to]) {
		to++
	}
	return p.slice(from, to)
}

// slice returns rows [from, to). The result shares the immutable cells.
func (p *Panel) slice(from, to int) *Panel {
	w := len(p.assets)
	return &Panel{
		dates:  p.dates[from:to:to],
		assets: p.assets,
		index:  p.index,
		cells:  p.cells[from*w : to*w : to*w],
	}
}

// mapColumns returns a copy of the panel where each column j is transformed by f.
func (p *Panel) mapColumns(f func(j int, v float64) float64) *Panel {
	q := &Panel{dates: p.dates, assets: p.assets, index: p.index, cells: make([]float64, len(p.cells))}
	w := len(p.assets)
	for i, v := range p.cells {
		q.cells[i] = f(i%w, v)
	}
	return q
}

// matrix returns rows [from, to) as a gonum matrix sharing the panel cells.
// Callers must not modify it.
func (p *Panel) matrix(from, to int) mat.Matrix {
	w := len(p.assets)
	return mat.NewDense(to-from, w, p.cells[from*w:to*w:to*w])
}

// LogReturns derives the return panel r[t,a] = ln(p[t,a]/p[t-1,a]).
//
// The first row has no prior price and is 0 by convention.
func (p *Panel) LogReturns() (*Panel, error) {
	for t := range p.dates {
		for j, v := range p.row(t) {
			if v <= 0 {
				return nil, fmt.Errorf("%w: %q is %v on %v", ErrNonPositivePrice, p.assets[j], v, p.dates[t])
			}
		}
	}
	w := len(p.assets)
	r := &Panel{dates: p.dates, assets: p.assets, index: p.index, cells: make([]float64, len(p.cells))}
	for i := w; i < len(p.cells); i++ {
		r.cells[i] = math.Log(p.cells[i] / p.cells[i-w])
	}
	return r, nil
}

// sameShape reports whether q has the same dates and assets as p.
func (p *Panel) sameShape(q *Panel) bool {
	return slices.Equal(p.dates, q.dates) && slices.Equal(p.assets, q.assets)
}
