package loader

import (
	"fmt"

	"github.com/etnz/marisk"
	"github.com/etnz/marisk/date"
	"github.com/rs/zerolog/log"
)

// Align builds a dense price panel from one history per asset.
//
// The panel covers the union of all history dates, starting at the first date
// every asset has a price. Gaps are forward-filled with the last known price.
func Align(assets []string, histories []*date.History[float64]) (*marisk.Panel, error) {
	if len(assets) != len(histories) {
		return nil, fmt.Errorf("%d histories for %d assets", len(histories), len(assets))
	}
	var (
		dates  []date.Date
		rows   [][]float64
		filled int
	)
	for day := range date.Union(histories...) {
		row := make([]float64, len(histories))
		complete := true
		for j, h := range histories {
			v, ok := h.ValueAsOf(day)
			if !ok {
				complete = false
				break
			}
			if _, exact := h.Get(day); !exact {
				filled++
			}
			row[j] = v
		}
		if !complete {
			continue // some asset has not started yet
		}
		dates = append(dates, day)
		rows = append(rows, row)
	}
	if filled > 0 {
		log.Debug().Int("cells", filled).Int("dates", len(dates)).Msg("forward-filled missing prices")
	}
	return marisk.NewPanel(dates, assets, rows)
}
