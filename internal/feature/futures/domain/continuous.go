package domain

import (
	"time"

	"securities_master/internal/feature/futures/domain/entity"
)

// Closes maps contract code to its close prices keyed by day.
type Closes map[string]map[time.Time]float64

// NewCloses indexes each contract's bars by day.
func NewCloses(bars map[string][]entity.Bar) Closes {
	out := make(Closes, len(bars))
	for code, bs := range bars {
		m := make(map[time.Time]float64, len(bs))
		for _, b := range bs {
			m[Day(b.Date)] = b.Close
		}
		out[code] = m
	}
	return out
}

// Continuous blends the contract closes by w. A day is kept only when every
// contract with non-zero weight has a close on it.
func Continuous(w *WeightMatrix, closes Closes) []entity.Point {
	out := make([]entity.Point, 0, len(w.Dates))
rows:
	for r, d := range w.Dates {
		var v float64
		for c, code := range w.Contracts {
			weight := w.Weights[r][c]
			if weight == 0 {
				continue
			}
			px, ok := closes[code][d]
			if !ok {
				continue rows
			}
			v += weight * px
		}
		out = append(out, entity.Point{Date: d, Value: v})
	}
	return out
}
