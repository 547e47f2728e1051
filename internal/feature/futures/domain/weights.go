package domain

import (
	"fmt"
	"time"
)

// WeightMatrix holds one row per business day and one column per contract.
type WeightMatrix struct {
	Dates     []time.Time
	Contracts []string
	Weights   [][]float64 // [date][contract]

	rows map[time.Time]int
}

// Weight returns the weight of contract on date, or 0 when either is absent.
func (w *WeightMatrix) Weight(date time.Time, contract string) float64 {
	r, ok := w.rows[Day(date)]
	if !ok {
		return 0
	}
	for c, name := range w.Contracts {
		if name == contract {
			return w.Weights[r][c]
		}
	}
	return 0
}

// Linspace returns n evenly spaced values from lo to hi inclusive. A single
// point is lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// BuildWeights lays out roll weights over the business days from start to
// the last contract's expiry.
//
// Each contract holds weight 1 from the previous expiry up to the business
// day before its own expiry. Over the rolloverDays+1 business days ending on
// that day its weight ramps linearly from 1 to 0 while the next contract
// ramps from 0 to 1. The last contract keeps weight 1 to the end.
func BuildWeights(start time.Time, expiries map[string]time.Time, contracts []string, rolloverDays int) (*WeightMatrix, error) {
	if len(contracts) == 0 {
		return nil, ErrNoContracts
	}
	if rolloverDays < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRollover, rolloverDays)
	}
	ex := make([]time.Time, len(contracts))
	for i, c := range contracts {
		e, ok := expiries[c]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingExpiry, c)
		}
		ex[i] = Day(e)
		if i > 0 && !ex[i].After(ex[i-1]) {
			return nil, fmt.Errorf("%w: %s (%s) after %s (%s)", ErrExpiryOrder,
				c, ex[i].Format(time.DateOnly), contracts[i-1], ex[i-1].Format(time.DateOnly))
		}
	}
	last := ex[len(ex)-1]
	if Day(start).After(last) {
		return nil, fmt.Errorf("%w: %s > %s", ErrStartAfterExpiry, Day(start).Format(time.DateOnly), last.Format(time.DateOnly))
	}

	dates := BusinessDays(start, last)
	w := &WeightMatrix{
		Dates:     dates,
		Contracts: append([]string(nil), contracts...),
		Weights:   make([][]float64, len(dates)),
		rows:      make(map[time.Time]int, len(dates)),
	}
	for i, d := range dates {
		w.Weights[i] = make([]float64, len(contracts))
		w.rows[d] = i
	}

	ramp := Linspace(0, 1, rolloverDays+1)
	from := Day(start)
	for i := range contracts {
		if i == len(contracts)-1 {
			w.fill(i, from, last)
			break
		}

		lastFull := PrevBusinessDay(ex[i])
		w.fill(i, from, lastFull)

		window := BusinessDaysEnding(lastFull, rolloverDays+1)
		if i > 0 && window[0].Before(ex[i-1]) {
			return nil, fmt.Errorf("%w: %s rolls from %s but %s expires %s", ErrOverlappingRoll,
				contracts[i], window[0].Format(time.DateOnly), contracts[i-1], ex[i-1].Format(time.DateOnly))
		}
		for k, d := range window {
			r, ok := w.rows[d]
			if !ok {
				continue
			}
			w.Weights[r][i] = 1 - ramp[k]
			w.Weights[r][i+1] = ramp[k]
		}
		from = ex[i]
	}
	return w, nil
}

// fill sets contract column c to 1 on every row in [from, to].
func (w *WeightMatrix) fill(c int, from, to time.Time) {
	for r, d := range w.Dates {
		if d.Before(from) || d.After(to) {
			continue
		}
		w.Weights[r][c] = 1
	}
}
