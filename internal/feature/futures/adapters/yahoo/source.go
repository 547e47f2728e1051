// Package yahoo adapts the Yahoo chart client to futures contracts.
package yahoo

import (
	"context"
	"time"

	"securities_master/internal/feature/futures/domain"
	"securities_master/internal/feature/futures/domain/entity"
	"securities_master/internal/feature/futures/usecase"
	pentity "securities_master/internal/feature/prices/domain/entity"
)

// historyYears is how far before expiry a contract's history is requested.
const historyYears = 2

// ChartSource is satisfied by the prices Yahoo client.
type ChartSource interface {
	DailyBars(ctx context.Context, ticker string, from, to time.Time) ([]pentity.DailyBar, error)
}

// Source fetches contract bars using tickers such as ESZ24.CME.
type Source struct {
	chart    ChartSource
	exchange string
	now      func() time.Time
}

var _ usecase.ContractSource = (*Source)(nil)

// NewSource creates a Source for contracts listed on exchange.
func NewSource(chart ChartSource, exchange string) *Source {
	return &Source{chart: chart, exchange: exchange, now: time.Now}
}

// ContractBars requests the two years before expiry, capped at today. A
// contract that has not started trading yet has no bars.
func (s *Source) ContractBars(ctx context.Context, c domain.Contract) ([]entity.Bar, error) {
	expiry := c.ApproxExpiry()
	now := domain.Day(s.now())
	from := expiry.AddDate(-historyYears, 0, 0)
	if from.After(now) {
		return nil, nil
	}
	to := expiry.AddDate(0, 1, 0)
	if to.After(now) {
		to = now
	}

	daily, err := s.chart.DailyBars(ctx, c.YahooTicker(s.exchange), from, to)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Bar, 0, len(daily))
	for _, d := range daily {
		out = append(out, entity.Bar{
			Date:   d.Date,
			Open:   d.Open,
			High:   d.High,
			Low:    d.Low,
			Close:  d.Close,
			Volume: d.Volume,
		})
	}
	return out, nil
}
