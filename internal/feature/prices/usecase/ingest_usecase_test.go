package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"securities_master/internal/feature/prices/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ErrMarketAPI = errors.New("market API error")

// mockChartSource is a mock implementation of the ChartSource interface.
type mockChartSource struct {
	DailyBarsFunc  func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error)
	DailyBarsCalls int
	Tickers        []string
}

func (m *mockChartSource) DailyBars(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
	m.DailyBarsCalls++
	m.Tickers = append(m.Tickers, ticker)
	if m.DailyBarsFunc != nil {
		return m.DailyBarsFunc(ctx, ticker, from, to)
	}
	return nil, errors.New("DailyBarsFunc is not implemented")
}

type mockSymbolSource struct {
	ListTickersFunc func(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error)
}

func (m *mockSymbolSource) ListTickers(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error) {
	if m.ListTickersFunc != nil {
		return m.ListTickersFunc(ctx, tickers)
	}
	return nil, nil
}

type mockVendorRepository struct {
	VendorIDByNameFunc func(ctx context.Context, name string) (uint, error)
}

func (m *mockVendorRepository) VendorIDByName(ctx context.Context, name string) (uint, error) {
	if m.VendorIDByNameFunc != nil {
		return m.VendorIDByNameFunc(ctx, name)
	}
	return 1, nil
}

// mockRateLimiter is a mock implementation of the RateLimiterInterface.
type mockRateLimiter struct {
	WaitIfNeededCalls int
}

func (m *mockRateLimiter) WaitIfNeeded() {
	m.WaitIfNeededCalls++
}

func TestParseErrorPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseErrorPolicy("continue")
	require.NoError(t, err)
	assert.Equal(t, ContinueOnError, p)

	p, err = ParseErrorPolicy(" ABORT ")
	require.NoError(t, err)
	assert.Equal(t, AbortOnError, p)

	_, err = ParseErrorPolicy("retry")
	assert.Error(t, err)
}

func TestIngestUsecase_IngestAll(t *testing.T) {
	t.Parallel()

	from := day(2000, 1, 1)
	to := day(2024, 6, 14)
	symbols := []entity.TickerSymbol{{ID: 1, Ticker: "MMM"}, {ID: 2, Ticker: "BRK.B"}, {ID: 3, Ticker: "AAPL"}}
	bars := []entity.DailyBar{{Date: day(2024, 6, 13), Close: 1}, {Date: day(2024, 6, 14), Close: 2}}

	tests := []struct {
		name          string
		policy        ErrorPolicy
		chartFunc     func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error)
		replaceFunc   func(ctx context.Context, records []entity.PriceRecord) error
		vendorFunc    func(ctx context.Context, name string) (uint, error)
		wantReport    IngestReport
		wantErr       error
		wantCalls     int
		wantTickers   []string
		wantWaitCalls int
	}{
		{
			name:   "success: all tickers stored",
			policy: ContinueOnError,
			chartFunc: func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
				return bars, nil
			},
			wantReport:    IngestReport{Tickers: 3, Succeeded: 3, Bars: 6},
			wantCalls:     3,
			wantTickers:   []string{"MMM", "BRK-B", "AAPL"},
			wantWaitCalls: 3,
		},
		{
			name:   "continue: failed ticker is reported and the run goes on",
			policy: ContinueOnError,
			chartFunc: func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
				if ticker == "BRK-B" {
					return nil, ErrMarketAPI
				}
				return bars, nil
			},
			wantReport:    IngestReport{Tickers: 3, Succeeded: 2, Bars: 4, Failed: []string{"BRK.B"}},
			wantErr:       ErrIngestFailures,
			wantCalls:     3,
			wantWaitCalls: 3,
		},
		{
			name:   "continue: future-dated bar fails only that ticker",
			policy: ContinueOnError,
			chartFunc: func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
				if ticker == "MMM" {
					return nil, entity.ErrFutureDate
				}
				return bars, nil
			},
			wantReport:    IngestReport{Tickers: 3, Succeeded: 2, Bars: 4, Failed: []string{"MMM"}},
			wantErr:       ErrIngestFailures,
			wantCalls:     3,
			wantWaitCalls: 3,
		},
		{
			name:   "abort: first failure stops the run",
			policy: AbortOnError,
			chartFunc: func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
				if ticker == "BRK-B" {
					return nil, ErrMarketAPI
				}
				return bars, nil
			},
			wantReport:    IngestReport{Tickers: 3, Succeeded: 1, Bars: 2, Failed: []string{"BRK.B"}},
			wantErr:       ErrMarketAPI,
			wantCalls:     2,
			wantWaitCalls: 2,
		},
		{
			name:   "abort: persistence failure stops the run",
			policy: AbortOnError,
			chartFunc: func(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error) {
				return bars, nil
			},
			replaceFunc:   func(ctx context.Context, records []entity.PriceRecord) error { return ErrDB },
			wantReport:    IngestReport{Tickers: 3, Failed: []string{"MMM"}},
			wantErr:       ErrDB,
			wantCalls:     1,
			wantWaitCalls: 1,
		},
		{
			name:       "error: vendor missing",
			policy:     ContinueOnError,
			vendorFunc: func(ctx context.Context, name string) (uint, error) { return 0, ErrVendorNotFound },
			wantErr:    ErrVendorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chart := &mockChartSource{DailyBarsFunc: tt.chartFunc}
			syms := &mockSymbolSource{ListTickersFunc: func(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error) {
				return symbols, nil
			}}
			vendors := &mockVendorRepository{VendorIDByNameFunc: tt.vendorFunc}
			rl := &mockRateLimiter{}
			uc := NewIngestUsecase(chart, syms, vendors, NewUpserter(&mockPriceRepository{ReplaceBarsFunc: tt.replaceFunc}), rl, "Yahoo Finance")

			report, err := uc.IngestAll(context.Background(), IngestOptions{From: from, To: to, Policy: tt.policy})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantReport, report)
			assert.Equal(t, tt.wantCalls, chart.DailyBarsCalls)
			assert.Equal(t, tt.wantWaitCalls, rl.WaitIfNeededCalls)
			if tt.wantTickers != nil {
				assert.Equal(t, tt.wantTickers, chart.Tickers)
			}
		})
	}
}

func TestIngestUsecase_IngestAll_PassesRangeAndFilter(t *testing.T) {
	t.Parallel()

	from := day(2024, 6, 1)
	to := day(2024, 6, 14)
	var gotFilter []string
	chart := &mockChartSource{DailyBarsFunc: func(ctx context.Context, ticker string, f, tt time.Time) ([]entity.DailyBar, error) {
		assert.Equal(t, from, f)
		assert.Equal(t, to, tt)
		return nil, nil
	}}
	syms := &mockSymbolSource{ListTickersFunc: func(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error) {
		gotFilter = tickers
		return []entity.TickerSymbol{{ID: 7, Ticker: "MMM"}}, nil
	}}
	repo := &mockPriceRepository{}
	uc := NewIngestUsecase(chart, syms, &mockVendorRepository{}, NewUpserter(repo), &mockRateLimiter{}, "Yahoo Finance")

	report, err := uc.IngestAll(context.Background(), IngestOptions{From: from, To: to, Tickers: []string{"MMM"}, Policy: ContinueOnError})

	require.NoError(t, err)
	assert.Equal(t, []string{"MMM"}, gotFilter)
	assert.Equal(t, IngestReport{Tickers: 1, Succeeded: 1}, report)
	assert.Zero(t, repo.ReplaceBarsCalls, "no bars means no write")
}

func TestIngestUsecase_IngestAll_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chart := &mockChartSource{}
	syms := &mockSymbolSource{ListTickersFunc: func(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error) {
		return []entity.TickerSymbol{{ID: 1, Ticker: "MMM"}}, nil
	}}
	uc := NewIngestUsecase(chart, syms, &mockVendorRepository{}, NewUpserter(&mockPriceRepository{}), &mockRateLimiter{}, "Yahoo Finance")

	_, err := uc.IngestAll(ctx, IngestOptions{Policy: ContinueOnError})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, chart.DailyBarsCalls)
}
