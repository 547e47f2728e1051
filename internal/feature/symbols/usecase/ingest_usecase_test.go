package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"securities_master/internal/feature/symbols/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ErrSource = errors.New("source unavailable")

type mockListingSource struct {
	FetchListingsFunc  func(ctx context.Context) ([]entity.Listing, error)
	FetchListingsCalls int
}

func (m *mockListingSource) FetchListings(ctx context.Context) ([]entity.Listing, error) {
	m.FetchListingsCalls++
	if m.FetchListingsFunc != nil {
		return m.FetchListingsFunc(ctx)
	}
	return nil, errors.New("FetchListingsFunc is not implemented")
}

type mockExchangeRepository struct {
	IDsByAbbrevFunc func(ctx context.Context) (map[string]uint, error)
}

func (m *mockExchangeRepository) IDsByAbbrev(ctx context.Context) (map[string]uint, error) {
	if m.IDsByAbbrevFunc != nil {
		return m.IDsByAbbrevFunc(ctx)
	}
	return map[string]uint{"NYSE": 1, "NASDAQ": 2, "CBOE": 3}, nil
}

func TestIngestUsecase_Ingest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	listings := []entity.Listing{
		{Ticker: "MMM", Exchange: "NYSE", Attributes: entity.Attributes{Name: "3M"}},
		{Ticker: "AAPL", Exchange: "NASDAQ", Attributes: entity.Attributes{Name: "Apple Inc."}},
		{Ticker: "XYZ", Exchange: "LSE", Attributes: entity.Attributes{Name: "Unknown Venue"}},
	}

	tests := []struct {
		name          string
		fetchFunc     func(ctx context.Context) ([]entity.Listing, error)
		exchangesFunc func(ctx context.Context) (map[string]uint, error)
		wantResult    Result
		wantErr       error
		validateFunc  func(t *testing.T, repo *fakeSymbolRepository)
	}{
		{
			name:       "success: listings are resolved and reconciled",
			fetchFunc:  func(ctx context.Context) ([]entity.Listing, error) { return listings, nil },
			wantResult: Result{Inserted: 3},
			validateFunc: func(t *testing.T, repo *fakeSymbolRepository) {
				s, ok := repo.get("MMM", uintPtr(1))
				require.True(t, ok)
				assert.Equal(t, "3M", s.Name)
				_, ok = repo.get("AAPL", uintPtr(2))
				assert.True(t, ok)
				_, ok = repo.get("XYZ", nil)
				assert.True(t, ok, "unknown exchange leaves exchange_id empty")
			},
		},
		{
			name:      "error: source fails before any write",
			fetchFunc: func(ctx context.Context) ([]entity.Listing, error) { return nil, ErrSource },
			wantErr:   ErrSource,
			validateFunc: func(t *testing.T, repo *fakeSymbolRepository) {
				assert.Zero(t, repo.TransactionCalls)
			},
		},
		{
			name:          "error: exchange lookup fails",
			fetchFunc:     func(ctx context.Context) ([]entity.Listing, error) { return listings, nil },
			exchangesFunc: func(ctx context.Context) (map[string]uint, error) { return nil, ErrDB },
			wantErr:       ErrDB,
			validateFunc: func(t *testing.T, repo *fakeSymbolRepository) {
				assert.Zero(t, repo.TransactionCalls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newFakeSymbolRepository()
			source := &mockListingSource{FetchListingsFunc: tt.fetchFunc}
			exchanges := &mockExchangeRepository{IDsByAbbrevFunc: tt.exchangesFunc}
			uc := NewIngestUsecase(source, exchanges, NewReconciler(repo, WithClock(func() time.Time { return now })))

			res, err := uc.Ingest(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantResult, res)
			}
			assert.Equal(t, 1, source.FetchListingsCalls)
			if tt.validateFunc != nil {
				tt.validateFunc(t, repo)
			}
		})
	}
}

func TestSymbolUsecase_ListSymbols(t *testing.T) {
	t.Parallel()

	repo := newFakeSymbolRepository()
	repo.seed(entity.Symbol{Ticker: "MMM"})
	uc := NewSymbolUsecase(repo)

	got, err := uc.ListSymbols(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MMM", got[0].Ticker)
}
