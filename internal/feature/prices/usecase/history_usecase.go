package usecase

import (
	"context"
	"slices"

	"securities_master/internal/feature/prices/domain/entity"
)

// HistoryRepository reads stored bars.
type HistoryRepository interface {
	// FindSymbolID returns ErrSymbolNotFound when the ticker is unknown.
	FindSymbolID(ctx context.Context, ticker string) (uint, error)
	// Latest returns up to limit bars, newest first. limit <= 0 means all.
	Latest(ctx context.Context, symbolID uint, limit int) ([]entity.DailyBar, error)
}

// HistoryUsecase serves stored price history.
type HistoryUsecase struct {
	repo HistoryRepository
}

// NewHistoryUsecase creates a HistoryUsecase.
func NewHistoryUsecase(repo HistoryRepository) *HistoryUsecase {
	return &HistoryUsecase{repo: repo}
}

// Latest validates ticker before touching the store and returns its most
// recent bars, newest first.
func (u *HistoryUsecase) Latest(ctx context.Context, ticker string, limit int) ([]entity.DailyBar, error) {
	t, err := entity.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	id, err := u.repo.FindSymbolID(ctx, t)
	if err != nil {
		return nil, err
	}
	return u.repo.Latest(ctx, id, limit)
}

// Tail returns the last n bars in ascending date order.
func (u *HistoryUsecase) Tail(ctx context.Context, ticker string, n int) ([]entity.DailyBar, error) {
	bars, err := u.Latest(ctx, ticker, n)
	if err != nil {
		return nil, err
	}
	slices.Reverse(bars)
	return bars, nil
}
