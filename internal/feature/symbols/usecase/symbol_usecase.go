package usecase

import (
	"context"

	"securities_master/internal/feature/symbols/domain/entity"
)

// SymbolUsecase serves read access to stored symbols.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListSymbols returns every stored symbol ordered by ticker.
func (u *SymbolUsecase) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.List(ctx)
}
