package adapters

import (
	"context"

	"securities_master/internal/feature/symbols/usecase"
	"securities_master/internal/platform/db"

	"gorm.io/gorm"
)

type exchangeGorm struct {
	db *gorm.DB
}

var _ usecase.ExchangeRepository = (*exchangeGorm)(nil)

// NewExchangeRepository creates a repository over the exchange table.
func NewExchangeRepository(gdb *gorm.DB) *exchangeGorm {
	return &exchangeGorm{db: gdb}
}

// IDsByAbbrev returns every exchange id keyed by abbreviation.
func (r *exchangeGorm) IDsByAbbrev(ctx context.Context) (map[string]uint, error) {
	var rows []db.Exchange
	if err := r.db.WithContext(ctx).Select("id", "abbrev").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(rows))
	for _, e := range rows {
		ids[e.Abbrev] = e.ID
	}
	return ids, nil
}
