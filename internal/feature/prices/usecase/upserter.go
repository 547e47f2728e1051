package usecase

import (
	"context"
	"time"

	"securities_master/internal/feature/prices/domain/entity"
)

// PriceRepository persists daily prices.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PriceRepository interface {
	// ReplaceBars inserts each record or fully replaces the row with the
	// same (symbol_id, price_date), atomically for the whole slice.
	ReplaceBars(ctx context.Context, records []entity.PriceRecord) error
}

// Upserter writes one symbol's bars with insert-or-replace semantics.
type Upserter struct {
	repo PriceRepository
	now  func() time.Time
}

// NewUpserter creates an Upserter using the wall clock.
func NewUpserter(repo PriceRepository) *Upserter {
	return &Upserter{repo: repo, now: time.Now}
}

// Upsert stamps created_date and last_updated_date with the current time on
// every bar, replaced or new, and writes them in one transaction. When the
// input repeats a date the last bar wins. It returns the number of rows
// written.
func (u *Upserter) Upsert(ctx context.Context, vendorID, symbolID uint, bars []entity.DailyBar) (int, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	now := u.now().UTC()

	index := make(map[time.Time]int, len(bars))
	records := make([]entity.PriceRecord, 0, len(bars))
	for _, b := range bars {
		b.Date = entity.TruncateDay(b.Date)
		rec := entity.PriceRecord{
			VendorID:        vendorID,
			SymbolID:        symbolID,
			CreatedDate:     now,
			LastUpdatedDate: now,
			DailyBar:        b,
		}
		if i, dup := index[b.Date]; dup {
			records[i] = rec
			continue
		}
		index[b.Date] = len(records)
		records = append(records, rec)
	}

	if err := u.repo.ReplaceBars(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
