// Package usecase implements symbol ingestion and reconciliation.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"securities_master/internal/feature/symbols/domain/entity"
)

// ErrEmptyTicker is returned for a record without a ticker.
var ErrEmptyTicker = errors.New("symbol record has an empty ticker")

// SymbolStore reads and writes symbol rows inside one transaction.
type SymbolStore interface {
	// FindByKey returns nil, nil when no row has the natural key.
	FindByKey(ctx context.Context, ticker string, exchangeID *uint) (*entity.Symbol, error)
	Create(ctx context.Context, s *entity.Symbol) error
	Update(ctx context.Context, s *entity.Symbol) error
}

// SymbolRepository abstracts the persistence layer for symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	// Transaction runs fn in a single transaction; an error from fn rolls
	// everything back.
	Transaction(ctx context.Context, fn func(store SymbolStore) error) error
	List(ctx context.Context) ([]entity.Symbol, error)
}

// Result counts what one reconciliation pass did.
type Result struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Reconciler upserts incoming symbol records by natural key.
type Reconciler struct {
	repo   SymbolRepository
	fields []entity.Field
	now    func() time.Time
}

// ReconcilerOption customises a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithComparedFields replaces the ordered list of fields whose difference
// triggers an update.
func WithComparedFields(fields ...entity.Field) ReconcilerOption {
	return func(r *Reconciler) {
		r.fields = append([]entity.Field(nil), fields...)
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) { r.now = now }
}

// NewReconciler creates a Reconciler comparing entity.DefaultComparedFields.
func NewReconciler(repo SymbolRepository, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		repo:   repo,
		fields: entity.DefaultComparedFields,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile inserts unknown records and overwrites changed ones. The pass is
// all or nothing: the first failure rolls back every write made so far.
// Records sharing a natural key collapse to the last one before any lookup.
func (r *Reconciler) Reconcile(ctx context.Context, records []entity.Record) (Result, error) {
	if err := entity.ValidateFields(r.fields); err != nil {
		return Result{}, err
	}
	records = lastByKey(records)

	now := r.now().UTC()
	var res Result
	err := r.repo.Transaction(ctx, func(store SymbolStore) error {
		res = Result{}
		for _, rec := range records {
			if err := r.reconcileOne(ctx, store, rec, now, &res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (r *Reconciler) reconcileOne(ctx context.Context, store SymbolStore, rec entity.Record, now time.Time, res *Result) error {
	if rec.Ticker == "" {
		return ErrEmptyTicker
	}
	if rec.Currency == "" {
		rec.Currency = entity.DefaultCurrency
	}

	existing, err := store.FindByKey(ctx, rec.Ticker, rec.ExchangeID)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", rec.Ticker, err)
	}

	if existing == nil {
		instrument := rec.Instrument
		if instrument == "" {
			instrument = entity.DefaultInstrument
		}
		s := &entity.Symbol{
			Ticker:          rec.Ticker,
			ExchangeID:      rec.ExchangeID,
			Instrument:      instrument,
			Attributes:      rec.Attributes,
			CreatedDate:     now,
			LastUpdatedDate: now,
		}
		if err := store.Create(ctx, s); err != nil {
			return fmt.Errorf("insert %s: %w", rec.Ticker, err)
		}
		res.Inserted++
		return nil
	}

	field, changed, err := entity.FirstDifference(existing.Attributes, rec.Attributes, r.fields)
	if err != nil {
		return err
	}
	if !changed {
		res.Unchanged++
		return nil
	}

	slog.Debug("symbol changed", "ticker", rec.Ticker, "field", field)
	existing.Attributes = rec.Attributes
	existing.LastUpdatedDate = now
	if err := store.Update(ctx, existing); err != nil {
		return fmt.Errorf("update %s: %w", rec.Ticker, err)
	}
	res.Updated++
	return nil
}

type naturalKey struct {
	ticker     string
	exchangeID uint
	hasExch    bool
}

// lastByKey keeps the last record for each (ticker, exchange) key, in the
// position of the key's first appearance.
func lastByKey(records []entity.Record) []entity.Record {
	index := make(map[naturalKey]int, len(records))
	out := make([]entity.Record, 0, len(records))
	for _, rec := range records {
		k := naturalKey{ticker: rec.Ticker}
		if rec.ExchangeID != nil {
			k.exchangeID, k.hasExch = *rec.ExchangeID, true
		}
		if i, ok := index[k]; ok {
			out[i] = rec
			continue
		}
		index[k] = len(out)
		out = append(out, rec)
	}
	return out
}
