package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"securities_master/internal/feature/symbols/domain/entity"
)

// ListingSource は現在の構成銘柄表を取得します。
type ListingSource interface {
	FetchListings(ctx context.Context) ([]entity.Listing, error)
}

// ExchangeRepository は取引所の略称からIDを解決します。
type ExchangeRepository interface {
	IDsByAbbrev(ctx context.Context) (map[string]uint, error)
}

// IngestUsecase は構成銘柄表を取得し、銘柄テーブルへ反映するユースケースです。
type IngestUsecase struct {
	source     ListingSource
	exchanges  ExchangeRepository
	reconciler *Reconciler
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(source ListingSource, exchanges ExchangeRepository, reconciler *Reconciler) *IngestUsecase {
	return &IngestUsecase{source: source, exchanges: exchanges, reconciler: reconciler}
}

// Ingest は取り込みを1回実行します。
// 取得または解析に失敗した場合は書き込み前に中断します。
func (u *IngestUsecase) Ingest(ctx context.Context) (Result, error) {
	listings, err := u.source.FetchListings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch listings: %w", err)
	}
	slog.Info("fetched listings", "count", len(listings))

	ids, err := u.exchanges.IDsByAbbrev(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load exchanges: %w", err)
	}

	records := make([]entity.Record, 0, len(listings))
	for _, l := range listings {
		records = append(records, toRecord(l, ids))
	}

	res, err := u.reconciler.Reconcile(ctx, records)
	if err != nil {
		return Result{}, fmt.Errorf("failed to reconcile symbols: %w", err)
	}
	slog.Info("symbols reconciled", "inserted", res.Inserted, "updated", res.Updated, "unchanged", res.Unchanged)
	return res, nil
}

func toRecord(l entity.Listing, ids map[string]uint) entity.Record {
	rec := entity.Record{
		Ticker:     l.Ticker,
		Instrument: entity.DefaultInstrument,
		Attributes: l.Attributes,
	}
	if id, ok := ids[l.Exchange]; ok {
		rec.ExchangeID = &id
	} else {
		slog.Warn("unknown exchange, storing symbol without one", "ticker", l.Ticker, "exchange", l.Exchange)
	}
	return rec
}
