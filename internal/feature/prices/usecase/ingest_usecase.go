package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"securities_master/internal/feature/prices/domain/entity"
	"securities_master/internal/shared/ratelimiter"
)

// ChartSource は外部の相場サービスから日足を取得します。
type ChartSource interface {
	DailyBars(ctx context.Context, ticker string, from, to time.Time) ([]entity.DailyBar, error)
}

// SymbolSource は取り込み対象の銘柄を列挙します。フィルタが空の場合は全銘柄です。
type SymbolSource interface {
	ListTickers(ctx context.Context, tickers []string) ([]entity.TickerSymbol, error)
}

// VendorRepository はデータベンダー名からIDを解決します。
type VendorRepository interface {
	VendorIDByName(ctx context.Context, name string) (uint, error)
}

// ErrorPolicy は1銘柄の失敗時に残りの処理をどうするかを決めます。
type ErrorPolicy string

const (
	// ContinueOnError は失敗をログに記録し、次の銘柄へ進みます。
	ContinueOnError ErrorPolicy = "continue"
	// AbortOnError は最初に失敗した銘柄で処理を中断します。
	AbortOnError ErrorPolicy = "abort"
)

// ParseErrorPolicy は "continue" または "abort" を受け付けます。
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ContinueOnError, AbortOnError:
		return p, nil
	default:
		return "", fmt.Errorf("unknown error policy %q", s)
	}
}

// IngestOptions は1回の取り込み処理の範囲を指定します。
type IngestOptions struct {
	From    time.Time
	To      time.Time
	Tickers []string
	Policy  ErrorPolicy
}

// IngestReport は1回の取り込み結果の集計です。
type IngestReport struct {
	Tickers   int
	Succeeded int
	Bars      int
	Failed    []string
}

// IngestUsecase は外部サイトから日足を取得し、データベースに永続化するユースケースです。
type IngestUsecase struct {
	chart       ChartSource
	symbols     SymbolSource
	vendors     VendorRepository
	upserter    *Upserter
	rateLimiter ratelimiter.RateLimiterInterface
	vendorName  string
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(chart ChartSource, symbols SymbolSource, vendors VendorRepository, upserter *Upserter,
	rateLimiter ratelimiter.RateLimiterInterface, vendorName string) *IngestUsecase {
	return &IngestUsecase{
		chart:       chart,
		symbols:     symbols,
		vendors:     vendors,
		upserter:    upserter,
		rateLimiter: rateLimiter,
		vendorName:  vendorName,
	}
}

// ingestOne は1銘柄の日足を取得し、一括で挿入（または置換）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, vendorID uint, sym entity.TickerSymbol, from, to time.Time) (int, error) {
	bars, err := iu.chart.DailyBars(ctx, entity.VendorTicker(sym.Ticker), from, to)
	if err != nil {
		return 0, err
	}
	return iu.upserter.Upsert(ctx, vendorID, sym.ID, bars)
}

// IngestAll は対象の全銘柄について日足を1銘柄ずつ取得・保存します。
// リクエスト間はレートリミッターで待機します。
// ContinueOnError の場合は失敗しても最後まで処理し、最後に ErrIngestFailures を返します。
// AbortOnError の場合は最初の失敗をそのまま返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, opts IngestOptions) (IngestReport, error) {
	var report IngestReport

	vendorID, err := iu.vendors.VendorIDByName(ctx, iu.vendorName)
	if err != nil {
		return report, fmt.Errorf("failed to resolve vendor %q: %w", iu.vendorName, err)
	}
	symbols, err := iu.symbols.ListTickers(ctx, opts.Tickers)
	if err != nil {
		return report, fmt.Errorf("failed to load symbols: %w", err)
	}
	report.Tickers = len(symbols)

	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		iu.rateLimiter.WaitIfNeeded()

		n, err := iu.ingestOne(ctx, vendorID, s, opts.From, opts.To)
		if err != nil {
			slog.Error("failed to ingest prices", "ticker", s.Ticker, "symbol_id", s.ID, "error", err)
			report.Failed = append(report.Failed, s.Ticker)
			if opts.Policy == AbortOnError {
				return report, fmt.Errorf("ingest %s: %w", s.Ticker, err)
			}
			continue
		}
		slog.Info("prices stored", "ticker", s.Ticker, "symbol_id", s.ID, "bars", n)
		report.Succeeded++
		report.Bars += n
	}

	if len(report.Failed) > 0 {
		return report, fmt.Errorf("%w: %d of %d tickers (%s)",
			ErrIngestFailures, len(report.Failed), report.Tickers, strings.Join(report.Failed, ", "))
	}
	return report, nil
}
