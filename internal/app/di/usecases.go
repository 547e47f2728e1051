package di

import (
	"securities_master/internal/feature/futures/adapters/store"
	futuresyahoo "securities_master/internal/feature/futures/adapters/yahoo"
	futuresusecase "securities_master/internal/feature/futures/usecase"
	priceadapters "securities_master/internal/feature/prices/adapters"
	pricehandler "securities_master/internal/feature/prices/transport/handler"
	priceusecase "securities_master/internal/feature/prices/usecase"
	symboladapters "securities_master/internal/feature/symbols/adapters"
	symbolhandler "securities_master/internal/feature/symbols/transport/handler"
	symbolusecase "securities_master/internal/feature/symbols/usecase"
	"securities_master/internal/platform/config"
	"securities_master/internal/platform/http/handler"
	"securities_master/internal/shared/ratelimiter"

	"gorm.io/gorm"
)

// NewSymbolIngest wires the scraper, the exchange lookup and the reconciler.
func NewSymbolIngest(gdb *gorm.DB, cfg *config.Config) *symbolusecase.IngestUsecase {
	reconciler := symbolusecase.NewReconciler(symboladapters.NewSymbolRepository(gdb))
	return symbolusecase.NewIngestUsecase(NewListingClient(cfg), symboladapters.NewExchangeRepository(gdb), reconciler)
}

// NewPriceIngest wires the chart client, the price store and the throttle.
func NewPriceIngest(gdb *gorm.DB, cfg *config.Config) *priceusecase.IngestUsecase {
	repo := priceadapters.NewPriceRepository(gdb)
	return priceusecase.NewIngestUsecase(
		NewChartClient(cfg),
		repo,
		repo,
		priceusecase.NewUpserter(repo),
		ratelimiter.NewRateLimiter(cfg.Prices.MinDelay, cfg.Prices.MaxDelay),
		cfg.Prices.Vendor,
	)
}

// NewHistory creates the stored price reader.
func NewHistory(gdb *gorm.DB) *priceusecase.HistoryUsecase {
	return priceusecase.NewHistoryUsecase(priceadapters.NewPriceRepository(gdb))
}

// NewContinuous wires contract downloads to the parquet store.
func NewContinuous(cfg *config.Config) *futuresusecase.ContinuousUsecase {
	source := futuresyahoo.NewSource(NewChartClient(cfg), cfg.Futures.Exchange)
	return futuresusecase.NewContinuousUsecase(
		source,
		store.NewParquetStore(cfg.Futures.DataDir),
		ratelimiter.NewRateLimiter(cfg.Prices.MinDelay, cfg.Prices.MaxDelay),
	)
}

// Handlers groups the HTTP handlers of the read API.
type Handlers struct {
	Health  *handler.HealthHandler
	Symbols *symbolhandler.SymbolHandler
	Prices  *pricehandler.PriceHandler
}

// NewHandlers builds the read API handlers on one database handle.
func NewHandlers(gdb *gorm.DB) (*Handlers, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		Health:  handler.NewHealthHandler(sqlDB),
		Symbols: symbolhandler.NewSymbolHandler(symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolRepository(gdb))),
		Prices:  pricehandler.NewPriceHandler(NewHistory(gdb)),
	}, nil
}
