// Package usecase builds continuous futures series from downloaded contracts.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"securities_master/internal/feature/futures/domain"
	"securities_master/internal/feature/futures/domain/entity"
	"securities_master/internal/shared/ratelimiter"
)

var (
	// ErrContractDataMissing is returned when a contract has no stored bars.
	ErrContractDataMissing = errors.New("no stored bars for contract")

	// ErrUnknownContract is returned for an expiry override naming a
	// contract outside the requested list.
	ErrUnknownContract = errors.New("expiry given for a contract that is not requested")

	// ErrNoContractData is returned when none of the contracts has any bar.
	ErrNoContractData = errors.New("no contract has any bars")
)

// ContractSource downloads daily bars of one contract.
type ContractSource interface {
	ContractBars(ctx context.Context, contract domain.Contract) ([]entity.Bar, error)
}

// BarStore keeps downloaded bars between runs.
type BarStore interface {
	WriteBars(ctx context.Context, contract string, bars []entity.Bar) error
	ReadBars(ctx context.Context, contract string) ([]entity.Bar, error)
}

// BuildRequest describes one continuous series.
type BuildRequest struct {
	// Contracts are ordered earliest expiry first.
	Contracts []string
	// Expiries overrides the approximate expiry of individual contracts.
	Expiries map[string]time.Time
	// Start defaults to the earliest stored bar.
	Start        time.Time
	RolloverDays int
	// Offline skips the download and reads only stored bars.
	Offline bool
}

// BuildResult carries the roll weights and the blended series.
type BuildResult struct {
	Weights *domain.WeightMatrix
	Series  []entity.Point
}

// ContinuousUsecase downloads contracts and blends them into one series.
type ContinuousUsecase struct {
	source      ContractSource
	store       BarStore
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewContinuousUsecase creates a ContinuousUsecase.
func NewContinuousUsecase(source ContractSource, store BarStore, rateLimiter ratelimiter.RateLimiterInterface) *ContinuousUsecase {
	return &ContinuousUsecase{source: source, store: store, rateLimiter: rateLimiter}
}

// Download fetches every contract and merges its bars into the store. A
// contract the source has no bars for is logged and skipped.
func (u *ContinuousUsecase) Download(ctx context.Context, contracts []domain.Contract) error {
	for _, c := range contracts {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.rateLimiter.WaitIfNeeded()

		bars, err := u.source.ContractBars(ctx, c)
		if err != nil {
			return fmt.Errorf("download %s: %w", c.Code, err)
		}
		if len(bars) == 0 {
			slog.Warn("no bars for contract", "contract", c.Code)
			continue
		}
		if err := u.store.WriteBars(ctx, c.Code, bars); err != nil {
			return err
		}
		slog.Info("contract stored", "contract", c.Code, "bars", len(bars))
	}
	return nil
}

// Build resolves expiries, downloads unless offline, computes the roll
// weights and returns the continuous series.
func (u *ContinuousUsecase) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if len(req.Contracts) == 0 {
		return nil, domain.ErrNoContracts
	}
	contracts := make([]domain.Contract, 0, len(req.Contracts))
	expiries := make(map[string]time.Time, len(req.Contracts))
	for _, code := range req.Contracts {
		c, err := domain.ParseContract(code)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
		expiries[code] = c.ApproxExpiry()
	}
	for code, ex := range req.Expiries {
		if _, ok := expiries[code]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownContract, code)
		}
		expiries[code] = domain.Day(ex)
	}

	if !req.Offline {
		if err := u.Download(ctx, contracts); err != nil {
			return nil, err
		}
	}

	bars := make(map[string][]entity.Bar, len(contracts))
	start := req.Start
	for _, c := range contracts {
		bs, err := u.store.ReadBars(ctx, c.Code)
		if err != nil {
			if errors.Is(err, ErrContractDataMissing) {
				slog.Warn("contract has no stored bars", "contract", c.Code)
				continue
			}
			return nil, err
		}
		bars[c.Code] = bs
		if req.Start.IsZero() && len(bs) > 0 && (start.IsZero() || bs[0].Date.Before(start)) {
			start = bs[0].Date
		}
	}
	if start.IsZero() {
		return nil, ErrNoContractData
	}

	w, err := domain.BuildWeights(start, expiries, req.Contracts, req.RolloverDays)
	if err != nil {
		return nil, err
	}
	return &BuildResult{Weights: w, Series: domain.Continuous(w, domain.NewCloses(bars))}, nil
}
