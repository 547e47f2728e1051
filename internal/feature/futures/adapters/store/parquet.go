// Package store persists downloaded futures contract bars as Parquet files.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"

	"securities_master/internal/feature/futures/domain/entity"
	"securities_master/internal/feature/futures/usecase"
)

// Compile-time interface check.
var _ usecase.BarStore = (*ParquetStore)(nil)

// ParquetStore keeps one file per contract at <DataDir>/<CODE>.parquet.
type ParquetStore struct {
	DataDir string
}

// NewParquetStore creates a new ParquetStore rooted at the given data directory.
func NewParquetStore(dataDir string) *ParquetStore {
	return &ParquetStore{DataDir: dataDir}
}

// BarRecord is the Parquet schema for contract bars.
type BarRecord struct {
	Contract  string  `parquet:"contract"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
}

func (s *ParquetStore) path(contract string) string {
	return filepath.Join(s.DataDir, contract+".parquet")
}

// WriteBars merges bars into the contract's file. Bars on a date already
// present replace the stored ones.
func (s *ParquetStore) WriteBars(_ context.Context, contract string, bars []entity.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	records := make([]BarRecord, 0, len(bars))
	for _, b := range bars {
		records = append(records, BarRecord{
			Contract:  contract,
			Timestamp: b.Date.UnixMilli(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}

	path := s.path(contract)
	existing, err := readParquetFile[BarRecord](path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading bars for %s: %w", contract, err)
	}
	if err := writeParquetFile(path, mergeBarRecords(existing, records)); err != nil {
		return fmt.Errorf("writing bars for %s: %w", contract, err)
	}
	return nil
}

// ReadBars returns the stored bars of contract in date order. A contract
// that was never downloaded yields usecase.ErrContractDataMissing.
func (s *ParquetStore) ReadBars(_ context.Context, contract string) ([]entity.Bar, error) {
	records, err := readParquetFile[BarRecord](s.path(contract))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", usecase.ErrContractDataMissing, contract)
		}
		return nil, err
	}
	bars := make([]entity.Bar, 0, len(records))
	for _, r := range records {
		bars = append(bars, entity.Bar{
			Date:   time.UnixMilli(r.Timestamp).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return bars, nil
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return parquet.ReadFile[T](path)
}

// mergeBarRecords deduplicates by timestamp, preferring incoming records.
func mergeBarRecords(existing, incoming []BarRecord) []BarRecord {
	seen := make(map[int64]BarRecord, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.Timestamp] = r
	}
	for _, r := range incoming {
		seen[r.Timestamp] = r
	}

	merged := make([]BarRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})
	return merged
}
