// Package usecase implements daily price ingestion and retrieval.
package usecase

import "errors"

var (
	// ErrSymbolNotFound is returned when no stored symbol has the ticker.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrVendorNotFound is returned when the configured data vendor is not seeded.
	ErrVendorNotFound = errors.New("data vendor not found")

	// ErrIngestFailures is returned after a continue-on-error run in which at
	// least one ticker failed.
	ErrIngestFailures = errors.New("price ingestion finished with failures")
)
