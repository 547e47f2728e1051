// Package entity defines the domain models for the symbols feature.
package entity

import "time"

const (
	// DefaultInstrument is stamped on symbols created by the ingestion flow.
	DefaultInstrument = "stock"
	// DefaultCurrency applies when a record carries no currency.
	DefaultCurrency = "USD"
)

// Attributes is the mutable part of a symbol. Reconciliation compares and
// overwrites exactly these fields.
type Attributes struct {
	Name        string
	Sector      string
	SubIndustry string
	Headquarter string
	DateAdded   string
	CIK         string
	Founded     string
	Currency    string
}

// Record is one incoming symbol keyed by (Ticker, ExchangeID). A nil
// ExchangeID is a key of its own.
type Record struct {
	Ticker     string
	ExchangeID *uint
	Instrument string
	Attributes
}

// Symbol is a stored symbol row.
type Symbol struct {
	ID              uint
	Ticker          string
	ExchangeID      *uint
	ExchangeAbbrev  string
	Instrument      string
	Attributes
	CreatedDate     time.Time
	LastUpdatedDate time.Time
}

// Listing is one row scraped from the constituents table before the
// exchange abbreviation has been resolved to an id.
type Listing struct {
	Ticker   string
	Exchange string
	Attributes
}
