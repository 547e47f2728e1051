// Package dto defines data transfer objects for the prices HTTP API.
package dto

import "github.com/shopspring/decimal"

// PriceItem is one daily bar. Prices are decimal strings so float noise from
// storage never reaches clients.
type PriceItem struct {
	Date     string          `json:"date"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	AdjClose decimal.Decimal `json:"adj_close"`
	Volume   int64           `json:"volume"`
}

// PriceHistoryResponse wraps the bars for one ticker, newest first.
type PriceHistoryResponse struct {
	Ticker string      `json:"ticker"`
	Prices []PriceItem `json:"prices"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
