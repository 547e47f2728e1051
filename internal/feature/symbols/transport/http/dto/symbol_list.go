// Package dto defines data transfer objects for the symbols HTTP API.
package dto

// SymbolItem represents a symbol in the API response.
type SymbolItem struct {
	Ticker      string `json:"ticker"`
	Exchange    string `json:"exchange,omitempty"`
	Name        string `json:"name"`
	Sector      string `json:"sector,omitempty"`
	SubIndustry string `json:"sub_industry,omitempty"`
	Currency    string `json:"currency"`
}
