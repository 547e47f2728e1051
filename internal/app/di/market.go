// Package di provides dependency injection factories for creating application components.
package di

import (
	"net/http"

	"securities_master/internal/feature/prices/adapters/yahoo"
	"securities_master/internal/feature/symbols/adapters/wikipedia"
	"securities_master/internal/platform/config"
	infrahttp "securities_master/internal/platform/http"
)

// NewHTTPClient creates the outbound client shared by the scrapers.
func NewHTTPClient(cfg *config.Config) *http.Client {
	return infrahttp.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)
}

// NewChartClient creates a fully configured Yahoo chart client with HTTP client.
func NewChartClient(cfg *config.Config) *yahoo.Client {
	return yahoo.NewClient(yahoo.Config{BaseURL: cfg.Prices.BaseURL, Timeout: cfg.HTTP.Timeout}, NewHTTPClient(cfg))
}

// NewListingClient creates the constituents table scraper.
func NewListingClient(cfg *config.Config) *wikipedia.Client {
	return wikipedia.NewClient(wikipedia.Config{URL: cfg.Symbols.SourceURL}, NewHTTPClient(cfg))
}
