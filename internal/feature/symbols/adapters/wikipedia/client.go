// Package wikipedia scrapes the S&P 500 constituents table.
package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"securities_master/internal/feature/symbols/domain/entity"
	"securities_master/internal/feature/symbols/usecase"

	"github.com/PuerkitoBio/goquery"
)

// DefaultURL is the constituents page.
const DefaultURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// ErrNoReferenceTable is returned when the page has no parsable constituents table.
var ErrNoReferenceTable = errors.New("wikipedia: no constituents table found")

// column order of the constituents table
const (
	colTicker = iota
	colName
	colSector
	colSubIndustry
	colHeadquarter
	colDateAdded
	colCIK
	colFounded
	numColumns
)

// Config holds the page location.
type Config struct {
	URL string
}

// Client fetches and parses the constituents table.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.ListingSource = (*Client)(nil)

// NewClient creates a Client. An empty URL means DefaultURL.
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return &Client{cfg: cfg, client: client}
}

// FetchListings downloads the page and returns one listing per table row.
func (c *Client) FetchListings(ctx context.Context) ([]entity.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("wikipedia http %d", res.StatusCode)
	}
	return ParseListings(res.Body)
}

// ParseListings reads the first wikitable in r. Rows with fewer than eight
// cells (header rows, footnotes) are skipped. Cell text is trimmed; nothing
// else is normalised.
func ParseListings(r io.Reader) ([]entity.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table.wikitable").First()
	if table.Length() == 0 {
		return nil, ErrNoReferenceTable
	}

	var out []entity.Listing
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < numColumns {
			return
		}
		text := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		tickerCell := cells.Eq(colTicker)
		ticker := strings.TrimSpace(tickerCell.Find("a").First().Text())
		if ticker == "" {
			ticker = text(colTicker)
		}
		if ticker == "" {
			return
		}
		href, _ := tickerCell.Find("a").First().Attr("href")

		name := strings.TrimSpace(cells.Eq(colName).Find("a").First().Text())
		if name == "" {
			name = text(colName)
		}

		out = append(out, entity.Listing{
			Ticker:   ticker,
			Exchange: entity.ExchangeFromURL(href),
			Attributes: entity.Attributes{
				Name:        name,
				Sector:      text(colSector),
				SubIndustry: text(colSubIndustry),
				Headquarter: text(colHeadquarter),
				DateAdded:   text(colDateAdded),
				CIK:         text(colCIK),
				Founded:     text(colFounded),
				Currency:    entity.DefaultCurrency,
			},
		})
	})

	if len(out) == 0 {
		return nil, ErrNoReferenceTable
	}
	return out, nil
}
