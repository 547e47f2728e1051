// Package entity defines the domain models for the prices feature.
package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrFutureDate is returned for a bar dated after the time it was fetched.
var ErrFutureDate = errors.New("bar date is in the future")

// DailyBar is one end-of-day OHLCV bar. Date is always midnight UTC.
type DailyBar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// NewDailyBar builds a bar dated on the UTC calendar day of ts. A timestamp
// later than now is rejected, even when it falls on today.
func NewDailyBar(ts time.Time, open, high, low, closePrice, adjClose float64, volume int64, now time.Time) (DailyBar, error) {
	if ts.After(now) {
		return DailyBar{}, fmt.Errorf("%w: %s", ErrFutureDate, ts.UTC().Format(time.RFC3339))
	}
	d := TruncateDay(ts)
	return DailyBar{
		Date:     d,
		Open:     open,
		High:     high,
		Low:      low,
		Close:    closePrice,
		AdjClose: adjClose,
		Volume:   volume,
	}, nil
}

// TruncateDay returns midnight UTC of the calendar day t falls on in UTC.
func TruncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// PriceRecord is a bar bound to a symbol and vendor, ready to persist.
type PriceRecord struct {
	VendorID        uint
	SymbolID        uint
	CreatedDate     time.Time
	LastUpdatedDate time.Time
	DailyBar
}

// TickerSymbol pairs a symbol id with its ticker.
type TickerSymbol struct {
	ID     uint
	Ticker string
}
