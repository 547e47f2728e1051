package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDailyBar(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ts       time.Time
		wantDate time.Time
		wantErr  error
	}{
		{
			name:     "market open timestamp is truncated to the UTC day",
			ts:       time.Date(2024, 6, 13, 13, 30, 0, 0, time.UTC),
			wantDate: time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "non-UTC timestamp uses its UTC day",
			ts:       time.Date(2024, 6, 13, 21, 0, 0, 0, time.FixedZone("EDT", -4*3600)),
			wantDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "today is accepted",
			ts:       time.Date(2024, 6, 14, 13, 30, 0, 0, time.UTC),
			wantDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "later today is rejected",
			ts:      now.Add(time.Minute),
			wantErr: ErrFutureDate,
		},
		{
			name:    "one day in the future is rejected",
			ts:      now.AddDate(0, 0, 1),
			wantErr: ErrFutureDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bar, err := NewDailyBar(tt.ts, 1, 2, 0.5, 1.5, 1.4, 100, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, DailyBar{}, bar)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, bar.Date)
			assert.Equal(t, 1.5, bar.Close)
			assert.Equal(t, 1.4, bar.AdjClose)
			assert.Equal(t, int64(100), bar.Volume)
		})
	}
}

func TestNormalizeTicker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "aapl", want: "AAPL"},
		{in: "MMM", want: "MMM"},
		{in: "GoOg", want: "GOOG"},
		{in: "", wantErr: true},
		{in: "BRK.B", wantErr: true},
		{in: "BF-B", wantErr: true},
		{in: "A1", wantErr: true},
		{in: "AAPL ", wantErr: true},
		{in: "'; DROP TABLE symbol;--", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeTicker(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTicker, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestVendorTicker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BRK-B", VendorTicker("BRK.B"))
	assert.Equal(t, "AAPL", VendorTicker("AAPL"))
}
