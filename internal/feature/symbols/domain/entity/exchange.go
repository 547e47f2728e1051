package entity

import "strings"

const (
	ExchangeNYSE   = "NYSE"
	ExchangeNASDAQ = "NASDAQ"
	ExchangeCBOE   = "CBOE"
)

// exchangeHosts maps a quote-page host fragment to the exchange it lists on.
// Checked in order; the first match wins.
var exchangeHosts = []struct {
	fragment string
	abbrev   string
}{
	{"nasdaq.com", ExchangeNASDAQ},
	{"cboe.com", ExchangeCBOE},
	{"nyse.com", ExchangeNYSE},
	{"xnys", ExchangeNYSE},
}

// ExchangeFromURL infers the listing exchange from the quote link attached
// to a ticker. Links that match no known venue default to NYSE.
func ExchangeFromURL(href string) string {
	h := strings.ToLower(href)
	for _, e := range exchangeHosts {
		if strings.Contains(h, e.fragment) {
			return e.abbrev
		}
	}
	return ExchangeNYSE
}
