package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultMonths is the quarterly cycle used by equity index futures.
const DefaultMonths = "HMUZ"

// monthLetters is indexed by month-1.
const monthLetters = "FGHJKMNQUVXZ"

// monthCodes maps the exchange month letters to calendar months.
var monthCodes = map[byte]time.Month{
	'F': time.January, 'G': time.February, 'H': time.March, 'J': time.April,
	'K': time.May, 'M': time.June, 'N': time.July, 'Q': time.August,
	'U': time.September, 'V': time.October, 'X': time.November, 'Z': time.December,
}

// MonthFromCode returns the calendar month for a month letter.
func MonthFromCode(c byte) (time.Month, bool) {
	m, ok := monthCodes[c]
	return m, ok
}

// Contract is a parsed contract code such as ESZ2024.
type Contract struct {
	Code  string
	Root  string
	Month time.Month
	Year  int
}

// ParseContract splits ROOT+M+YYYY into its parts.
func ParseContract(code string) (Contract, error) {
	if len(code) < 6 {
		return Contract{}, fmt.Errorf("%w: %q", ErrInvalidContract, code)
	}
	root := code[:len(code)-5]
	if !isLetters(root) {
		return Contract{}, fmt.Errorf("%w: %q has no root symbol", ErrInvalidContract, code)
	}
	month, ok := MonthFromCode(code[len(code)-5])
	if !ok {
		return Contract{}, fmt.Errorf("%w: %q has an unknown month letter", ErrInvalidContract, code)
	}
	year, err := strconv.Atoi(code[len(code)-4:])
	if err != nil || year < 1900 {
		return Contract{}, fmt.Errorf("%w: %q has no four digit year", ErrInvalidContract, code)
	}
	return Contract{Code: code, Root: root, Month: month, Year: year}, nil
}

// ApproxExpiry places expiry on the 15th of the contract month. Real
// expiries vary by product; pass explicit dates where it matters.
func (c Contract) ApproxExpiry() time.Time {
	return time.Date(c.Year, c.Month, 15, 0, 0, 0, 0, time.UTC)
}

// YahooTicker renders the quote service symbol, e.g. ESZ24.CME.
func (c Contract) YahooTicker(exchange string) string {
	t := fmt.Sprintf("%s%c%02d", c.Root, monthLetters[c.Month-1], c.Year%100)
	if exchange != "" {
		t += "." + exchange
	}
	return t
}

// ContractCodes lists ROOT+M+YYYY codes for every year in [startYear,
// endYear] and every month letter in months, ordered by expiry.
func ContractCodes(root string, startYear, endYear int, months string) ([]string, error) {
	root = strings.ToUpper(strings.TrimSpace(root))
	if !isLetters(root) {
		return nil, fmt.Errorf("%w: root %q", ErrInvalidContract, root)
	}
	if endYear < startYear {
		return nil, fmt.Errorf("end year %d is before start year %d", endYear, startYear)
	}
	months = strings.ToUpper(months)
	if months == "" {
		months = DefaultMonths
	}

	var ms []time.Month
	for i := 0; i < len(months); i++ {
		m, ok := MonthFromCode(months[i])
		if !ok {
			return nil, fmt.Errorf("%w: month letter %q", ErrInvalidContract, months[i])
		}
		if !slices.Contains(ms, m) {
			ms = append(ms, m)
		}
	}
	slices.Sort(ms)

	codes := make([]string, 0, (endYear-startYear+1)*len(ms))
	for y := startYear; y <= endYear; y++ {
		for _, m := range ms {
			codes = append(codes, fmt.Sprintf("%s%c%04d", root, monthLetters[m-1], y))
		}
	}
	return codes, nil
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
