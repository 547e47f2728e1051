// Package domain implements continuous futures construction: contract codes,
// the business day calendar, roll weights and the blended series.
package domain

import "errors"

var (
	// ErrNoContracts is returned when the contract list is empty.
	ErrNoContracts = errors.New("at least one contract is required")

	// ErrMissingExpiry is returned when a listed contract has no expiry date.
	ErrMissingExpiry = errors.New("contract has no expiry date")

	// ErrExpiryOrder is returned when expiries are not strictly increasing
	// in contract order.
	ErrExpiryOrder = errors.New("contract expiries must be strictly increasing")

	// ErrNegativeRollover is returned for rollover_days < 0.
	ErrNegativeRollover = errors.New("rollover days must not be negative")

	// ErrOverlappingRoll is returned when a roll window would start before
	// the previous contract has expired.
	ErrOverlappingRoll = errors.New("roll window starts before the previous expiry")

	// ErrStartAfterExpiry is returned when the start date is past the last expiry.
	ErrStartAfterExpiry = errors.New("start date is after the last contract expiry")

	// ErrInvalidContract is returned for a malformed contract code.
	ErrInvalidContract = errors.New("invalid contract code")
)
