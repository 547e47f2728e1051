// Package entity defines the domain models for the futures feature.
package entity

import "time"

// Bar is one daily bar of a single futures contract. Date is midnight UTC.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Point is one value of the continuous series.
type Point struct {
	Date  time.Time
	Value float64
}
