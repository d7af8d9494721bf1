// Package storage provides the append-only price history store backing the
// rolling-average computation. Each strategy instance owns its own stream.
package storage

import "github.com/shopspring/decimal"

// PriceHistory is an append-only ordered sequence of observed prices for one
// strategy instance. Past entries are never mutated; Clear is reserved for the
// clear-on-startup sequence step.
type PriceHistory interface {
	// Append stores a newly observed price at the end of the sequence.
	Append(price decimal.Decimal) error
	// GetAll retrieves all stored prices ordered oldest to newest.
	GetAll() ([]decimal.Decimal, error)
	// Clear empties the stored sequence.
	Clear() error
	// Close releases any underlying resources.
	Close() error
}
