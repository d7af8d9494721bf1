package storage

import (
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryPriceHistory keeps the price sequence in process memory. Used by tests
// and paper trading where persistence across restarts is not needed.
type MemoryPriceHistory struct {
	mu     sync.Mutex
	prices []decimal.Decimal
}

// NewMemoryPriceHistory creates an empty in-memory price history.
func NewMemoryPriceHistory() *MemoryPriceHistory {
	return &MemoryPriceHistory{
		prices: make([]decimal.Decimal, 0),
	}
}

// Append implements PriceHistory.
func (m *MemoryPriceHistory) Append(price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prices = append(m.prices, price)

	return nil
}

// GetAll implements PriceHistory.
func (m *MemoryPriceHistory) GetAll() ([]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]decimal.Decimal, len(m.prices))
	copy(out, m.prices)

	return out, nil
}

// Clear implements PriceHistory.
func (m *MemoryPriceHistory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prices = m.prices[:0]

	return nil
}

// Close implements PriceHistory.
func (m *MemoryPriceHistory) Close() error {
	return nil
}
