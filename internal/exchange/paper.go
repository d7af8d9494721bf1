package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/commission"
	"github.com/solbo-lab/solbo/internal/types"
	"github.com/solbo-lab/solbo/pkg/errors"
)

// PaperExchange is an in-process simulated exchange. Orders settle instantly
// against the last set ticker price; balances live in memory.
type PaperExchange struct {
	mu       sync.Mutex
	symbols  map[string]types.SymbolInfo
	balances map[string]decimal.Decimal
	prices   map[string]decimal.Decimal
	orders   map[string]types.OrderDetails
	fee      commission.Fee
}

// NewPaperExchange creates a paper exchange with empty books. Seed it with
// SetSymbol, SetBalance, and SetPrice before running a cycle against it.
func NewPaperExchange() *PaperExchange {
	return &PaperExchange{
		symbols:  make(map[string]types.SymbolInfo),
		balances: make(map[string]decimal.Decimal),
		prices:   make(map[string]decimal.Decimal),
		orders:   make(map[string]types.OrderDetails),
		fee:      commission.NewZeroFee(),
	}
}

// SetSymbol registers a tradeable symbol.
func (p *PaperExchange) SetSymbol(info types.SymbolInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.symbols[info.Name] = info
}

// SetBalance sets the free balance for an asset.
func (p *PaperExchange) SetBalance(asset string, amount decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.balances[asset] = amount
}

// SetPrice sets the ticker price for a symbol.
func (p *PaperExchange) SetPrice(symbol string, price decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prices[symbol] = price
}

// SetFee sets the commission handler applied to fills.
func (p *PaperExchange) SetFee(fee commission.Fee) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fee = fee
}

// Name implements Exchange.
func (p *PaperExchange) Name() types.ExchangeType {
	return types.ExchangeTypePaper
}

// GetSymbolInfo implements Exchange.
func (p *PaperExchange) GetSymbolInfo(ctx context.Context, symbol string) (types.SymbolInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, ok := p.symbols[symbol]
	if !ok {
		return types.SymbolInfo{}, errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not listed on paper exchange", symbol)
	}

	return info, nil
}

// GetAccountBalances implements Exchange.
func (p *PaperExchange) GetAccountBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]decimal.Decimal, len(p.balances))
	for asset, amount := range p.balances {
		out[asset] = amount
	}

	return out, nil
}

// GetTicker implements Exchange.
func (p *PaperExchange) GetTicker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	price, ok := p.prices[symbol]
	if !ok {
		return decimal.Zero, errors.Newf(errors.ErrCodeTickerFailed, "no ticker set for %s", symbol)
	}

	return price, nil
}

// PlaceMarketOrder implements Exchange.
func (p *PaperExchange) PlaceMarketOrder(ctx context.Context, symbol string, side types.OrderSide, quantity decimal.Decimal) (types.OrderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, ok := p.symbols[symbol]
	if !ok {
		return types.OrderResult{}, errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not listed on paper exchange", symbol)
	}

	price, ok := p.prices[symbol]
	if !ok || price.IsZero() {
		return types.OrderResult{}, errors.Newf(errors.ErrCodeOrderFailed, "no ticker set for %s", symbol)
	}

	if !quantity.IsPositive() {
		return types.OrderResult{}, errors.Newf(errors.ErrCodeOrderFailed, "quantity must be positive, got %s", quantity)
	}

	notional := quantity.Mul(price)
	fee := p.fee.Calculate(notional)

	switch side {
	case types.OrderSideBuy:
		cost := notional.Add(fee)
		if p.balances[info.QuoteAsset].LessThan(cost) {
			return types.OrderResult{}, errors.Newf(errors.ErrCodeOrderFailed,
				"insufficient %s balance: need %s, have %s", info.QuoteAsset, cost, p.balances[info.QuoteAsset])
		}

		p.balances[info.QuoteAsset] = p.balances[info.QuoteAsset].Sub(cost)
		p.balances[info.BaseAsset] = p.balances[info.BaseAsset].Add(quantity)
	case types.OrderSideSell:
		if p.balances[info.BaseAsset].LessThan(quantity) {
			return types.OrderResult{}, errors.Newf(errors.ErrCodeOrderFailed,
				"insufficient %s balance: need %s, have %s", info.BaseAsset, quantity, p.balances[info.BaseAsset])
		}

		p.balances[info.BaseAsset] = p.balances[info.BaseAsset].Sub(quantity)
		p.balances[info.QuoteAsset] = p.balances[info.QuoteAsset].Add(notional.Sub(fee))
	default:
		return types.OrderResult{}, errors.Newf(errors.ErrCodeUnsupportedSide, "unsupported order side: %s", side)
	}

	orderID := uuid.New().String()
	p.orders[orderID] = types.OrderDetails{
		OrderID:  orderID,
		Symbol:   symbol,
		Side:     side,
		Price:    price,
		Quantity: quantity,
		Fills:    1,
		Filled:   true,
		Time:     time.Now().UTC(),
	}

	return types.OrderResult{OrderID: orderID}, nil
}

// GetOrder implements Exchange.
func (p *PaperExchange) GetOrder(ctx context.Context, symbol, orderID string) (types.OrderDetails, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, ok := p.orders[orderID]
	if !ok {
		return types.OrderDetails{}, errors.Newf(errors.ErrCodeOrderNotConfirmed, "unknown order %s", orderID)
	}

	return order, nil
}
