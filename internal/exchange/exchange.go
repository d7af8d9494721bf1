// Package exchange abstracts the exchanges the bot can trade against.
package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/types"
	"github.com/solbo-lab/solbo/pkg/errors"
)

// Exchange is the capability surface one cycle needs from an exchange: symbol
// lookup, balances, a ticker, market orders, and order confirmation.
type Exchange interface {
	// Name returns the exchange identifier.
	Name() types.ExchangeType
	// GetSymbolInfo returns symbol metadata, or ErrCodeSymbolNotFound when the
	// exchange does not list the symbol.
	GetSymbolInfo(ctx context.Context, symbol string) (types.SymbolInfo, error)
	// GetAccountBalances returns the free balance per asset.
	GetAccountBalances(ctx context.Context) (map[string]decimal.Decimal, error)
	// GetTicker returns the current price for the symbol.
	GetTicker(ctx context.Context, symbol string) (decimal.Decimal, error)
	// PlaceMarketOrder places a market order for the given base-asset quantity.
	PlaceMarketOrder(ctx context.Context, symbol string, side types.OrderSide, quantity decimal.Decimal) (types.OrderResult, error)
	// GetOrder fetches a placed order to confirm its fill state.
	GetOrder(ctx context.Context, symbol, orderID string) (types.OrderDetails, error)
}

// Binding is the exchange selection for the running cycle. The switch rule
// fills it; every downstream rule reads it.
type Binding struct {
	Exchange Exchange
}

// Info holds display metadata for a supported exchange.
type Info struct {
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	IsPaperTrading bool   `json:"isPaperTrading"`
}

var exchangeRegistry = map[types.ExchangeType]Info{
	types.ExchangeTypeBinance: {
		Name:           string(types.ExchangeTypeBinance),
		DisplayName:    "Binance",
		Description:    "Binance live environment for real-funds cryptocurrency trading",
		IsPaperTrading: false,
	},
	types.ExchangeTypeBinanceTestnet: {
		Name:           string(types.ExchangeTypeBinanceTestnet),
		DisplayName:    "Binance Testnet",
		Description:    "Binance testnet for paper trading cryptocurrency without real funds",
		IsPaperTrading: true,
	},
	types.ExchangeTypePaper: {
		Name:           string(types.ExchangeTypePaper),
		DisplayName:    "Paper",
		Description:    "In-process simulated exchange for dry runs and tests",
		IsPaperTrading: true,
	},
}

// GetSupportedExchanges returns the names of every registered exchange.
func GetSupportedExchanges() []string {
	names := make([]string, 0, len(exchangeRegistry))
	for exchangeType := range exchangeRegistry {
		names = append(names, string(exchangeType))
	}

	return names
}

// GetExchangeInfo returns metadata for a specific exchange.
func GetExchangeInfo(name string) (Info, error) {
	info, exists := exchangeRegistry[types.ExchangeType(name)]
	if !exists {
		return Info{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported exchange: %s", name)
	}

	return info, nil
}

// New creates the exchange client selected by the given credentials.
func New(creds types.ExchangeCredentials) (Exchange, error) {
	switch creds.Type {
	case types.ExchangeTypeBinance:
		return NewBinanceExchange(creds, false)
	case types.ExchangeTypeBinanceTestnet:
		return NewBinanceExchange(creds, true)
	case types.ExchangeTypePaper:
		return NewPaperExchange(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported exchange: %s", creds.Type)
	}
}
