package exchange

import (
	"context"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solbo-lab/solbo/internal/types"
	"github.com/solbo-lab/solbo/pkg/errors"
)

const (
	// BinanceDecimalPrecision is a default decimal precision used when
	// formatting order quantities. 8 decimals allows satoshi-level precision
	// for BTC-like assets; symbol-specific LOT_SIZE precision would refine it.
	BinanceDecimalPrecision = 8
)

// Service interfaces for mocking the Binance API

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	NewClientOrderID(id string) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// GetOrderService interface for fetching a single order.
type GetOrderService interface {
	Symbol(symbol string) GetOrderService
	OrderID(orderID int64) GetOrderService
	Do(ctx context.Context) (*binance.Order, error)
}

// GetAccountService interface for getting account info.
type GetAccountService interface {
	Do(ctx context.Context) (*binance.Account, error)
}

// ListPricesService interface for fetching ticker prices.
type ListPricesService interface {
	Symbol(symbol string) ListPricesService
	Do(ctx context.Context) ([]*binance.SymbolPrice, error)
}

// ExchangeInfoService interface for fetching symbol metadata.
type ExchangeInfoService interface {
	Symbol(symbol string) ExchangeInfoService
	Do(ctx context.Context) (*binance.ExchangeInfo, error)
}

// BinanceClient interface abstracts the Binance client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetOrderService() GetOrderService
	NewGetAccountService() GetAccountService
	NewListPricesService() ListPricesService
	NewExchangeInfoService() ExchangeInfoService
}

// realBinanceClient wraps the actual binance.Client.
type realBinanceClient struct {
	client *binance.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetOrderService() GetOrderService {
	return &realGetOrderService{service: r.client.NewGetOrderService()}
}

func (r *realBinanceClient) NewGetAccountService() GetAccountService {
	return &realGetAccountService{service: r.client.NewGetAccountService()}
}

func (r *realBinanceClient) NewListPricesService() ListPricesService {
	return &realListPricesService{service: r.client.NewListPricesService()}
}

func (r *realBinanceClient) NewExchangeInfoService() ExchangeInfoService {
	return &realExchangeInfoService{service: r.client.NewExchangeInfoService()}
}

// Real service wrappers

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) NewClientOrderID(id string) CreateOrderService {
	s.service = s.service.NewClientOrderID(id)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetOrderService struct {
	service *binance.GetOrderService
}

func (s *realGetOrderService) Symbol(symbol string) GetOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realGetOrderService) OrderID(orderID int64) GetOrderService {
	s.service = s.service.OrderID(orderID)

	return s
}

func (s *realGetOrderService) Do(ctx context.Context) (*binance.Order, error) {
	return s.service.Do(ctx)
}

type realGetAccountService struct {
	service *binance.GetAccountService
}

func (s *realGetAccountService) Do(ctx context.Context) (*binance.Account, error) {
	return s.service.Do(ctx)
}

type realListPricesService struct {
	service *binance.ListPricesService
}

func (s *realListPricesService) Symbol(symbol string) ListPricesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realListPricesService) Do(ctx context.Context) ([]*binance.SymbolPrice, error) {
	return s.service.Do(ctx)
}

type realExchangeInfoService struct {
	service *binance.ExchangeInfoService
}

func (s *realExchangeInfoService) Symbol(symbol string) ExchangeInfoService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realExchangeInfoService) Do(ctx context.Context) (*binance.ExchangeInfo, error) {
	return s.service.Do(ctx)
}

// BinanceExchange implements Exchange using the Binance API. It is stateless;
// all data is fetched directly from the exchange.
type BinanceExchange struct {
	client      BinanceClient
	name        types.ExchangeType
	tradingFlag bool
}

// binanceTestnetBaseURL is the spot testnet endpoint. Set per client, never
// via the package-global binance.UseTestnet, so live and testnet instances
// can coexist in one process.
const binanceTestnetBaseURL = "https://testnet.binance.vision"

// NewBinanceExchange creates a Binance-backed exchange. If useTestnet is true,
// it connects to the Binance testnet (https://testnet.binance.vision/).
func NewBinanceExchange(creds types.ExchangeCredentials, useTestnet bool) (*BinanceExchange, error) {
	client := binance.NewClient(creds.APIKey, creds.APISecret)

	name := types.ExchangeTypeBinance
	if useTestnet {
		client.BaseURL = binanceTestnetBaseURL
		name = types.ExchangeTypeBinanceTestnet
	}

	return &BinanceExchange{
		client:      &realBinanceClient{client: client},
		name:        name,
		tradingFlag: !creds.IsInTestMode(),
	}, nil
}

// newBinanceExchangeWithClient creates a Binance exchange with a custom
// client. Used in tests with fake services.
func newBinanceExchangeWithClient(client BinanceClient) *BinanceExchange {
	return &BinanceExchange{
		client:      client,
		name:        types.ExchangeTypeBinance,
		tradingFlag: true,
	}
}

// Name implements Exchange.
func (b *BinanceExchange) Name() types.ExchangeType {
	return b.name
}

// GetSymbolInfo implements Exchange.
func (b *BinanceExchange) GetSymbolInfo(ctx context.Context, symbol string) (types.SymbolInfo, error) {
	info, err := b.client.NewExchangeInfoService().Symbol(symbol).Do(ctx)
	if err != nil {
		return types.SymbolInfo{}, errors.Wrapf(errors.ErrCodeSymbolNotFound, err, "failed to fetch exchange info for %s", symbol)
	}

	for _, s := range info.Symbols {
		if s.Symbol != symbol {
			continue
		}

		return types.SymbolInfo{
			Name:        s.Symbol,
			BaseAsset:   s.BaseAsset,
			QuoteAsset:  s.QuoteAsset,
			MinNotional: symbolMinNotional(s.Filters),
		}, nil
	}

	return types.SymbolInfo{}, errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not listed on %s", symbol, b.name)
}

// symbolMinNotional extracts the minimum order notional from a symbol's raw
// filter list. Binance reports it as NOTIONAL on current symbols and as
// MIN_NOTIONAL on legacy ones; both carry a minNotional value.
func symbolMinNotional(filters []map[string]interface{}) decimal.Decimal {
	for _, filter := range filters {
		filterType, _ := filter["filterType"].(string)
		if filterType != "NOTIONAL" && filterType != "MIN_NOTIONAL" {
			continue
		}

		raw, _ := filter["minNotional"].(string)
		if parsed, err := decimal.NewFromString(raw); err == nil {
			return parsed
		}
	}

	return decimal.Zero
}

// GetAccountBalances implements Exchange.
func (b *BinanceExchange) GetAccountBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBalanceFetchFailed, "failed to fetch account balances", err)
	}

	balances := make(map[string]decimal.Decimal, len(account.Balances))

	for _, balance := range account.Balances {
		free, parseErr := decimal.NewFromString(balance.Free)
		if parseErr != nil {
			return nil, errors.Wrapf(errors.ErrCodeBalanceFetchFailed, parseErr, "unparseable balance for %s", balance.Asset)
		}

		balances[balance.Asset] = free
	}

	return balances, nil
}

// GetTicker implements Exchange.
func (b *BinanceExchange) GetTicker(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodeTickerFailed, err, "failed to fetch ticker for %s", symbol)
	}

	for _, price := range prices {
		if price.Symbol != symbol {
			continue
		}

		parsed, parseErr := decimal.NewFromString(price.Price)
		if parseErr != nil {
			return decimal.Zero, errors.Wrapf(errors.ErrCodeTickerFailed, parseErr, "unparseable ticker price %q", price.Price)
		}

		return parsed, nil
	}

	return decimal.Zero, errors.Newf(errors.ErrCodeTickerFailed, "no ticker returned for %s", symbol)
}

// PlaceMarketOrder implements Exchange.
func (b *BinanceExchange) PlaceMarketOrder(ctx context.Context, symbol string, side types.OrderSide, quantity decimal.Decimal) (types.OrderResult, error) {
	var binanceSide binance.SideType

	switch side {
	case types.OrderSideBuy:
		binanceSide = binance.SideTypeBuy
	case types.OrderSideSell:
		binanceSide = binance.SideTypeSell
	default:
		return types.OrderResult{}, errors.Newf(errors.ErrCodeUnsupportedSide, "unsupported order side: %s", side)
	}

	response, err := b.client.NewCreateOrderService().
		Symbol(symbol).
		Side(binanceSide).
		Type(binance.OrderTypeMarket).
		Quantity(quantity.Round(BinanceDecimalPrecision).String()).
		NewClientOrderID(uuid.New().String()).
		Do(ctx)
	if err != nil {
		return types.OrderResult{}, errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to place %s market order for %s", side, symbol)
	}

	return types.OrderResult{
		OrderID: strconv.FormatInt(response.OrderID, 10),
	}, nil
}

// GetOrder implements Exchange.
func (b *BinanceExchange) GetOrder(ctx context.Context, symbol, orderID string) (types.OrderDetails, error) {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return types.OrderDetails{}, errors.Wrapf(errors.ErrCodeOrderNotConfirmed, err, "unparseable order id %q", orderID)
	}

	order, err := b.client.NewGetOrderService().Symbol(symbol).OrderID(id).Do(ctx)
	if err != nil {
		return types.OrderDetails{}, errors.Wrapf(errors.ErrCodeOrderNotConfirmed, err, "failed to fetch order %s", orderID)
	}

	executed, err := decimal.NewFromString(order.ExecutedQuantity)
	if err != nil {
		return types.OrderDetails{}, errors.Wrapf(errors.ErrCodeOrderNotConfirmed, err, "unparseable executed quantity %q", order.ExecutedQuantity)
	}

	quote, err := decimal.NewFromString(order.CummulativeQuoteQuantity)
	if err != nil {
		return types.OrderDetails{}, errors.Wrapf(errors.ErrCodeOrderNotConfirmed, err, "unparseable quote quantity %q", order.CummulativeQuoteQuantity)
	}

	// Market orders report price zero; the average fill price is the executed
	// quote amount over the executed base quantity.
	price := decimal.Zero
	if executed.IsPositive() {
		price = quote.Div(executed)
	}

	side := types.OrderSideBuy
	if order.Side == binance.SideTypeSell {
		side = types.OrderSideSell
	}

	filled := order.Status == binance.OrderStatusTypeFilled

	fills := 0
	if filled {
		fills = 1
	}

	return types.OrderDetails{
		OrderID:  orderID,
		Symbol:   order.Symbol,
		Side:     side,
		Price:    price,
		Quantity: executed,
		Fills:    fills,
		Filled:   filled,
		Time:     timeFromMillis(order.Time),
	}, nil
}
