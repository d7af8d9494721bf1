package exchange

import (
	"context"
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/solbo-lab/solbo/internal/types"
)

// Fake Binance services

type fakeCreateOrderService struct {
	response *binance.CreateOrderResponse
	err      error

	gotSymbol   string
	gotSide     binance.SideType
	gotType     binance.OrderType
	gotQuantity string
}

func (s *fakeCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.gotSymbol = symbol

	return s
}

func (s *fakeCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.gotSide = side

	return s
}

func (s *fakeCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.gotType = orderType

	return s
}

func (s *fakeCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.gotQuantity = quantity

	return s
}

func (s *fakeCreateOrderService) NewClientOrderID(id string) CreateOrderService {
	return s
}

func (s *fakeCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.response, s.err
}

type fakeGetOrderService struct {
	order *binance.Order
	err   error
}

func (s *fakeGetOrderService) Symbol(symbol string) GetOrderService { return s }

func (s *fakeGetOrderService) OrderID(orderID int64) GetOrderService { return s }

func (s *fakeGetOrderService) Do(ctx context.Context) (*binance.Order, error) {
	return s.order, s.err
}

type fakeGetAccountService struct {
	account *binance.Account
	err     error
}

func (s *fakeGetAccountService) Do(ctx context.Context) (*binance.Account, error) {
	return s.account, s.err
}

type fakeListPricesService struct {
	prices []*binance.SymbolPrice
	err    error
}

func (s *fakeListPricesService) Symbol(symbol string) ListPricesService { return s }

func (s *fakeListPricesService) Do(ctx context.Context) ([]*binance.SymbolPrice, error) {
	return s.prices, s.err
}

type fakeExchangeInfoService struct {
	info *binance.ExchangeInfo
	err  error
}

func (s *fakeExchangeInfoService) Symbol(symbol string) ExchangeInfoService { return s }

func (s *fakeExchangeInfoService) Do(ctx context.Context) (*binance.ExchangeInfo, error) {
	return s.info, s.err
}

type fakeBinanceClient struct {
	createOrder  *fakeCreateOrderService
	getOrder     *fakeGetOrderService
	getAccount   *fakeGetAccountService
	listPrices   *fakeListPricesService
	exchangeInfo *fakeExchangeInfoService
}

func (c *fakeBinanceClient) NewCreateOrderService() CreateOrderService { return c.createOrder }

func (c *fakeBinanceClient) NewGetOrderService() GetOrderService { return c.getOrder }

func (c *fakeBinanceClient) NewGetAccountService() GetAccountService { return c.getAccount }

func (c *fakeBinanceClient) NewListPricesService() ListPricesService { return c.listPrices }

func (c *fakeBinanceClient) NewExchangeInfoService() ExchangeInfoService { return c.exchangeInfo }

type BinanceExchangeTestSuite struct {
	suite.Suite

	client   *fakeBinanceClient
	exchange *BinanceExchange
	ctx      context.Context
}

func TestBinanceExchangeSuite(t *testing.T) {
	suite.Run(t, new(BinanceExchangeTestSuite))
}

func (suite *BinanceExchangeTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.client = &fakeBinanceClient{
		createOrder:  &fakeCreateOrderService{},
		getOrder:     &fakeGetOrderService{},
		getAccount:   &fakeGetAccountService{},
		listPrices:   &fakeListPricesService{},
		exchangeInfo: &fakeExchangeInfoService{},
	}
	suite.exchange = newBinanceExchangeWithClient(suite.client)
}

func (suite *BinanceExchangeTestSuite) TestGetTicker() {
	suite.client.listPrices.prices = []*binance.SymbolPrice{
		{Symbol: "BTCUSDT", Price: "97.5000"},
	}

	price, err := suite.exchange.GetTicker(suite.ctx, "BTCUSDT")
	suite.NoError(err)
	suite.True(price.Equal(decimal.RequireFromString("97.5")))
}

func (suite *BinanceExchangeTestSuite) TestGetTickerMissingSymbol() {
	suite.client.listPrices.prices = []*binance.SymbolPrice{
		{Symbol: "ETHUSDT", Price: "100"},
	}

	_, err := suite.exchange.GetTicker(suite.ctx, "BTCUSDT")
	suite.Error(err)
}

func (suite *BinanceExchangeTestSuite) TestGetAccountBalances() {
	suite.client.getAccount.account = &binance.Account{
		Balances: []binance.Balance{
			{Asset: "BTC", Free: "0.5", Locked: "0"},
			{Asset: "USDT", Free: "1000", Locked: "0"},
		},
	}

	balances, err := suite.exchange.GetAccountBalances(suite.ctx)
	suite.NoError(err)
	suite.True(balances["BTC"].Equal(decimal.RequireFromString("0.5")))
	suite.True(balances["USDT"].Equal(decimal.NewFromInt(1000)))
}

func (suite *BinanceExchangeTestSuite) TestGetSymbolInfo() {
	suite.client.exchangeInfo.info = &binance.ExchangeInfo{
		Symbols: []binance.Symbol{
			{
				Symbol:     "BTCUSDT",
				BaseAsset:  "BTC",
				QuoteAsset: "USDT",
				Filters: []map[string]interface{}{
					{"filterType": "MIN_NOTIONAL", "minNotional": "10"},
				},
			},
		},
	}

	info, err := suite.exchange.GetSymbolInfo(suite.ctx, "BTCUSDT")
	suite.NoError(err)
	suite.Equal("BTC", info.BaseAsset)
	suite.Equal("USDT", info.QuoteAsset)
	suite.True(info.MinNotional.Equal(decimal.NewFromInt(10)))
}

func (suite *BinanceExchangeTestSuite) TestSymbolMinNotionalFilterVariants() {
	tests := []struct {
		name    string
		filters []map[string]interface{}
		want    string
	}{
		{
			"current notional filter",
			[]map[string]interface{}{{"filterType": "NOTIONAL", "minNotional": "5"}},
			"5",
		},
		{
			"legacy min notional filter",
			[]map[string]interface{}{{"filterType": "MIN_NOTIONAL", "minNotional": "10"}},
			"10",
		},
		{
			"unrelated filters only",
			[]map[string]interface{}{{"filterType": "LOT_SIZE", "stepSize": "0.001"}},
			"0",
		},
		{
			"no filters",
			nil,
			"0",
		},
		{
			"malformed value skipped",
			[]map[string]interface{}{
				{"filterType": "NOTIONAL", "minNotional": "not-a-number"},
				{"filterType": "MIN_NOTIONAL", "minNotional": "7"},
			},
			"7",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := symbolMinNotional(tc.filters)
			suite.True(got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func (suite *BinanceExchangeTestSuite) TestTestnetDoesNotLeakIntoLiveClients() {
	creds := types.ExchangeCredentials{Type: types.ExchangeTypeBinance, APIKey: "k", APISecret: "s"}

	testnet, err := NewBinanceExchange(creds, true)
	suite.Require().NoError(err)

	live, err := NewBinanceExchange(creds, false)
	suite.Require().NoError(err)

	suite.Equal(binanceTestnetBaseURL, testnet.client.(*realBinanceClient).client.BaseURL)
	suite.NotEqual(binanceTestnetBaseURL, live.client.(*realBinanceClient).client.BaseURL)
	suite.False(binance.UseTestnet)
}

func (suite *BinanceExchangeTestSuite) TestGetSymbolInfoNotListed() {
	suite.client.exchangeInfo.info = &binance.ExchangeInfo{}

	_, err := suite.exchange.GetSymbolInfo(suite.ctx, "BTCUSDT")
	suite.Error(err)
}

func (suite *BinanceExchangeTestSuite) TestPlaceMarketOrder() {
	suite.client.createOrder.response = &binance.CreateOrderResponse{OrderID: 42}

	result, err := suite.exchange.PlaceMarketOrder(suite.ctx, "BTCUSDT", types.OrderSideSell, decimal.RequireFromString("0.25"))
	suite.NoError(err)
	suite.Equal("42", result.OrderID)
	suite.Equal("BTCUSDT", suite.client.createOrder.gotSymbol)
	suite.Equal(binance.SideTypeSell, suite.client.createOrder.gotSide)
	suite.Equal(binance.OrderTypeMarket, suite.client.createOrder.gotType)
	suite.Equal("0.25", suite.client.createOrder.gotQuantity)
}

func (suite *BinanceExchangeTestSuite) TestGetOrderComputesAverageFillPrice() {
	suite.client.getOrder.order = &binance.Order{
		Symbol:                   "BTCUSDT",
		OrderID:                  42,
		Side:                     binance.SideTypeBuy,
		Status:                   binance.OrderStatusTypeFilled,
		ExecutedQuantity:         "2",
		CummulativeQuoteQuantity: "190",
		Time:                     1700000000000,
	}

	order, err := suite.exchange.GetOrder(suite.ctx, "BTCUSDT", "42")
	suite.NoError(err)
	suite.True(order.Filled)
	suite.Equal(types.OrderSideBuy, order.Side)
	suite.True(order.Price.Equal(decimal.NewFromInt(95)))
	suite.True(order.Quantity.Equal(decimal.NewFromInt(2)))
}

func (suite *BinanceExchangeTestSuite) TestGetOrderUnfilled() {
	suite.client.getOrder.order = &binance.Order{
		Symbol:                   "BTCUSDT",
		OrderID:                  42,
		Side:                     binance.SideTypeBuy,
		Status:                   binance.OrderStatusTypeNew,
		ExecutedQuantity:         "0",
		CummulativeQuoteQuantity: "0",
	}

	order, err := suite.exchange.GetOrder(suite.ctx, "BTCUSDT", "42")
	suite.NoError(err)
	suite.False(order.Filled)
	suite.True(order.Price.IsZero())
}

func (suite *BinanceExchangeTestSuite) TestExchangeRegistry() {
	suite.Len(GetSupportedExchanges(), 3)

	info, err := GetExchangeInfo("binance-testnet")
	suite.NoError(err)
	suite.True(info.IsPaperTrading)

	_, err = GetExchangeInfo("kraken")
	suite.Error(err)
}
