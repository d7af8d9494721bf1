package exchange

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/solbo-lab/solbo/internal/commission"
	"github.com/solbo-lab/solbo/internal/types"
)

type PaperExchangeTestSuite struct {
	suite.Suite

	exchange *PaperExchange
	ctx      context.Context
}

func TestPaperExchangeSuite(t *testing.T) {
	suite.Run(t, new(PaperExchangeTestSuite))
}

func (suite *PaperExchangeTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.exchange = NewPaperExchange()
	suite.exchange.SetSymbol(types.SymbolInfo{
		Name:        "BTCUSDT",
		BaseAsset:   "BTC",
		QuoteAsset:  "USDT",
		MinNotional: decimal.NewFromInt(10),
	})
	suite.exchange.SetBalance("USDT", decimal.NewFromInt(1000))
	suite.exchange.SetPrice("BTCUSDT", decimal.NewFromInt(100))
}

func (suite *PaperExchangeTestSuite) TestGetSymbolInfo() {
	info, err := suite.exchange.GetSymbolInfo(suite.ctx, "BTCUSDT")
	suite.NoError(err)
	suite.Equal("BTC", info.BaseAsset)
	suite.Equal("USDT", info.QuoteAsset)

	_, err = suite.exchange.GetSymbolInfo(suite.ctx, "ETHUSDT")
	suite.Error(err)
}

func (suite *PaperExchangeTestSuite) TestGetTicker() {
	price, err := suite.exchange.GetTicker(suite.ctx, "BTCUSDT")
	suite.NoError(err)
	suite.True(price.Equal(decimal.NewFromInt(100)))

	_, err = suite.exchange.GetTicker(suite.ctx, "ETHUSDT")
	suite.Error(err)
}

func (suite *PaperExchangeTestSuite) TestBuySettlesBalances() {
	result, err := suite.exchange.PlaceMarketOrder(suite.ctx, "BTCUSDT", types.OrderSideBuy, decimal.NewFromInt(5))
	suite.NoError(err)
	suite.NotEmpty(result.OrderID)

	balances, err := suite.exchange.GetAccountBalances(suite.ctx)
	suite.NoError(err)
	suite.True(balances["USDT"].Equal(decimal.NewFromInt(500)))
	suite.True(balances["BTC"].Equal(decimal.NewFromInt(5)))

	order, err := suite.exchange.GetOrder(suite.ctx, "BTCUSDT", result.OrderID)
	suite.NoError(err)
	suite.True(order.Filled)
	suite.Equal(types.OrderSideBuy, order.Side)
	suite.True(order.Price.Equal(decimal.NewFromInt(100)))
	suite.True(order.Quantity.Equal(decimal.NewFromInt(5)))
}

func (suite *PaperExchangeTestSuite) TestSellAppliesCommission() {
	suite.exchange.SetFee(commission.NewTakerFee())
	suite.exchange.SetBalance("BTC", decimal.NewFromInt(2))

	_, err := suite.exchange.PlaceMarketOrder(suite.ctx, "BTCUSDT", types.OrderSideSell, decimal.NewFromInt(2))
	suite.NoError(err)

	balances, err := suite.exchange.GetAccountBalances(suite.ctx)
	suite.NoError(err)
	suite.True(balances["BTC"].IsZero())
	// 200 notional minus 0.1% taker fee
	suite.True(balances["USDT"].Equal(decimal.RequireFromString("1199.8")), "got %s", balances["USDT"])
}

func (suite *PaperExchangeTestSuite) TestInsufficientBalanceRejected() {
	_, err := suite.exchange.PlaceMarketOrder(suite.ctx, "BTCUSDT", types.OrderSideBuy, decimal.NewFromInt(50))
	suite.Error(err)

	_, err = suite.exchange.PlaceMarketOrder(suite.ctx, "BTCUSDT", types.OrderSideSell, decimal.NewFromInt(1))
	suite.Error(err)
}

func (suite *PaperExchangeTestSuite) TestUnknownOrder() {
	_, err := suite.exchange.GetOrder(suite.ctx, "BTCUSDT", "missing")
	suite.Error(err)
}
