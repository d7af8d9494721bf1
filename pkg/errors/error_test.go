package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidFundPercentage, "fund percentage out of range")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidFundPercentage, err.Code)
	suite.Equal("fund percentage out of range", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeSymbolNotFound, "symbol %s not listed", "BTCUSDT")
	suite.NotNil(err)
	suite.Equal(ErrCodeSymbolNotFound, err.Code)
	suite.Equal("symbol BTCUSDT not listed", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeTickerFailed, "failed to fetch ticker", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeTickerFailed, err.Code)
	suite.Equal("failed to fetch ticker", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeOrderFailed, cause, "failed to place %s order", "BUY")
	suite.NotNil(err)
	suite.Equal(ErrCodeOrderFailed, err.Code)
	suite.Equal("failed to place BUY order", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidStrategy, "unrecognized strategy kind")
	suite.Equal("[100] unrecognized strategy kind", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStorageUnavailable, "storage unavailable", cause)
	suite.Equal("[200] storage unavailable: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeTickerFailed, "failed to fetch ticker", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidMode, "unrecognized mode")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidBuyStep, "buy step out of range")
	suite.Equal(ErrCodeInvalidBuyStep, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeOrderNotConfirmed, "order not confirmed")
	wrapped := fmt.Errorf("order placement: %w", cause)
	suite.Equal(ErrCodeOrderNotConfirmed, GetCode(wrapped))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	err := errors.New("plain error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeOrderFailed, "order rejected")
	suite.True(HasCode(err, ErrCodeOrderFailed))
	suite.False(HasCode(err, ErrCodeOrderNotConfirmed))
}

func (suite *ErrorTestSuite) TestIsValidation() {
	suite.True(IsValidation(New(ErrCodeInvalidBoughtState, "bought state inconsistent")))
	suite.False(IsValidation(New(ErrCodeOrderFailed, "order rejected")))
}

func (suite *ErrorTestSuite) TestIsExecution() {
	suite.True(IsExecution(New(ErrCodeBalanceFetchFailed, "balance fetch failed")))
	suite.False(IsExecution(New(ErrCodeInvalidSellStep, "sell step out of range")))
}
