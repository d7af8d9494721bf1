package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1
	ErrCodeFatal   ErrorCode = 2

	// Validation errors (100-199)
	ErrCodeInvalidStrategy       ErrorCode = 100
	ErrCodeInvalidAverageMethod  ErrorCode = 101
	ErrCodeInvalidAverageWindow  ErrorCode = 102
	ErrCodeInvalidBuyStep        ErrorCode = 103
	ErrCodeInvalidSellStep       ErrorCode = 104
	ErrCodeInvalidStopLossStep   ErrorCode = 105
	ErrCodeInvalidCommissionKind ErrorCode = 106
	ErrCodeInvalidPauseCycles    ErrorCode = 107
	ErrCodeInvalidFundPercentage ErrorCode = 108
	ErrCodeInvalidBoughtState    ErrorCode = 109
	ErrCodeInvalidMode           ErrorCode = 110
	ErrCodeInvalidCredentials    ErrorCode = 111
	ErrCodeInvalidParameter      ErrorCode = 112

	// Derivation errors (200-299)
	ErrCodeStorageUnavailable  ErrorCode = 200
	ErrCodeTickerFailed        ErrorCode = 201
	ErrCodeAverageFailed       ErrorCode = 202
	ErrCodeNoExchangeForSymbol ErrorCode = 203
	ErrCodeSymbolNotFound      ErrorCode = 204

	// Configuration errors (400-499)
	ErrCodeConfigReadFailed  ErrorCode = 400
	ErrCodeConfigWriteFailed ErrorCode = 401
	ErrCodeConfigParseFailed ErrorCode = 402
	ErrCodeInvalidAppConfig  ErrorCode = 403

	// Execution errors (500-599)
	ErrCodeOrderFailed        ErrorCode = 500
	ErrCodeOrderNotConfirmed  ErrorCode = 501
	ErrCodeBalanceFetchFailed ErrorCode = 502
	ErrCodeUnsupportedSide    ErrorCode = 503

	// Notification errors (600-699)
	ErrCodeNotificationFailed ErrorCode = 600
)
