package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidTradeSize     ErrorCode = 111
	ErrCodeInvalidPremiumRate   ErrorCode = 112

	// Input errors (200-299)
	ErrCodeInvalidInputFile ErrorCode = 200
	ErrCodeInputNotFound    ErrorCode = 201
	ErrCodeQueryFailed      ErrorCode = 202
	ErrCodeDataParseFailed  ErrorCode = 203

	// Engine errors (600-699)
	ErrCodeInvariantViolation ErrorCode = 600

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800
)
