package core

import "errors"

// ErrorCode is a numeric error code reported by the exchange.
type ErrorCode int16

// Exchange error codes with special handling.
const (
	ErrCodeUnknown          ErrorCode = -1000
	ErrCodeDisconnected     ErrorCode = -1001
	ErrCodeUnauthorized     ErrorCode = -1002
	ErrCodeTooManyRequests  ErrorCode = -1003
	ErrCodeTooManyOrders    ErrorCode = -1015
	ErrCodeInvalidTimestamp ErrorCode = -1021
	ErrCodeInvalidSignature ErrorCode = -1022
	ErrCodeIllegalChars     ErrorCode = -1100
	ErrCodeMandatoryParam   ErrorCode = -1102
	ErrCodeBadSymbol        ErrorCode = -1121
	ErrCodeNewOrderRejected ErrorCode = -2010
	ErrCodeCancelRejected   ErrorCode = -2011
	ErrCodeNoSuchOrder      ErrorCode = -2013
	ErrCodeBadAPIKeyFormat  ErrorCode = -2014
	ErrCodeRejectedMBXKey   ErrorCode = -2015
)

// ClassifyCode maps an exchange error code to its ErrorType.
func ClassifyCode(code int16) ErrorType {
	switch ErrorCode(code) {
	case ErrCodeTooManyRequests, ErrCodeTooManyOrders:
		return ErrorTypeRateLimit
	case ErrCodeUnauthorized, ErrCodeInvalidSignature, ErrCodeBadAPIKeyFormat, ErrCodeRejectedMBXKey:
		return ErrorTypeAuthentication
	case ErrCodeInvalidTimestamp:
		return ErrorTypeTimestamp
	case ErrCodeNewOrderRejected, ErrCodeCancelRejected:
		return ErrorTypeInvalidOrder
	case ErrCodeNoSuchOrder:
		return ErrorTypeBadRequest
	case ErrCodeUnknown, ErrCodeDisconnected:
		return ErrorTypeServerError
	}

	switch {
	case code <= -1100 && code >= -1199:
		return ErrorTypeBadRequest
	case code <= -1000 && code >= -1099:
		return ErrorTypeServerError
	case code <= -2000 && code >= -2099:
		return ErrorTypeInvalidOrder
	}
	return ErrorTypeUnknown
}

// IsErrorCode checks if the error is an exchange error carrying the specified code.
func IsErrorCode(err error, code ErrorCode) bool {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return ErrorCode(exErr.Code) == code
	}
	return false
}
