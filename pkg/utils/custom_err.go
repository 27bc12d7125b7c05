package utils

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date format")
	ErrFieldWrite      = errors.New("failed to write payload field")
	ErrPayloadEncoding = errors.New("failed to encode payload")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDatabaseError   = errors.New("database error")
	ErrQuoteAPIError   = errors.New("quotation api error")
)
