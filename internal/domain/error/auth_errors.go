package error

import "errors"

// Bearer token errors raised by the token service.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode identifies why a request could not be authenticated.
// Format: AUTH-XXYYYY, kept apart from ledger codes so clients can tell
// credential problems from ledger rejections.
type AuthErrorCode string

const (
	ErrCodeInvalidToken AuthErrorCode = "AUTH-010001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-010002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-010003"
)
