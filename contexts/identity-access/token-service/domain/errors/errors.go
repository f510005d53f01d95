package errors

import "errors"

var (
	// ErrTokenExpired: the token's expiry has passed. For refresh tokens the
	// expired row is purged as a side effect of detection.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid: signature, form, or claims are not acceptable.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenRevoked: the refresh token has no live row (already consumed,
	// logged out, or replaced by a newer login).
	ErrTokenRevoked = errors.New("refresh token revoked")
	// ErrSigningFailed: the signer could not produce a token. Configuration
	// level failure, not a caller error.
	ErrSigningFailed = errors.New("token signing failed")
)
