package model

import "errors"

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature mismatch")
	ErrTokenRevoked   = errors.New("refresh token revoked")
	ErrTokenMismatch  = errors.New("refresh token mismatch")
)
