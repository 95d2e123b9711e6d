package token

import "errors"

var (
	ErrInvalidScope = errors.New("scope does not exist under property")
	ErrMalformed    = errors.New("token is unknown or malformed")
	ErrExpired      = errors.New("token has expired")
	ErrRevoked      = errors.New("token has been revoked")
)
