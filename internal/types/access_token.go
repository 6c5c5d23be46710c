package types

import "time"

// AccessToken is a bearer credential minted by a connector's
// AccessTokenAuth flow. Tokens are replaced, never mutated: once a new one
// is minted the old value is discarded.
type AccessToken struct {
	Token     string
	ExpiresIn int64 // validity in seconds, as declared by the connector

	// CreatedAt is recorded when the token was minted. Tokens without a
	// creation timestamp are treated as static, non-expiring credentials.
	CreatedAt *time.Time
}

// AccessTokenRequest is the request payload of the AccessTokenAuth flow.
// Connectors exchanging a refresh token find the previous token here.
type AccessTokenRequest struct {
	OldToken *AccessToken
}

// AccessTokenState distinguishes "this connector does not use tokens" from
// "the token fetch failed" from "a token is available".
type AccessTokenState uint8

const (
	AccessTokenUnsupported AccessTokenState = iota
	AccessTokenAcquired
	AccessTokenFailed
)

// AccessTokenResult is the per-call outcome of the access-token manager.
// It is a value object, never persisted.
type AccessTokenResult struct {
	State AccessTokenState
	Token *AccessToken   // set when State is AccessTokenAcquired
	Err   *ErrorResponse // set when State is AccessTokenFailed
}

// Supported reports whether the connector uses access tokens at all.
func (r AccessTokenResult) Supported() bool {
	return r.State != AccessTokenUnsupported
}
