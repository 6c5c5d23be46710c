// Package storage holds the access-token cache contract and the in-memory
// implementation.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// ErrTokenNotFound is the non-fatal "no cached token" answer. Any other
// error from Get is an infrastructure fault and must be propagated.
var ErrTokenNotFound = errors.New("access token not found")

// TokenStore caches access tokens keyed by (merchant, connector). Set
// failures must never abort a caller's in-progress operation; callers log
// them and move on.
type TokenStore interface {
	Get(ctx context.Context, merchantID, connectorName string) (*types.AccessToken, error)
	Set(ctx context.Context, merchantID, connectorName string, token types.AccessToken, ttl time.Duration) error
}
