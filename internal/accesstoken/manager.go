// Package accesstoken decides when a connector bearer token must be
// refreshed, runs the refresh through the connector's own auth flow, and
// caches the result.
package accesstoken

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/metrics"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/storage"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// RefreshRequired applies the expiry policy to a cached token at a given
// instant. A missing token always needs a refresh. A token without a
// creation timestamp is a static credential and never expires. Otherwise
// the token is stale once now passes CreatedAt + ExpiresIn.
func RefreshRequired(tok *types.AccessToken, now time.Time) bool {
	if tok == nil {
		return true
	}
	if tok.CreatedAt == nil {
		return false
	}
	return now.After(tok.CreatedAt.Add(time.Duration(tok.ExpiresIn) * time.Second))
}

// Manager coordinates the token cache and the refresh sub-flow. There is
// deliberately no lock around the read-decide-refresh-write sequence:
// concurrent callers may both refresh, last write wins, and every caller
// still holds a valid token.
type Manager struct {
	store   storage.TokenStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewManager(store storage.TokenStore, m *metrics.Metrics, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// AddAccessToken resolves the token requirement for one connector call.
// Connectors that do not use tokens for the payment method get an
// Unsupported result without touching the cache. Cache read errors other
// than a miss abort the call; a successful refresh is persisted
// best-effort, with a write failure logged and swallowed so the fresh
// token is still used.
func AddAccessToken[F types.Flow, Req any, Resp any](
	ctx context.Context,
	m *Manager,
	platform connector.Platform,
	conn *registry.ConnectorData,
	data *types.RouterData[F, Req, Resp],
) (types.AccessTokenResult, error) {
	if !conn.SupportsAccessToken(data.PaymentMethod) {
		return types.AccessTokenResult{State: types.AccessTokenUnsupported}, nil
	}

	var cached *types.AccessToken
	if conn.TokenAcquisition == registry.TokenCached {
		tok, err := m.store.Get(ctx, data.MerchantID, conn.Name)
		if err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
			return types.AccessTokenResult{}, fmt.Errorf("reading cached token for %s: %w", conn.Name, err)
		}
		cached = tok

		if !RefreshRequired(cached, time.Now()) {
			return types.AccessTokenResult{
				State: types.AccessTokenAcquired,
				Token: cached,
			}, nil
		}
	}

	tokenData := types.Reinterpret[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken](
		data,
		types.AccessTokenRequest{OldToken: cached},
	)

	tokenData, err := orchestration.ExecuteConnectorStep(
		ctx, platform, conn.Capabilities.AccessTokenAuth, tokenData, orchestration.Trigger,
	)
	if err != nil {
		return types.AccessTokenResult{}, err
	}

	if tokenData.Failure != nil {
		return types.AccessTokenResult{
			State: types.AccessTokenFailed,
			Err:   tokenData.Failure,
		}, nil
	}

	if tokenData.Response == nil {
		return types.AccessTokenResult{}, fmt.Errorf("token flow for %s produced no outcome", conn.Name)
	}

	fresh := *tokenData.Response
	m.metrics.TokenRefreshed(conn.Name)

	if conn.TokenAcquisition == registry.TokenCached {
		ttl := time.Duration(fresh.ExpiresIn) * time.Second
		if err := m.store.Set(ctx, data.MerchantID, conn.Name, fresh, ttl); err != nil {
			m.logger.Error("failed to cache access token",
				"connector", conn.Name,
				"merchant_id", data.MerchantID,
				"error", err,
			)
		}
	}

	return types.AccessTokenResult{
		State: types.AccessTokenAcquired,
		Token: &fresh,
	}, nil
}

// UpdateRouterData merges a token result into the call context. The merge
// only applies when the connector uses tokens and the call will actually
// hit the network. The boolean reports whether the main call should still
// proceed: a failed token fetch lands as the call's failure and stops it.
func UpdateRouterData[F types.Flow, Req any, Resp any](
	data *types.RouterData[F, Req, Resp],
	result types.AccessTokenResult,
	action orchestration.CallAction,
) bool {
	if !result.Supported() || action != orchestration.Trigger {
		return true
	}

	switch result.State {
	case types.AccessTokenAcquired:
		data.AccessToken = result.Token
		return true
	case types.AccessTokenFailed:
		data.SetFailure(result.Err)
		return false
	default:
		return true
	}
}
