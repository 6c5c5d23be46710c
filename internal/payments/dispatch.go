// Package payments is the top-level dispatch layer: it resolves auth
// prerequisites for a connector call and then runs the orchestration cycle.
package payments

import (
	"context"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/accesstoken"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// Dispatch runs one operation end to end: access-token resolution first
// (only when the call will be triggered), then the connector cycle. A
// failed token fetch becomes the operation's failure without the main
// request ever being sent.
func Dispatch[F types.Flow, Req any, Resp any](
	ctx context.Context,
	platform connector.Platform,
	tokens *accesstoken.Manager,
	conn *registry.ConnectorData,
	integration connector.Integration[F, Req, Resp],
	data *types.RouterData[F, Req, Resp],
	action orchestration.CallAction,
) (*types.RouterData[F, Req, Resp], error) {
	if action == orchestration.Trigger {
		result, err := accesstoken.AddAccessToken(ctx, tokens, platform, conn, data)
		if err != nil {
			return nil, err
		}
		if !accesstoken.UpdateRouterData(data, result, action) {
			return data, nil
		}
	}

	return orchestration.ExecuteConnectorStep(ctx, platform, integration, data, action)
}
