// Package orchestration drives one logical connector operation through an
// adapter's Integration: pretasks, request assembly, the network round trip,
// and parsing of exactly one of the success or error schema.
package orchestration

import (
	"context"
	"fmt"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// CallAction tells the orchestrator whether to actually hit the network.
// It is passed down into nested sub-flows so one top-level Skip suppresses
// every call in the tree.
type CallAction uint8

const (
	// Trigger performs the network step and parses a real response.
	Trigger CallAction = iota
	// Skip returns the context unchanged without any network I/O.
	Skip
)

func (a CallAction) String() string {
	if a == Skip {
		return "skip"
	}
	return "trigger"
}

// ExecuteConnectorStep runs one full cycle of a flow against a connector.
// Construction errors abort before anything is sent; parse errors abort
// after the round trip. A processor-reported business error is not an
// error here: it lands on data as a normalized failure and the call
// returns cleanly.
func ExecuteConnectorStep[F types.Flow, Req any, Resp any](
	ctx context.Context,
	platform connector.Platform,
	integration connector.Integration[F, Req, Resp],
	data *types.RouterData[F, Req, Resp],
	action CallAction,
) (*types.RouterData[F, Req, Resp], error) {
	if action == Skip {
		return data, nil
	}

	var flow F

	if err := integration.Pretasks(ctx, data, platform); err != nil {
		return nil, fmt.Errorf("pretask failed for %s flow on %s: %w", flow.FlowName(), data.ConnectorName, err)
	}

	req, err := integration.BuildRequest(data, platform.Connectors())
	if err != nil {
		return nil, fmt.Errorf("building %s request for %s: %w", flow.FlowName(), data.ConnectorName, err)
	}
	if req == nil {
		// Flow not applicable for this connector.
		return data, nil
	}

	res, err := platform.Transport().Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sending %s request to %s: %w", flow.FlowName(), data.ConnectorName, err)
	}

	platform.Logger().Debug("connector call completed",
		"connector", data.ConnectorName,
		"flow", flow.FlowName(),
		"status_code", res.StatusCode,
	)

	if res.Success() {
		if err := integration.HandleResponse(data, res); err != nil {
			return nil, fmt.Errorf("handling %s response from %s: %w", flow.FlowName(), data.ConnectorName, err)
		}
		return data, nil
	}

	errResp, err := integration.ErrorResponse(res)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s error from %s: %w", flow.FlowName(), data.ConnectorName, err)
	}
	data.SetFailure(errResp)
	return data, nil
}
