// Package connector defines the contract every external-processor adapter
// implements, one Integration instantiation per (adapter, flow) pair, plus
// the shared request descriptor, error kinds and error-normalization policy
// the orchestration engine drives them through.
package connector

import (
	"context"
	"log/slog"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// Transport performs one network round trip for an assembled Request.
// Retry and timeout policy live behind this interface, not in the engine.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Platform is what adapters and the orchestrator see of the running switch:
// the transport to send through, the configured connector endpoints, and a
// logger. Pretasks receive it so they can drive nested orchestration cycles.
type Platform interface {
	Transport() Transport
	Connectors() *config.Connectors
	Logger() *slog.Logger
}

// Integration is the capability contract for one (adapter, flow) pair.
//
// URL, Headers and RequestBody must be pure: given the same RouterData and
// connector settings they return byte-identical output. BuildRequest composes
// them into a Request without performing I/O; returning a nil Request means
// the flow is not applicable and the orchestrator leaves the context
// unchanged. Exactly one of HandleResponse or ErrorResponse runs per
// completed cycle, selected by the transport's reported HTTP outcome.
type Integration[F types.Flow, Req any, Resp any] interface {
	URL(data *types.RouterData[F, Req, Resp], connectors *config.Connectors) (string, error)
	Headers(data *types.RouterData[F, Req, Resp], connectors *config.Connectors) ([]Header, error)
	RequestBody(data *types.RouterData[F, Req, Resp]) ([]byte, error)
	BuildRequest(data *types.RouterData[F, Req, Resp], connectors *config.Connectors) (*Request, error)

	// HandleResponse deserializes the processor's success schema and maps it
	// into the canonical response payload on data.
	HandleResponse(data *types.RouterData[F, Req, Resp], res *Response) error

	// ErrorResponse normalizes the processor's error payload. A payload that
	// fails to parse is a ResponseDeserializationFailed error, not a
	// best-effort guess.
	ErrorResponse(res *Response) (*types.ErrorResponse, error)

	// Pretasks runs any dependent sub-calls a composite flow needs before
	// its main cycle. Implementations mutate data so the main build steps
	// can reference what the sub-calls produced.
	Pretasks(ctx context.Context, data *types.RouterData[F, Req, Resp], platform Platform) error
}

// AssembleRequest composes an Integration's URL, Headers and RequestBody
// into a Request. Most BuildRequest implementations delegate here; flows
// with unusual composition write their own.
func AssembleRequest[F types.Flow, Req any, Resp any](
	i Integration[F, Req, Resp],
	data *types.RouterData[F, Req, Resp],
	connectors *config.Connectors,
	method string,
) (*Request, error) {
	url, err := i.URL(data, connectors)
	if err != nil {
		return nil, err
	}

	headers, err := i.Headers(data, connectors)
	if err != nil {
		return nil, err
	}

	body, err := i.RequestBody(data)
	if err != nil {
		return nil, err
	}

	return NewRequestBuilder().
		Method(method).
		URL(url).
		Headers(headers).
		Body(body).
		Build(), nil
}

// Unsupported is the explicit no-op Integration for flows a connector does
// not support. Its BuildRequest returns no request, which the orchestrator
// treats as "operation not applicable, return unchanged context".
type Unsupported[F types.Flow, Req any, Resp any] struct{}

func (Unsupported[F, Req, Resp]) URL(*types.RouterData[F, Req, Resp], *config.Connectors) (string, error) {
	return "", nil
}

func (Unsupported[F, Req, Resp]) Headers(*types.RouterData[F, Req, Resp], *config.Connectors) ([]Header, error) {
	return nil, nil
}

func (Unsupported[F, Req, Resp]) RequestBody(*types.RouterData[F, Req, Resp]) ([]byte, error) {
	return nil, nil
}

func (Unsupported[F, Req, Resp]) BuildRequest(*types.RouterData[F, Req, Resp], *config.Connectors) (*Request, error) {
	return nil, nil
}

func (Unsupported[F, Req, Resp]) HandleResponse(*types.RouterData[F, Req, Resp], *Response) error {
	return nil
}

func (Unsupported[F, Req, Resp]) ErrorResponse(res *Response) (*types.ErrorResponse, error) {
	return &types.ErrorResponse{
		StatusCode: res.StatusCode,
		Code:       types.DefaultErrorCode,
		Message:    types.DefaultErrorMessage,
	}, nil
}

func (Unsupported[F, Req, Resp]) Pretasks(context.Context, *types.RouterData[F, Req, Resp], Platform) error {
	return nil
}

// NoPretasks is embedded by integrations whose flow needs no dependent
// sub-calls.
type NoPretasks[F types.Flow, Req any, Resp any] struct{}

func (NoPretasks[F, Req, Resp]) Pretasks(context.Context, *types.RouterData[F, Req, Resp], Platform) error {
	return nil
}
