package payments_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/accesstoken"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/metrics"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/payments"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/storage"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routingTransport answers by URL so the token endpoint and the payment
// endpoint can be scripted independently.
type routingTransport struct {
	responses map[string]*connector.Response
	calls     []string
}

func (r *routingTransport) Send(_ context.Context, req *connector.Request) (*connector.Response, error) {
	r.calls = append(r.calls, req.URL)
	for prefix, res := range r.responses {
		if strings.HasPrefix(req.URL, prefix) {
			return res, nil
		}
	}
	return &connector.Response{StatusCode: 404, Body: []byte(`{"message":"not found"}`)}, nil
}

type authData = types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]

type fakeAuthorize struct {
	connector.NoPretasks[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]
}

func (fakeAuthorize) URL(*authData, *config.Connectors) (string, error) {
	return "https://processor.test/payments", nil
}

func (f fakeAuthorize) Headers(data *authData, _ *config.Connectors) ([]connector.Header, error) {
	if data.AccessToken == nil {
		return nil, connector.NewFailedToObtainAuthType()
	}
	return []connector.Header{{Name: connector.HeaderAuthorization, Value: "Bearer " + data.AccessToken.Token}}, nil
}

func (fakeAuthorize) RequestBody(*authData) ([]byte, error) {
	return []byte(`{}`), nil
}

func (f fakeAuthorize) BuildRequest(data *authData, connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.Authorize](f, data, connectors, "POST")
}

func (fakeAuthorize) HandleResponse(data *authData, res *connector.Response) error {
	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(res.Body, &parsed); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PaymentsResponse{ConnectorTransactionID: parsed.ID, Status: types.AttemptCharged})
	return nil
}

func (fakeAuthorize) ErrorResponse(res *connector.Response) (*types.ErrorResponse, error) {
	var body connector.ErrorBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	return connector.NormalizeError(res.StatusCode, body), nil
}

type tokenData = types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]

type fakeTokenAuth struct {
	connector.NoPretasks[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]
}

func (fakeTokenAuth) URL(*tokenData, *config.Connectors) (string, error) {
	return "https://processor.test/login", nil
}

func (fakeTokenAuth) Headers(*tokenData, *config.Connectors) ([]connector.Header, error) {
	return nil, nil
}

func (fakeTokenAuth) RequestBody(*tokenData) ([]byte, error) {
	return nil, nil
}

func (f fakeTokenAuth) BuildRequest(data *tokenData, connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.AccessTokenAuth](f, data, connectors, "POST")
}

func (fakeTokenAuth) HandleResponse(data *tokenData, res *connector.Response) error {
	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(res.Body, &parsed); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	now := time.Now()
	data.SetResponse(types.AccessToken{Token: parsed.Token, ExpiresIn: 3600, CreatedAt: &now})
	return nil
}

func (fakeTokenAuth) ErrorResponse(res *connector.Response) (*types.ErrorResponse, error) {
	var body connector.ErrorBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	return connector.NormalizeError(res.StatusCode, body), nil
}

func newEngine(transport connector.Transport) *payments.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	reg := registry.New()
	return payments.NewEngine(
		orchestration.NewState(transport, &config.Connectors{}, logger),
		accesstoken.NewManager(storage.NewMemoryTokenStore(), m, logger),
		reg,
	)
}

func tokenConnector() *registry.ConnectorData {
	return &registry.ConnectorData{
		Name:             "tokenproc",
		TokenAcquisition: registry.TokenCached,
		SupportsTokenFor: func(types.PaymentMethod) bool { return true },
		Capabilities: registry.Capabilities{
			AccessTokenAuth: fakeTokenAuth{},
			Authorize:       fakeAuthorize{},
		},
	}
}

func newAuthData() *authData {
	return &authData{
		MerchantID:    "merchant_1",
		ConnectorName: "tokenproc",
		PaymentID:     "pay_1",
		PaymentMethod: types.PaymentMethodCard,
		Request:       types.PaymentsAuthorizeRequest{AmountCents: 1000, Currency: "USD"},
	}
}

func TestDispatch_TokenThenMainCall(t *testing.T) {
	transport := &routingTransport{responses: map[string]*connector.Response{
		"https://processor.test/login":    {StatusCode: 200, Body: []byte(`{"token":"tok_1"}`)},
		"https://processor.test/payments": {StatusCode: 200, Body: []byte(`{"id":"txn_1"}`)},
	}}
	engine := newEngine(transport)
	conn := tokenConnector()

	data, err := payments.Dispatch(
		context.Background(), engine.Platform, engine.Tokens, conn,
		conn.Capabilities.Authorize, newAuthData(), orchestration.Trigger,
	)

	require.NoError(t, err)
	require.True(t, data.Succeeded())
	assert.Equal(t, "txn_1", data.Response.ConnectorTransactionID)
	require.Len(t, transport.calls, 2)
	assert.Equal(t, "https://processor.test/login", transport.calls[0])
	assert.Equal(t, "https://processor.test/payments", transport.calls[1])
	require.NotNil(t, data.AccessToken)
	assert.Equal(t, "tok_1", data.AccessToken.Token)
}

func TestDispatch_TokenFailureStopsMainCall(t *testing.T) {
	transport := &routingTransport{responses: map[string]*connector.Response{
		"https://processor.test/login": {
			StatusCode: 401,
			Body:       []byte(`{"errors":[{"code":"invalid_credentials","message":"bad api key"}]}`),
		},
	}}
	engine := newEngine(transport)
	conn := tokenConnector()

	data, err := payments.Dispatch(
		context.Background(), engine.Platform, engine.Tokens, conn,
		conn.Capabilities.Authorize, newAuthData(), orchestration.Trigger,
	)

	require.NoError(t, err)
	assert.False(t, data.Succeeded())
	require.NotNil(t, data.Failure)
	assert.Equal(t, "invalid_credentials", data.Failure.Code)

	// Only the login endpoint was hit.
	require.Len(t, transport.calls, 1)
	assert.Equal(t, "https://processor.test/login", transport.calls[0])
}

func TestDispatch_SkipBypassesTokensAndNetwork(t *testing.T) {
	transport := &routingTransport{responses: map[string]*connector.Response{}}
	engine := newEngine(transport)
	conn := tokenConnector()
	input := newAuthData()

	data, err := payments.Dispatch(
		context.Background(), engine.Platform, engine.Tokens, conn,
		conn.Capabilities.Authorize, input, orchestration.Skip,
	)

	require.NoError(t, err)
	assert.Same(t, input, data)
	assert.False(t, data.Completed())
	assert.Empty(t, transport.calls)
}

func TestDispatch_TokenlessConnectorGoesStraightToMainCall(t *testing.T) {
	transport := &routingTransport{responses: map[string]*connector.Response{
		"https://processor.test/payments": {StatusCode: 200, Body: []byte(`{"id":"txn_1"}`)},
	}}
	engine := newEngine(transport)
	conn := &registry.ConnectorData{
		Name:             "plainproc",
		TokenAcquisition: registry.TokenNone,
		Capabilities:     registry.Capabilities{Authorize: fakeAuthorize{}},
	}

	data := newAuthData()
	// Tokenless adapters carry their credentials on the request itself.
	data.AccessToken = &types.AccessToken{Token: "static"}

	data, err := payments.Dispatch(
		context.Background(), engine.Platform, engine.Tokens, conn,
		conn.Capabilities.Authorize, data, orchestration.Trigger,
	)

	require.NoError(t, err)
	require.True(t, data.Succeeded())
	require.Len(t, transport.calls, 1)
	assert.Equal(t, "https://processor.test/payments", transport.calls[0])
}
