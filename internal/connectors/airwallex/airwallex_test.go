package airwallex_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connectors/airwallex"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	res *connector.Response
	err error
}

type stubTransport struct {
	steps []step
	calls []*connector.Request
}

func (s *stubTransport) Send(_ context.Context, req *connector.Request) (*connector.Response, error) {
	s.calls = append(s.calls, req)
	if len(s.steps) == 0 {
		return nil, errors.New("no scripted response left")
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	return next.res, next.err
}

func awxConnectors() *config.Connectors {
	return &config.Connectors{
		Airwallex: config.ConnectorParams{BaseURL: "https://api-demo.airwallex.com/"},
	}
}

func newPlatform(transport connector.Transport) connector.Platform {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return orchestration.NewState(transport, awxConnectors(), logger)
}

func authorizeData() *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse] {
	return &types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]{
		MerchantID:    "merchant_1",
		ConnectorName: airwallex.Name,
		PaymentID:     "pay_1",
		ConnectorAuth: types.ConnectorAuth{APIKey: "awx-key", Key1: "client-1"},
		PaymentMethod: types.PaymentMethodCard,
		AccessToken:   &types.AccessToken{Token: "bearer-tok"},
		Request: types.PaymentsAuthorizeRequest{
			AmountCents:   2500,
			Currency:      "USD",
			CaptureMethod: types.CaptureAutomatic,
			Card: types.Card{
				Number:     "4111111111111111",
				ExpMonth:   "12",
				ExpYear:    "2030",
				HolderName: "Jane Doe",
				CVC:        "123",
			},
		},
	}
}

func TestLogin_BuildRequest(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]{
		ConnectorAuth: types.ConnectorAuth{APIKey: "awx-key", Key1: "client-1"},
	}

	req, err := conn.Capabilities.AccessTokenAuth.BuildRequest(data, awxConnectors())

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/authentication/login", req.URL)
	require.Len(t, req.Headers, 2)
	assert.Equal(t, "x-api-key", req.Headers[0].Name)
	assert.Equal(t, "awx-key", req.Headers[0].Value)
	assert.Equal(t, "x-client-id", req.Headers[1].Name)
	assert.Equal(t, "client-1", req.Headers[1].Value)
	assert.Nil(t, req.Body)
}

func TestLogin_MissingCredentials(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]{}

	_, err := conn.Capabilities.AccessTokenAuth.BuildRequest(data, awxConnectors())

	require.Error(t, err)
	connErr, ok := connector.IsConnectorError(err)
	require.True(t, ok)
	assert.Equal(t, connector.KindFailedToObtainAuthType, connErr.Kind)
}

func TestLogin_HandleResponseMintsToken(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]{}
	expiresAt := time.Now().Add(30 * time.Minute).UTC().Format(time.RFC3339)

	err := conn.Capabilities.AccessTokenAuth.HandleResponse(data, &connector.Response{
		StatusCode: 201,
		Body:       []byte(`{"token":"fresh-tok","expires_at":"` + expiresAt + `"}`),
	})

	require.NoError(t, err)
	require.True(t, data.Succeeded())
	assert.Equal(t, "fresh-tok", data.Response.Token)
	require.NotNil(t, data.Response.CreatedAt)
	assert.InDelta(t, 30*60, data.Response.ExpiresIn, 5)
}

func TestAuthorize_IntentPretaskThenConfirm(t *testing.T) {
	transport := &stubTransport{steps: []step{
		{res: &connector.Response{StatusCode: 200, Body: []byte(`{"id":"int_1","status":"REQUIRES_PAYMENT_METHOD"}`)}},
		{res: &connector.Response{StatusCode: 200, Body: []byte(`{"id":"int_1","status":"SUCCEEDED"}`)}},
	}}
	conn := airwallex.Register()
	data := authorizeData()

	data, err := orchestration.ExecuteConnectorStep(
		context.Background(), newPlatform(transport), conn.Capabilities.Authorize, data, orchestration.Trigger,
	)

	require.NoError(t, err)
	require.Len(t, transport.calls, 2)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/pa/payment_intents/create", transport.calls[0].URL)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/pa/payment_intents/int_1/confirm", transport.calls[1].URL)

	var intentBody map[string]any
	require.NoError(t, json.Unmarshal(transport.calls[0].Body, &intentBody))
	assert.Equal(t, float64(25), intentBody["amount"])
	assert.Equal(t, "USD", intentBody["currency"])
	assert.Equal(t, "pay_1", intentBody["merchant_order_id"])

	var confirmBody map[string]any
	require.NoError(t, json.Unmarshal(transport.calls[1].Body, &confirmBody))
	pm := confirmBody["payment_method"].(map[string]any)
	assert.Equal(t, "card", pm["type"])
	card := pm["card"].(map[string]any)
	assert.Equal(t, "4111111111111111", card["number"])

	assert.Equal(t, "int_1", data.ReferenceID)
	require.True(t, data.Succeeded())
	assert.Equal(t, "int_1", data.Response.ConnectorTransactionID)
	assert.Equal(t, types.AttemptCharged, data.Response.Status)
}

func TestAuthorize_ExistingIntentSkipsPretask(t *testing.T) {
	transport := &stubTransport{steps: []step{
		{res: &connector.Response{StatusCode: 200, Body: []byte(`{"id":"int_9","status":"REQUIRES_CAPTURE"}`)}},
	}}
	conn := airwallex.Register()
	data := authorizeData()
	data.ReferenceID = "int_9"
	data.Request.CaptureMethod = types.CaptureManual

	data, err := orchestration.ExecuteConnectorStep(
		context.Background(), newPlatform(transport), conn.Capabilities.Authorize, data, orchestration.Trigger,
	)

	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/pa/payment_intents/int_9/confirm", transport.calls[0].URL)

	var body map[string]any
	require.NoError(t, json.Unmarshal(transport.calls[0].Body, &body))
	options := body["payment_method_options"].(map[string]any)
	card := options["card"].(map[string]any)
	assert.Equal(t, false, card["auto_capture"])

	require.True(t, data.Succeeded())
	assert.Equal(t, types.AttemptAuthorized, data.Response.Status)
}

func TestAuthorize_RejectedIntentAbortsConfirm(t *testing.T) {
	transport := &stubTransport{steps: []step{
		{res: &connector.Response{
			StatusCode: 400,
			Body:       []byte(`{"code":"validation_error","message":"currency not supported"}`),
		}},
	}}
	conn := airwallex.Register()

	result, err := orchestration.ExecuteConnectorStep(
		context.Background(), newPlatform(transport), conn.Capabilities.Authorize, authorizeData(), orchestration.Trigger,
	)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "validation_error")
	assert.Len(t, transport.calls, 1)
}

func TestAuthorize_MissingTokenFailsBeforeNetwork(t *testing.T) {
	transport := &stubTransport{}
	conn := airwallex.Register()
	data := authorizeData()
	data.AccessToken = nil

	_, err := orchestration.ExecuteConnectorStep(
		context.Background(), newPlatform(transport), conn.Capabilities.Authorize, data, orchestration.Trigger,
	)

	require.Error(t, err)
	connErr, ok := connector.IsConnectorError(err)
	require.True(t, ok)
	assert.Equal(t, connector.KindFailedToObtainAuthType, connErr.Kind)
	assert.Empty(t, transport.calls)
}

func TestRequestID_IsDeterministicPerStep(t *testing.T) {
	conn := airwallex.Register()
	data := authorizeData()
	data.ReferenceID = "int_1"

	first, err := conn.Capabilities.Authorize.RequestBody(data)
	require.NoError(t, err)
	second, err := conn.Capabilities.Authorize.RequestBody(data)
	require.NoError(t, err)

	// Rebuilding the same call reuses the same idempotency key.
	assert.Equal(t, first, second)

	var body map[string]any
	require.NoError(t, json.Unmarshal(first, &body))
	assert.NotEmpty(t, body["request_id"])
}

func TestCapture_BuildRequest(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse]{
		PaymentID:   "pay_1",
		AccessToken: &types.AccessToken{Token: "bearer-tok"},
		Request:     types.PaymentsCaptureRequest{AmountCents: 2500, ConnectorTransactionID: "int_1"},
	}

	req, err := conn.Capabilities.Capture.BuildRequest(data, awxConnectors())

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/pa/payment_intents/int_1/capture", req.URL)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, float64(25), body["amount"])
}

func TestPSync_BuildRequest(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse]{
		AccessToken: &types.AccessToken{Token: "bearer-tok"},
		Request:     types.PaymentsSyncRequest{ConnectorTransactionID: "int_1"},
	}

	req, err := conn.Capabilities.PSync.BuildRequest(data, awxConnectors())

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/pa/payment_intents/int_1", req.URL)
	assert.Nil(t, req.Body)
}

func TestVoid_StatusMapsToVoided(t *testing.T) {
	transport := &stubTransport{steps: []step{
		{res: &connector.Response{StatusCode: 200, Body: []byte(`{"id":"int_1","status":"CANCELLED"}`)}},
	}}
	conn := airwallex.Register()
	data := &types.RouterData[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse]{
		PaymentID:   "pay_1",
		AccessToken: &types.AccessToken{Token: "bearer-tok"},
		Request:     types.PaymentsCancelRequest{ConnectorTransactionID: "int_1", CancellationReason: "requested_by_customer"},
	}

	data, err := orchestration.ExecuteConnectorStep(
		context.Background(), newPlatform(transport), conn.Capabilities.Void, data, orchestration.Trigger,
	)

	require.NoError(t, err)
	require.True(t, data.Succeeded())
	assert.Equal(t, types.AttemptVoided, data.Response.Status)
}

func TestRefundExecute_BuildRequest(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse]{
		AccessToken: &types.AccessToken{Token: "bearer-tok"},
		Request: types.RefundsRequest{
			RefundID:               "ref_1",
			ConnectorTransactionID: "int_1",
			AmountCents:            1000,
			Currency:               "USD",
			Reason:                 "requested_by_customer",
		},
	}

	req, err := conn.Capabilities.RefundExecute.BuildRequest(data, awxConnectors())

	require.NoError(t, err)
	assert.Equal(t, "https://api-demo.airwallex.com/api/v1/pa/refunds/create", req.URL)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "int_1", body["payment_intent_id"])
	assert.Equal(t, float64(10), body["amount"])
	assert.Equal(t, "requested_by_customer", body["reason"])
}

func TestRefundSync_MissingRefundID(t *testing.T) {
	conn := airwallex.Register()
	data := &types.RouterData[types.RefundSync, types.RefundsRequest, types.RefundsResponse]{
		AccessToken: &types.AccessToken{Token: "bearer-tok"},
	}

	_, err := conn.Capabilities.RefundSync.BuildRequest(data, awxConnectors())

	require.Error(t, err)
	connErr, ok := connector.IsConnectorError(err)
	require.True(t, ok)
	assert.Equal(t, connector.KindMissingRequiredField, connErr.Kind)
	assert.Equal(t, "connector_refund_id", connErr.Field)
}

func TestRefundExecute_StatusMapping(t *testing.T) {
	tests := []struct {
		processor string
		want      types.RefundStatus
	}{
		{"RECEIVED", types.RefundPending},
		{"ACCEPTED", types.RefundPending},
		{"SUCCEEDED", types.RefundSuccess},
		{"FAILED", types.RefundFailed},
	}

	conn := airwallex.Register()
	for _, tt := range tests {
		t.Run(tt.processor, func(t *testing.T) {
			data := &types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse]{}
			err := conn.Capabilities.RefundExecute.HandleResponse(data, &connector.Response{
				StatusCode: 200,
				Body:       []byte(`{"id":"rfnd_1","status":"` + tt.processor + `"}`),
			})

			require.NoError(t, err)
			require.True(t, data.Succeeded())
			assert.Equal(t, tt.want, data.Response.Status)
		})
	}
}

func TestErrorResponse_EmptyPayloadGetsPlaceholders(t *testing.T) {
	conn := airwallex.Register()

	errResp, err := conn.Capabilities.Authorize.ErrorResponse(&connector.Response{
		StatusCode: 500,
		Body:       []byte(`{}`),
	})

	require.NoError(t, err)
	assert.Equal(t, 500, errResp.StatusCode)
	assert.Equal(t, types.DefaultErrorCode, errResp.Code)
	assert.Equal(t, types.DefaultErrorMessage, errResp.Message)
}
