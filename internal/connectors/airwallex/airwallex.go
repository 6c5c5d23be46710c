// Package airwallex implements the Airwallex card-payments adapter.
// Airwallex authenticates with short-lived bearer tokens minted by a login
// call, and a payment must exist as a payment intent before it can be
// confirmed, so the authorize flow chains an intent-creation sub-call.
package airwallex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

const Name = "airwallex"

type Airwallex struct{}

// Register builds the connector entry for the dispatch registry. Tokens are
// cached until expiry and apply to every payment method.
func Register() *registry.ConnectorData {
	a := &Airwallex{}
	return &registry.ConnectorData{
		Name:             Name,
		TokenAcquisition: registry.TokenCached,
		SupportsTokenFor: func(types.PaymentMethod) bool { return true },
		Capabilities: registry.Capabilities{
			AccessTokenAuth: accessTokenAuth{Airwallex: a},
			InitPayment:     initPayment{Airwallex: a},
			Authorize:       authorize{Airwallex: a},
			Capture:         capture{Airwallex: a},
			Void:            void{Airwallex: a},
			PSync:           psync{Airwallex: a},
			RefundExecute:   refundExecute{Airwallex: a},
			RefundSync:      refundSync{Airwallex: a},
		},
	}
}

func baseURL(connectors *config.Connectors) string {
	return strings.TrimSuffix(connectors.Airwallex.BaseURL, "/")
}

// bearerHeaders builds the headers every post-login call carries. The token
// is merged onto the call context before dispatch; its absence here means
// the token step was skipped, which is a credential wiring bug.
func (a *Airwallex) bearerHeaders(token *types.AccessToken) ([]connector.Header, error) {
	if token == nil || token.Token == "" {
		return nil, connector.NewFailedToObtainAuthType()
	}
	return []connector.Header{
		{Name: connector.HeaderContentType, Value: connector.ContentTypeJSON},
		{Name: connector.HeaderAuthorization, Value: "Bearer " + token.Token},
	}, nil
}

// ErrorResponse is shared by every Airwallex flow: the payload is a flat
// code/message pair.
func (a *Airwallex) ErrorResponse(res *connector.Response) (*types.ErrorResponse, error) {
	var body apiError
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}

	code := body.Code
	if code == "" {
		code = types.DefaultErrorCode
	}
	message := body.Message
	if message == "" {
		message = types.DefaultErrorMessage
	}

	return &types.ErrorResponse{
		StatusCode: res.StatusCode,
		Code:       code,
		Message:    message,
	}, nil
}

type accessTokenAuth struct {
	*Airwallex
	connector.NoPretasks[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]
}

func (t accessTokenAuth) URL(_ *types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken], connectors *config.Connectors) (string, error) {
	return baseURL(connectors) + "/api/v1/authentication/login", nil
}

func (t accessTokenAuth) Headers(data *types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken], _ *config.Connectors) ([]connector.Header, error) {
	if data.ConnectorAuth.APIKey == "" || data.ConnectorAuth.Key1 == "" {
		return nil, connector.NewFailedToObtainAuthType()
	}
	return []connector.Header{
		{Name: "x-api-key", Value: data.ConnectorAuth.APIKey},
		{Name: "x-client-id", Value: data.ConnectorAuth.Key1},
	}, nil
}

func (t accessTokenAuth) RequestBody(_ *types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]) ([]byte, error) {
	return nil, nil
}

func (t accessTokenAuth) BuildRequest(data *types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.AccessTokenAuth](t, data, connectors, http.MethodPost)
}

func (t accessTokenAuth) HandleResponse(data *types.RouterData[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken], res *connector.Response) error {
	var resp loginResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}

	now := time.Now()
	data.SetResponse(types.AccessToken{
		Token:     resp.Token,
		ExpiresIn: int64(resp.ExpiresAt.Sub(now).Seconds()),
		CreatedAt: &now,
	})
	return nil
}

type initPayment struct {
	*Airwallex
	connector.NoPretasks[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse]
}

func (i initPayment) URL(_ *types.RouterData[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse], connectors *config.Connectors) (string, error) {
	return baseURL(connectors) + "/api/v1/pa/payment_intents/create", nil
}

func (i initPayment) Headers(data *types.RouterData[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return i.bearerHeaders(data.AccessToken)
}

func (i initPayment) RequestBody(data *types.RouterData[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse]) ([]byte, error) {
	body := intentRequest{
		RequestID:       requestID(data.PaymentID, "create"),
		Amount:          centsToMajor(data.Request.AmountCents),
		Currency:        data.Request.Currency,
		MerchantOrderID: data.PaymentID,
	}
	return marshalBody(body)
}

func (i initPayment) BuildRequest(data *types.RouterData[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.InitPayment](i, data, connectors, http.MethodPost)
}

func (i initPayment) HandleResponse(data *types.RouterData[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse], res *connector.Response) error {
	var resp intentResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PaymentsResponse{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status),
	})
	return nil
}

type authorize struct {
	*Airwallex
}

// Pretasks creates the payment intent when no earlier step has. The intent
// id lands on ReferenceID so the confirm URL can embed it. An intent the
// processor rejects aborts the authorization before the confirm is sent.
func (a authorize) Pretasks(ctx context.Context, data *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse], platform connector.Platform) error {
	if data.ReferenceID != "" {
		return nil
	}

	initData := types.Reinterpret[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse](data, data.Request)
	initData, err := orchestration.ExecuteConnectorStep(
		ctx, platform, initPayment{Airwallex: a.Airwallex}, initData, orchestration.Trigger,
	)
	if err != nil {
		return err
	}
	if initData.Failure != nil {
		return fmt.Errorf("payment intent rejected by airwallex: %s (code %s)", initData.Failure.Message, initData.Failure.Code)
	}

	data.ReferenceID = initData.Response.ConnectorTransactionID
	return nil
}

func (a authorize) URL(data *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse], connectors *config.Connectors) (string, error) {
	if data.ReferenceID == "" {
		return "", connector.NewMissingRequiredField("payment_intent_id")
	}
	return fmt.Sprintf("%s/api/v1/pa/payment_intents/%s/confirm", baseURL(connectors), data.ReferenceID), nil
}

func (a authorize) Headers(data *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return a.bearerHeaders(data.AccessToken)
}

func (a authorize) RequestBody(data *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]) ([]byte, error) {
	if data.Request.Card.Number == "" {
		return nil, connector.NewMissingRequiredField("card.number")
	}

	body := confirmRequest{
		RequestID: requestID(data.PaymentID, "confirm"),
		PaymentMethod: paymentMethod{
			Type: "card",
			Card: cardDetails{
				Number:      data.Request.Card.Number,
				ExpiryMonth: data.Request.Card.ExpMonth,
				ExpiryYear:  data.Request.Card.ExpYear,
				CVC:         data.Request.Card.CVC,
				Name:        data.Request.Card.HolderName,
			},
		},
		PaymentMethodOptions: paymentMethodOptions{
			Card: cardOptions{AutoCapture: data.Request.CaptureMethod != types.CaptureManual},
		},
		ReturnURL: data.Request.ReturnURL,
	}
	return marshalBody(body)
}

func (a authorize) BuildRequest(data *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.Authorize](a, data, connectors, http.MethodPost)
}

func (a authorize) HandleResponse(data *types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse], res *connector.Response) error {
	var resp intentResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PaymentsResponse{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status),
	})
	return nil
}

type capture struct {
	*Airwallex
	connector.NoPretasks[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse]
}

func (c capture) URL(data *types.RouterData[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse], connectors *config.Connectors) (string, error) {
	if data.Request.ConnectorTransactionID == "" {
		return "", connector.NewMissingRequiredField("connector_transaction_id")
	}
	return fmt.Sprintf("%s/api/v1/pa/payment_intents/%s/capture", baseURL(connectors), data.Request.ConnectorTransactionID), nil
}

func (c capture) Headers(data *types.RouterData[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return c.bearerHeaders(data.AccessToken)
}

func (c capture) RequestBody(data *types.RouterData[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse]) ([]byte, error) {
	body := captureRequest{
		RequestID: requestID(data.PaymentID, "capture"),
		Amount:    centsToMajor(data.Request.AmountCents),
	}
	return marshalBody(body)
}

func (c capture) BuildRequest(data *types.RouterData[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.Capture](c, data, connectors, http.MethodPost)
}

func (c capture) HandleResponse(data *types.RouterData[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse], res *connector.Response) error {
	var resp intentResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PaymentsResponse{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status),
	})
	return nil
}

type void struct {
	*Airwallex
	connector.NoPretasks[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse]
}

func (v void) URL(data *types.RouterData[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse], connectors *config.Connectors) (string, error) {
	if data.Request.ConnectorTransactionID == "" {
		return "", connector.NewMissingRequiredField("connector_transaction_id")
	}
	return fmt.Sprintf("%s/api/v1/pa/payment_intents/%s/cancel", baseURL(connectors), data.Request.ConnectorTransactionID), nil
}

func (v void) Headers(data *types.RouterData[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return v.bearerHeaders(data.AccessToken)
}

func (v void) RequestBody(data *types.RouterData[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse]) ([]byte, error) {
	body := cancelRequest{
		RequestID:          requestID(data.PaymentID, "cancel"),
		CancellationReason: data.Request.CancellationReason,
	}
	return marshalBody(body)
}

func (v void) BuildRequest(data *types.RouterData[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.Void](v, data, connectors, http.MethodPost)
}

func (v void) HandleResponse(data *types.RouterData[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse], res *connector.Response) error {
	var resp intentResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PaymentsResponse{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status),
	})
	return nil
}

type psync struct {
	*Airwallex
	connector.NoPretasks[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse]
}

func (p psync) URL(data *types.RouterData[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse], connectors *config.Connectors) (string, error) {
	if data.Request.ConnectorTransactionID == "" {
		return "", connector.NewMissingRequiredField("connector_transaction_id")
	}
	return fmt.Sprintf("%s/api/v1/pa/payment_intents/%s", baseURL(connectors), data.Request.ConnectorTransactionID), nil
}

func (p psync) Headers(data *types.RouterData[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return p.bearerHeaders(data.AccessToken)
}

func (p psync) RequestBody(_ *types.RouterData[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse]) ([]byte, error) {
	return nil, nil
}

func (p psync) BuildRequest(data *types.RouterData[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.PSync](p, data, connectors, http.MethodGet)
}

func (p psync) HandleResponse(data *types.RouterData[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse], res *connector.Response) error {
	var resp intentResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PaymentsResponse{
		ConnectorTransactionID: resp.ID,
		Status:                 attemptStatus(resp.Status),
	})
	return nil
}

type refundExecute struct {
	*Airwallex
	connector.NoPretasks[types.RefundExecute, types.RefundsRequest, types.RefundsResponse]
}

func (r refundExecute) URL(_ *types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse], connectors *config.Connectors) (string, error) {
	return baseURL(connectors) + "/api/v1/pa/refunds/create", nil
}

func (r refundExecute) Headers(data *types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return r.bearerHeaders(data.AccessToken)
}

func (r refundExecute) RequestBody(data *types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse]) ([]byte, error) {
	if data.Request.ConnectorTransactionID == "" {
		return nil, connector.NewMissingRequiredField("connector_transaction_id")
	}

	body := refundRequest{
		RequestID:       requestID(data.Request.RefundID, "refund"),
		PaymentIntentID: data.Request.ConnectorTransactionID,
		Amount:          centsToMajor(data.Request.AmountCents),
		Reason:          data.Request.Reason,
	}
	return marshalBody(body)
}

func (r refundExecute) BuildRequest(data *types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.RefundExecute](r, data, connectors, http.MethodPost)
}

func (r refundExecute) HandleResponse(data *types.RouterData[types.RefundExecute, types.RefundsRequest, types.RefundsResponse], res *connector.Response) error {
	var resp refundResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.RefundsResponse{
		ConnectorRefundID: resp.ID,
		Status:            refundStatus(resp.Status),
	})
	return nil
}

type refundSync struct {
	*Airwallex
	connector.NoPretasks[types.RefundSync, types.RefundsRequest, types.RefundsResponse]
}

func (r refundSync) URL(data *types.RouterData[types.RefundSync, types.RefundsRequest, types.RefundsResponse], connectors *config.Connectors) (string, error) {
	if data.Request.ConnectorRefundID == "" {
		return "", connector.NewMissingRequiredField("connector_refund_id")
	}
	return fmt.Sprintf("%s/api/v1/pa/refunds/%s", baseURL(connectors), data.Request.ConnectorRefundID), nil
}

func (r refundSync) Headers(data *types.RouterData[types.RefundSync, types.RefundsRequest, types.RefundsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return r.bearerHeaders(data.AccessToken)
}

func (r refundSync) RequestBody(_ *types.RouterData[types.RefundSync, types.RefundsRequest, types.RefundsResponse]) ([]byte, error) {
	return nil, nil
}

func (r refundSync) BuildRequest(data *types.RouterData[types.RefundSync, types.RefundsRequest, types.RefundsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.RefundSync](r, data, connectors, http.MethodGet)
}

func (r refundSync) HandleResponse(data *types.RouterData[types.RefundSync, types.RefundsRequest, types.RefundsResponse], res *connector.Response) error {
	var resp refundResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.RefundsResponse{
		ConnectorRefundID: resp.ID,
		Status:            refundStatus(resp.Status),
	})
	return nil
}
