// Package wise implements the Wise (formerly TransferWise) payouts adapter.
// Wise needs a funded quote before a transfer can be created, so the create
// flow chains a quote sub-call when the caller has not supplied one.
package wise

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/orchestration"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

const Name = "wise"

type Wise struct{}

// Register builds the connector entry for the dispatch registry. Wise
// authenticates with a static API key, so no token flow is wired.
func Register() *registry.ConnectorData {
	w := &Wise{}
	return &registry.ConnectorData{
		Name:             Name,
		TokenAcquisition: registry.TokenNone,
		Capabilities: registry.Capabilities{
			PayoutQuote:     payoutQuote{Wise: w},
			PayoutRecipient: payoutRecipient{Wise: w},
			PayoutCreate:    payoutCreate{Wise: w},
			PayoutFulfill:   payoutFulfill{Wise: w},
			PayoutCancel:    payoutCancel{Wise: w},
		},
	}
}

type wiseAuth struct {
	apiKey    string
	profileID string
}

// authFrom reads the Wise credential layout: APIKey is the bearer token,
// Key1 the profile id all payout endpoints are scoped to.
func authFrom(a types.ConnectorAuth) (wiseAuth, error) {
	if a.APIKey == "" || a.Key1 == "" {
		return wiseAuth{}, connector.NewFailedToObtainAuthType()
	}
	return wiseAuth{apiKey: a.APIKey, profileID: a.Key1}, nil
}

func baseURL(connectors *config.Connectors) string {
	return strings.TrimSuffix(connectors.Wise.BaseURL, "/")
}

func (w *Wise) headers(a types.ConnectorAuth) ([]connector.Header, error) {
	auth, err := authFrom(a)
	if err != nil {
		return nil, err
	}
	return []connector.Header{
		{Name: connector.HeaderContentType, Value: connector.ContentTypeJSON},
		{Name: connector.HeaderAuthorization, Value: "Bearer " + auth.apiKey},
	}, nil
}

// ErrorResponse is shared by every Wise flow: the payload carries an
// optional sub-error list plus a top-level message and status.
func (w *Wise) ErrorResponse(res *connector.Response) (*types.ErrorResponse, error) {
	var body connector.ErrorBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	return connector.NormalizeError(res.StatusCode, body), nil
}

type payoutQuote struct {
	*Wise
	connector.NoPretasks[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse]
}

func (q payoutQuote) URL(data *types.RouterData[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (string, error) {
	auth, err := authFrom(data.ConnectorAuth)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/v3/profiles/%s/quotes", baseURL(connectors), auth.profileID), nil
}

func (q payoutQuote) Headers(data *types.RouterData[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return q.headers(data.ConnectorAuth)
}

func (q payoutQuote) RequestBody(data *types.RouterData[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse]) ([]byte, error) {
	body := quoteRequest{
		SourceCurrency: data.Request.SourceCurrency,
		TargetCurrency: data.Request.DestinationCurrency,
		SourceAmount:   centsToMajor(data.Request.AmountCents),
		PayOut:         payoutMethodBalance,
	}
	return marshalBody(body)
}

func (q payoutQuote) BuildRequest(data *types.RouterData[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.PayoutQuote](q, data, connectors, http.MethodPost)
}

func (q payoutQuote) HandleResponse(data *types.RouterData[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse], res *connector.Response) error {
	var resp quoteResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PayoutsResponse{
		ConnectorPayoutID: resp.ID,
		Status:            types.PayoutRequiresCreation,
	})
	return nil
}

type payoutRecipient struct {
	*Wise
	connector.NoPretasks[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse]
}

func (r payoutRecipient) URL(_ *types.RouterData[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (string, error) {
	return baseURL(connectors) + "/v1/accounts", nil
}

func (r payoutRecipient) Headers(data *types.RouterData[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return r.headers(data.ConnectorAuth)
}

func (r payoutRecipient) RequestBody(data *types.RouterData[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse]) ([]byte, error) {
	auth, err := authFrom(data.ConnectorAuth)
	if err != nil {
		return nil, err
	}
	if data.Request.IBAN == "" {
		return nil, connector.NewMissingRequiredField("iban")
	}

	body := recipientRequest{
		Profile:           auth.profileID,
		AccountHolderName: data.Request.CustomerName,
		Currency:          data.Request.DestinationCurrency,
		Type:              recipientTypeIBAN,
		Details: recipientDetails{
			LegalType: legalTypeFor(data.Request.EntityType),
			Email:     data.Request.CustomerEmail,
			IBAN:      data.Request.IBAN,
		},
	}
	return marshalBody(body)
}

func (r payoutRecipient) BuildRequest(data *types.RouterData[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.PayoutRecipient](r, data, connectors, http.MethodPost)
}

func (r payoutRecipient) HandleResponse(data *types.RouterData[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse], res *connector.Response) error {
	var resp recipientResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PayoutsResponse{
		ConnectorPayoutID: strconv.FormatInt(resp.ID, 10),
		Status:            types.PayoutRequiresCreation,
	})
	return nil
}

type payoutCreate struct {
	*Wise
}

// Pretasks obtains a quote when the caller has not supplied one. The quote
// id lands back on the parent request so RequestBody can embed it. A quote
// the processor rejects aborts the transfer before anything is sent.
func (c payoutCreate) Pretasks(ctx context.Context, data *types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse], platform connector.Platform) error {
	if data.Request.QuoteID != "" {
		return nil
	}

	quoteData := types.Reinterpret[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse](data, data.Request)
	quoteData, err := orchestration.ExecuteConnectorStep(
		ctx, platform, payoutQuote{Wise: c.Wise}, quoteData, orchestration.Trigger,
	)
	if err != nil {
		return err
	}
	if quoteData.Failure != nil {
		return fmt.Errorf("quote rejected by wise: %s (code %s)", quoteData.Failure.Message, quoteData.Failure.Code)
	}

	data.Request.QuoteID = quoteData.Response.ConnectorPayoutID
	return nil
}

func (c payoutCreate) URL(_ *types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (string, error) {
	return baseURL(connectors) + "/v1/transfers", nil
}

func (c payoutCreate) Headers(data *types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return c.headers(data.ConnectorAuth)
}

func (c payoutCreate) RequestBody(data *types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse]) ([]byte, error) {
	if data.Request.RecipientID == "" {
		return nil, connector.NewMissingRequiredField("recipient_id")
	}
	target, err := strconv.ParseInt(data.Request.RecipientID, 10, 64)
	if err != nil {
		return nil, connector.NewConnectorError(connector.KindRequestEncodingFailed,
			fmt.Errorf("recipient_id %q is not a wise account id: %w", data.Request.RecipientID, err))
	}

	body := transferRequest{
		TargetAccount:         target,
		QuoteUUID:             data.Request.QuoteID,
		CustomerTransactionID: transactionUUID(data.Request.PayoutID),
		Details:               transferDetails{Reference: data.Request.PayoutID},
	}
	return marshalBody(body)
}

func (c payoutCreate) BuildRequest(data *types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.PayoutCreate](c, data, connectors, http.MethodPost)
}

func (c payoutCreate) HandleResponse(data *types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse], res *connector.Response) error {
	var resp transferResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PayoutsResponse{
		ConnectorPayoutID: strconv.FormatInt(resp.ID, 10),
		Status:            transferStatus(resp.Status),
	})
	return nil
}

type payoutFulfill struct {
	*Wise
	connector.NoPretasks[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse]
}

func (f payoutFulfill) URL(data *types.RouterData[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (string, error) {
	auth, err := authFrom(data.ConnectorAuth)
	if err != nil {
		return "", err
	}
	if data.Request.ConnectorPayoutID == "" {
		return "", connector.NewMissingRequiredField("transfer_id")
	}
	return fmt.Sprintf("%s/v3/profiles/%s/transfers/%s/payments",
		baseURL(connectors), auth.profileID, data.Request.ConnectorPayoutID), nil
}

func (f payoutFulfill) Headers(data *types.RouterData[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return f.headers(data.ConnectorAuth)
}

func (f payoutFulfill) RequestBody(_ *types.RouterData[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse]) ([]byte, error) {
	return marshalBody(fulfillRequest{Type: payoutMethodBalance})
}

func (f payoutFulfill) BuildRequest(data *types.RouterData[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.PayoutFulfill](f, data, connectors, http.MethodPost)
}

func (f payoutFulfill) HandleResponse(data *types.RouterData[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse], res *connector.Response) error {
	var resp fulfillResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PayoutsResponse{
		ConnectorPayoutID: data.Request.ConnectorPayoutID,
		Status:            fulfillmentStatus(resp.Status),
	})
	return nil
}

type payoutCancel struct {
	*Wise
	connector.NoPretasks[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse]
}

func (c payoutCancel) URL(data *types.RouterData[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (string, error) {
	if data.Request.ConnectorPayoutID == "" {
		return "", connector.NewMissingRequiredField("transfer_id")
	}
	return fmt.Sprintf("%s/v1/transfers/%s/cancel", baseURL(connectors), data.Request.ConnectorPayoutID), nil
}

func (c payoutCancel) Headers(data *types.RouterData[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse], _ *config.Connectors) ([]connector.Header, error) {
	return c.headers(data.ConnectorAuth)
}

func (c payoutCancel) RequestBody(_ *types.RouterData[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse]) ([]byte, error) {
	return nil, nil
}

func (c payoutCancel) BuildRequest(data *types.RouterData[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse], connectors *config.Connectors) (*connector.Request, error) {
	return connector.AssembleRequest[types.PayoutCancel](c, data, connectors, http.MethodPut)
}

func (c payoutCancel) HandleResponse(data *types.RouterData[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse], res *connector.Response) error {
	var resp transferResponse
	if err := json.Unmarshal(res.Body, &resp); err != nil {
		return connector.NewConnectorError(connector.KindResponseDeserializationFailed, err)
	}
	data.SetResponse(types.PayoutsResponse{
		ConnectorPayoutID: strconv.FormatInt(resp.ID, 10),
		Status:            transferStatus(resp.Status),
	})
	return nil
}
