// Package registry maps connector names to their capability sets and
// token-handling metadata.
package registry

import (
	"fmt"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

// TokenAcquisition says how a connector obtains auth for its calls.
type TokenAcquisition string

const (
	// TokenNone: credentials go directly on each request.
	TokenNone TokenAcquisition = "none"
	// TokenCached: a bearer token is minted via AccessTokenAuth and cached
	// until expiry.
	TokenCached TokenAcquisition = "cached"
	// TokenPerCall: a fresh token is minted for every call.
	TokenPerCall TokenAcquisition = "per_call"
)

// Capabilities is the compile-time-checked interface set of one adapter:
// one Integration instantiation per supported flow. Nil fields are filled
// with the explicit Unsupported no-op when the connector is registered, so
// an unimplemented combination is "operation not applicable", never a
// lookup failure.
type Capabilities struct {
	Authorize       connector.Integration[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]
	Capture         connector.Integration[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse]
	Void            connector.Integration[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse]
	PSync           connector.Integration[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse]
	InitPayment     connector.Integration[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse]
	RefundExecute   connector.Integration[types.RefundExecute, types.RefundsRequest, types.RefundsResponse]
	RefundSync      connector.Integration[types.RefundSync, types.RefundsRequest, types.RefundsResponse]
	AccessTokenAuth connector.Integration[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]

	PayoutQuote       connector.Integration[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse]
	PayoutCreate      connector.Integration[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse]
	PayoutRecipient   connector.Integration[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse]
	PayoutFulfill     connector.Integration[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse]
	PayoutCancel      connector.Integration[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse]
	PayoutEligibility connector.Integration[types.PayoutEligibility, types.PayoutsRequest, types.PayoutsResponse]

	Webhook connector.IncomingWebhook
}

func (c *Capabilities) fillDefaults() {
	if c.Authorize == nil {
		c.Authorize = connector.Unsupported[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]{}
	}
	if c.Capture == nil {
		c.Capture = connector.Unsupported[types.Capture, types.PaymentsCaptureRequest, types.PaymentsResponse]{}
	}
	if c.Void == nil {
		c.Void = connector.Unsupported[types.Void, types.PaymentsCancelRequest, types.PaymentsResponse]{}
	}
	if c.PSync == nil {
		c.PSync = connector.Unsupported[types.PSync, types.PaymentsSyncRequest, types.PaymentsResponse]{}
	}
	if c.InitPayment == nil {
		c.InitPayment = connector.Unsupported[types.InitPayment, types.PaymentsAuthorizeRequest, types.PaymentsResponse]{}
	}
	if c.RefundExecute == nil {
		c.RefundExecute = connector.Unsupported[types.RefundExecute, types.RefundsRequest, types.RefundsResponse]{}
	}
	if c.RefundSync == nil {
		c.RefundSync = connector.Unsupported[types.RefundSync, types.RefundsRequest, types.RefundsResponse]{}
	}
	if c.AccessTokenAuth == nil {
		c.AccessTokenAuth = connector.Unsupported[types.AccessTokenAuth, types.AccessTokenRequest, types.AccessToken]{}
	}
	if c.PayoutQuote == nil {
		c.PayoutQuote = connector.Unsupported[types.PayoutQuote, types.PayoutsRequest, types.PayoutsResponse]{}
	}
	if c.PayoutCreate == nil {
		c.PayoutCreate = connector.Unsupported[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse]{}
	}
	if c.PayoutRecipient == nil {
		c.PayoutRecipient = connector.Unsupported[types.PayoutRecipient, types.PayoutsRequest, types.PayoutsResponse]{}
	}
	if c.PayoutFulfill == nil {
		c.PayoutFulfill = connector.Unsupported[types.PayoutFulfill, types.PayoutsRequest, types.PayoutsResponse]{}
	}
	if c.PayoutCancel == nil {
		c.PayoutCancel = connector.Unsupported[types.PayoutCancel, types.PayoutsRequest, types.PayoutsResponse]{}
	}
	if c.PayoutEligibility == nil {
		c.PayoutEligibility = connector.Unsupported[types.PayoutEligibility, types.PayoutsRequest, types.PayoutsResponse]{}
	}
	if c.Webhook == nil {
		c.Webhook = connector.NoWebhooks{}
	}
}

// ConnectorData bundles one registered connector: its capability set and
// token metadata.
type ConnectorData struct {
	Name             string
	Capabilities     Capabilities
	TokenAcquisition TokenAcquisition

	// SupportsTokenFor reports whether access tokens apply for a payment
	// method. Nil means tokens are never used.
	SupportsTokenFor func(types.PaymentMethod) bool
}

func (c *ConnectorData) SupportsAccessToken(pm types.PaymentMethod) bool {
	if c.SupportsTokenFor == nil {
		return false
	}
	return c.SupportsTokenFor(pm)
}

type Registry struct {
	byName map[string]*ConnectorData
}

func New() *Registry {
	return &Registry{byName: make(map[string]*ConnectorData)}
}

func (r *Registry) Register(data *ConnectorData) {
	data.Capabilities.fillDefaults()
	r.byName[data.Name] = data
}

func (r *Registry) Get(name string) (*ConnectorData, error) {
	data, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown connector %q", name)
	}
	return data, nil
}
