package registry_test

import (
	"testing"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/config"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/registry"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetUnknownConnector(t *testing.T) {
	reg := registry.New()

	conn, err := reg.Get("nonexistent")

	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestRegistry_FillsUnsetFlowsWithNoOps(t *testing.T) {
	reg := registry.New()
	reg.Register(&registry.ConnectorData{
		Name:             "bare",
		TokenAcquisition: registry.TokenNone,
	})

	conn, err := reg.Get("bare")
	require.NoError(t, err)

	// Every unset flow builds no request, so the engine treats it as
	// "operation not applicable" instead of panicking on a nil field.
	data := &types.RouterData[types.Authorize, types.PaymentsAuthorizeRequest, types.PaymentsResponse]{}
	req, err := conn.Capabilities.Authorize.BuildRequest(data, &config.Connectors{})
	require.NoError(t, err)
	assert.Nil(t, req)

	payoutData := &types.RouterData[types.PayoutCreate, types.PayoutsRequest, types.PayoutsResponse]{}
	payoutReq, err := conn.Capabilities.PayoutCreate.BuildRequest(payoutData, &config.Connectors{})
	require.NoError(t, err)
	assert.Nil(t, payoutReq)

	require.NotNil(t, conn.Capabilities.Webhook)
	_, err = conn.Capabilities.Webhook.WebhookEventType(&connector.WebhookRequest{Body: []byte(`{}`)})
	assert.Error(t, err)
}

func TestConnectorData_SupportsAccessToken(t *testing.T) {
	withoutPredicate := &registry.ConnectorData{Name: "wise"}
	assert.False(t, withoutPredicate.SupportsAccessToken(types.PaymentMethodCard))

	cardOnly := &registry.ConnectorData{
		Name: "tokenproc",
		SupportsTokenFor: func(pm types.PaymentMethod) bool {
			return pm == types.PaymentMethodCard
		},
	}
	assert.True(t, cardOnly.SupportsAccessToken(types.PaymentMethodCard))
	assert.False(t, cardOnly.SupportsAccessToken(types.PaymentMethodBankTransfer))
}
