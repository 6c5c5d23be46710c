package types

// Flow is the marker constraint for the type-level operation tag carried by
// RouterData and connector.Integration. Each logical operation gets its own
// marker type so that an adapter opts into flows one instantiation at a time,
// checked at compile time.
type Flow interface {
	FlowName() string
}

type (
	// Authorize reserves funds on a payment method.
	Authorize struct{}
	// Capture charges previously authorized funds.
	Capture struct{}
	// Void cancels an authorization.
	Void struct{}
	// PSync fetches the current state of a payment from the connector.
	PSync struct{}
	// RefundExecute returns captured funds.
	RefundExecute struct{}
	// RefundSync fetches the current state of a refund.
	RefundSync struct{}
	// AccessTokenAuth exchanges connector credentials for a bearer token.
	AccessTokenAuth struct{}
	// PayoutQuote obtains a transfer quote ahead of a payout.
	PayoutQuote struct{}
	// PayoutCreate creates a payout transfer.
	PayoutCreate struct{}
	// PayoutRecipient registers a payout beneficiary.
	PayoutRecipient struct{}
	// PayoutFulfill funds a created payout transfer.
	PayoutFulfill struct{}
	// PayoutCancel cancels a payout transfer.
	PayoutCancel struct{}
	// PayoutEligibility checks whether a payout can be made at all.
	PayoutEligibility struct{}
	// InitPayment creates the processor-side resource (e.g. a payment
	// intent) that a subsequent payment operation acts on.
	InitPayment struct{}
	// Webhook tags inbound notification handling.
	Webhook struct{}
)

func (Authorize) FlowName() string         { return "authorize" }
func (Capture) FlowName() string           { return "capture" }
func (Void) FlowName() string              { return "void" }
func (PSync) FlowName() string             { return "psync" }
func (RefundExecute) FlowName() string     { return "refund_execute" }
func (RefundSync) FlowName() string        { return "refund_sync" }
func (AccessTokenAuth) FlowName() string   { return "access_token_auth" }
func (PayoutQuote) FlowName() string       { return "payout_quote" }
func (PayoutCreate) FlowName() string      { return "payout_create" }
func (PayoutRecipient) FlowName() string   { return "payout_recipient" }
func (PayoutFulfill) FlowName() string     { return "payout_fulfill" }
func (PayoutCancel) FlowName() string      { return "payout_cancel" }
func (PayoutEligibility) FlowName() string { return "payout_eligibility" }
func (InitPayment) FlowName() string       { return "init_payment" }
func (Webhook) FlowName() string           { return "webhook" }
