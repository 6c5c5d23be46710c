package types

// PaymentMethod identifies how the customer pays.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodWallet       PaymentMethod = "wallet"
)

// CaptureMethod controls whether authorized funds are captured immediately.
type CaptureMethod string

const (
	CaptureAutomatic CaptureMethod = "automatic"
	CaptureManual    CaptureMethod = "manual"
)

// AttemptStatus is the canonical state of a payment attempt.
type AttemptStatus string

const (
	AttemptAuthorized AttemptStatus = "authorized"
	AttemptCharged    AttemptStatus = "charged"
	AttemptVoided     AttemptStatus = "voided"
	AttemptPending    AttemptStatus = "pending"
	AttemptFailed     AttemptStatus = "failed"
)

// RefundStatus is the canonical state of a refund.
type RefundStatus string

const (
	RefundSuccess RefundStatus = "success"
	RefundPending RefundStatus = "pending"
	RefundFailed  RefundStatus = "failed"
)

// PayoutStatus is the canonical state of a payout transfer.
type PayoutStatus string

const (
	PayoutRequiresCreation    PayoutStatus = "requires_creation"
	PayoutRequiresFulfillment PayoutStatus = "requires_fulfillment"
	PayoutSuccess             PayoutStatus = "success"
	PayoutCancelled           PayoutStatus = "cancelled"
	PayoutFailed              PayoutStatus = "failed"
)

type Card struct {
	Number     string
	ExpMonth   string
	ExpYear    string
	HolderName string
	CVC        string
}

type PaymentsAuthorizeRequest struct {
	AmountCents   int64
	Currency      string
	Card          Card
	CaptureMethod CaptureMethod
	ReturnURL     string
}

type PaymentsCaptureRequest struct {
	AmountCents            int64
	ConnectorTransactionID string
}

type PaymentsCancelRequest struct {
	ConnectorTransactionID string
	CancellationReason     string
}

type PaymentsSyncRequest struct {
	ConnectorTransactionID string
}

// PaymentsResponse is the canonical success payload shared by all payment
// flows (authorize, capture, void, sync).
type PaymentsResponse struct {
	ConnectorTransactionID string
	Status                 AttemptStatus
}

type RefundsRequest struct {
	RefundID               string
	ConnectorTransactionID string
	AmountCents            int64
	Currency               string
	Reason                 string

	// ConnectorRefundID is set for RefundSync.
	ConnectorRefundID string
}

type RefundsResponse struct {
	ConnectorRefundID string
	Status            RefundStatus
}

// PayoutsRequest is shared across all payout flows; which fields matter
// depends on the flow. QuoteID is filled in by the quote pretask before a
// create call, ConnectorPayoutID by a create before fulfill or cancel.
type PayoutsRequest struct {
	PayoutID            string
	AmountCents         int64
	SourceCurrency      string
	DestinationCurrency string
	EntityType          string

	CustomerName  string
	CustomerEmail string
	IBAN          string

	QuoteID           string
	RecipientID       string
	ConnectorPayoutID string
}

type PayoutsResponse struct {
	ConnectorPayoutID string
	Status            PayoutStatus
}
