package airwallex

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/connector"
	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type intentRequest struct {
	RequestID       string  `json:"request_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	MerchantOrderID string  `json:"merchant_order_id"`
}

type cardDetails struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVC         string `json:"cvc"`
	Name        string `json:"name,omitempty"`
}

type paymentMethod struct {
	Type string      `json:"type"`
	Card cardDetails `json:"card"`
}

type cardOptions struct {
	AutoCapture bool `json:"auto_capture"`
}

type paymentMethodOptions struct {
	Card cardOptions `json:"card"`
}

type confirmRequest struct {
	RequestID            string               `json:"request_id"`
	PaymentMethod        paymentMethod        `json:"payment_method"`
	PaymentMethodOptions paymentMethodOptions `json:"payment_method_options"`
	ReturnURL            string               `json:"return_url,omitempty"`
}

type captureRequest struct {
	RequestID string  `json:"request_id"`
	Amount    float64 `json:"amount"`
}

type cancelRequest struct {
	RequestID          string `json:"request_id"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

type intentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type refundRequest struct {
	RequestID       string  `json:"request_id"`
	PaymentIntentID string  `json:"payment_intent_id"`
	Amount          float64 `json:"amount"`
	Reason          string  `json:"reason,omitempty"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func marshalBody(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, connector.NewConnectorError(connector.KindRequestEncodingFailed, err)
	}
	return raw, nil
}

// Airwallex amounts are decimal major units.
func centsToMajor(cents int64) float64 {
	return float64(cents) / 100
}

// requestID derives Airwallex's per-call idempotency key from the payment
// id and the step name, so a retried call dedupes processor-side while
// distinct steps of the same payment stay distinct.
func requestID(paymentID, step string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(paymentID+":"+step)).String()
}

func attemptStatus(status string) types.AttemptStatus {
	switch status {
	case "REQUIRES_CAPTURE":
		return types.AttemptAuthorized
	case "SUCCEEDED":
		return types.AttemptCharged
	case "CANCELLED":
		return types.AttemptVoided
	case "FAILED":
		return types.AttemptFailed
	default:
		return types.AttemptPending
	}
}

func refundStatus(status string) types.RefundStatus {
	switch status {
	case "SUCCEEDED":
		return types.RefundSuccess
	case "FAILED":
		return types.RefundFailed
	default:
		return types.RefundPending
	}
}
