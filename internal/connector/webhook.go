package connector

import "encoding/json"

// WebhookRequest carries one inbound notification as received from the
// processor.
type WebhookRequest struct {
	Headers []Header
	Body    []byte
}

// IncomingWebhook is the inbound-notification boundary of an adapter.
type IncomingWebhook interface {
	WebhookObjectReferenceID(req *WebhookRequest) (string, error)
	WebhookEventType(req *WebhookRequest) (string, error)
	WebhookResourceObject(req *WebhookRequest) (json.RawMessage, error)
}

// NoWebhooks is the minimum webhook contract: every lookup reports
// webhooks_not_implemented instead of attempting a best-effort parse.
type NoWebhooks struct{}

func (NoWebhooks) WebhookObjectReferenceID(*WebhookRequest) (string, error) {
	return "", NewWebhooksNotImplemented()
}

func (NoWebhooks) WebhookEventType(*WebhookRequest) (string, error) {
	return "", NewWebhooksNotImplemented()
}

func (NoWebhooks) WebhookResourceObject(*WebhookRequest) (json.RawMessage, error) {
	return nil, NewWebhooksNotImplemented()
}
