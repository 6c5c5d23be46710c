package types

// ConnectorAuth is the opaque credential bundle configured per merchant and
// connector. Only the adapter for a given connector knows which fields mean
// what (e.g. for Wise APIKey is the bearer token and Key1 the profile id).
type ConnectorAuth struct {
	APIKey    string
	Key1      string
	APISecret string
}

// ErrorResponse is the canonical cross-connector error shape. Code and
// Message are always populated, falling back to the defaults below when the
// connector's payload carries neither.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
	Reason     string
}

const (
	DefaultErrorCode    = "No error code"
	DefaultErrorMessage = "No error message"
)

// RouterData threads the state of one connector call: who is calling
// (merchant, connector, credentials), what is being asked (the flow-specific
// request), and what came back (exactly one of Response or Failure once the
// cycle completes). A RouterData is owned by a single logical operation and
// is never shared across goroutines; sub-flows get their own copy via
// Reinterpret.
type RouterData[F Flow, Req any, Resp any] struct {
	MerchantID    string
	ConnectorName string
	PaymentID     string

	// ReferenceID holds a processor-side identifier obtained by a pretask
	// (e.g. a payment intent id) that later build steps reference.
	ReferenceID string

	ConnectorAuth ConnectorAuth
	PaymentMethod PaymentMethod
	AccessToken   *AccessToken

	Request Req

	Response *Resp
	Failure  *ErrorResponse
}

// SetResponse records a parsed success, clearing any earlier failure.
func (d *RouterData[F, Req, Resp]) SetResponse(resp Resp) {
	d.Response = &resp
	d.Failure = nil
}

// SetFailure records a normalized connector error, clearing any earlier
// success.
func (d *RouterData[F, Req, Resp]) SetFailure(f *ErrorResponse) {
	d.Failure = f
	d.Response = nil
}

func (d *RouterData[F, Req, Resp]) Succeeded() bool {
	return d.Response != nil
}

// Completed reports whether a cycle has produced an outcome at all.
func (d *RouterData[F, Req, Resp]) Completed() bool {
	return d.Response != nil || d.Failure != nil
}

// Reinterpret clones a RouterData into a different flow and payload
// instantiation. Shared immutable fields (merchant, connector, credentials,
// payment method, access token) carry over; the request is replaced and the
// outcome starts empty. Every sub-flow transition (pretask, token refresh)
// goes through here so the field-mapping contract lives in one place.
func Reinterpret[F2 Flow, Req2, Resp2 any, F1 Flow, Req1, Resp1 any](
	src *RouterData[F1, Req1, Resp1],
	request Req2,
) *RouterData[F2, Req2, Resp2] {
	return &RouterData[F2, Req2, Resp2]{
		MerchantID:    src.MerchantID,
		ConnectorName: src.ConnectorName,
		PaymentID:     src.PaymentID,
		ReferenceID:   src.ReferenceID,
		ConnectorAuth: src.ConnectorAuth,
		PaymentMethod: src.PaymentMethod,
		AccessToken:   src.AccessToken,
		Request:       request,
	}
}
