package connector

// Header is one ordered request header. Order is kept because some
// processors sign over the header sequence.
type Header struct {
	Name  string
	Value string
}

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"

	ContentTypeJSON = "application/json"
)

// Request is the transport-agnostic descriptor of one connector call.
// Building one performs no I/O.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
}

// Response is the raw outcome the transport hands back.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// RequestBuilder assembles a Request step by step, mirroring the order in
// which the orchestrator resolves url, headers and body.
type RequestBuilder struct {
	req Request
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{}
}

func (b *RequestBuilder) Method(method string) *RequestBuilder {
	b.req.Method = method
	return b
}

func (b *RequestBuilder) URL(url string) *RequestBuilder {
	b.req.URL = url
	return b
}

func (b *RequestBuilder) Headers(headers []Header) *RequestBuilder {
	b.req.Headers = append(b.req.Headers, headers...)
	return b
}

func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	b.req.Body = body
	return b
}

func (b *RequestBuilder) Build() *Request {
	req := b.req
	return &req
}
