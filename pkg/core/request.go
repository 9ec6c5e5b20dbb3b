package core

import "net/http"

// Security is the authentication level an endpoint requires.
type Security int

const (
	// SecurityNone sends the request without credentials.
	SecurityNone Security = iota
	// SecurityAPIKey sends the API key header without signing.
	SecurityAPIKey
	// SecuritySigned sends the API key header and an HMAC-signed query.
	SecuritySigned
)

// String returns the string representation of the security level.
func (s Security) String() string {
	return [...]string{
		"NONE",
		"API_KEY",
		"SIGNED",
	}[s]
}

// Request describes one call to the exchange before it is signed and dispatched.
type Request struct {
	Method   string   `json:"method"`
	Query    Params   `json:"query,omitempty"`
	Security Security `json:"security"`
	Weight   int      `json:"weight"`
}

// NewRequest returns an unauthenticated request of weight 1.
func NewRequest(method string) *Request {
	return &Request{
		Method: method,
		Query:  make(Params),
		Weight: 1,
	}
}

// NewSignedRequest returns a request that must be signed before dispatch.
func NewSignedRequest(method string) *Request {
	return NewRequest(method).SetSecurity(SecuritySigned)
}

func (r *Request) SetQuery(key, value string) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	r.Query[key] = value
	return r
}

func (r *Request) SetQueryParams(params Params) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	for k, v := range params {
		r.Query[k] = v
	}
	return r
}

func (r *Request) SetSecurity(security Security) *Request {
	r.Security = security
	return r
}

func (r *Request) SetWeight(weight int) *Request {
	r.Weight = weight
	return r
}

// SendsContentType reports whether the form content type header accompanies the request.
func (r *Request) SendsContentType() bool {
	return r.Security == SecuritySigned || r.Method == http.MethodPost
}
