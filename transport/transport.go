package transport

import (
	"context"
	"encoding/json"
	"net/url"
)

// Request describes a single call to the identity provider or a downstream service.
// At most one of JSON and Form should be set.
type Request struct {
	Method  string
	URL     string
	JSON    any
	Form    url.Values
	Query   url.Values
	Bearer  string
	Headers map[string]string
}

// Response is the raw status and body. Non 2xx statuses are not errors at this level;
// callers inspect the payload because identity providers report failures in the body.
type Response struct {
	Status int
	Body   []byte
}

// IsSuccess reports a 2xx status
func (r *Response) IsSuccess() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// DecodeJSON unmarshals the body into v
func (r *Response) DecodeJSON(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Transport performs HTTP requests. Implementations must return network failures as
// errors and every completed exchange (whatever the status) as a Response.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts a function to the Transport interface
type Func func(ctx context.Context, req *Request) (*Response, error)

func (f Func) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
