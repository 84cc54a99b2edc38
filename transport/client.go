package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-Id"

var _ Transport = (*Client)(nil)

// Client is the resty backed Transport
type Client struct {
	resty  *resty.Client
	logger zerolog.Logger
}

type ClientOptions struct {
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

type ClientOption func(*ClientOptions)

// WithTimeout sets a per request timeout; zero leaves requests unbounded
func WithTimeout(d time.Duration) ClientOption {
	return func(o *ClientOptions) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithHeaders sets headers sent on every request
func WithHeaders(headers map[string]string) ClientOption {
	return func(o *ClientOptions) {
		if len(headers) == 0 {
			return
		}
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithHTTPClient uses hc for the underlying connections
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *ClientOptions) {
		o.HTTPClient = hc
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(o *ClientOptions) {
		o.Logger = &logger
	}
}

// New creates a resty backed transport
func New(opts ...ClientOption) *Client {
	cfg := ClientOptions{
		Headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	rc.SetHeaders(cfg.Headers)

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Client{resty: rc, logger: logger}
}

// Do executes req. Only network level failures are returned as errors (ErrTransport).
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.New().String()
	r := c.resty.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)

	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if token := strings.TrimSpace(req.Bearer); token != "" {
		r.SetAuthToken(token)
	}
	switch {
	case req.Form != nil:
		r.SetFormDataFromValues(req.Form)
	case req.JSON != nil:
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(req.JSON)
	}

	method := req.Method
	if method == "" {
		method = resty.MethodGet
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", redactQuery(req.URL)).
		Msg("identity request")

	resp, err := r.Execute(method, req.URL)
	if err != nil {
		c.logger.Debug().Str("request_id", requestID).Err(err).Msg("identity request failed")
		return nil, autherrors.Transport(err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("identity response")

	return &Response{Status: resp.StatusCode(), Body: resp.Body()}, nil
}

// redactQuery drops the query string so client ids and codes are kept out of the logs
func redactQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
