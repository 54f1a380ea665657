package ghgql

import (
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultEndpoint is the GraphQL API endpoint queried when no WithEndpoint
// option is given.
const DefaultEndpoint = "https://api.github.com/graphql"

type ClientOption interface {
	apply(o *clientOptions)
}

type clientOptions struct {
	endpoint     string
	raiseOnError bool
	httpClient   *http.Client
	logger       *zap.Logger
}

func (c *clientOptions) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("endpoint", c.endpoint)
	encoder.AddBool("raise_on_error", c.raiseOnError)
	encoder.AddBool("custom_http_client", c.httpClient != nil)

	return nil
}

// WithEndpoint overrides the GraphQL endpoint queried by the client.
func WithEndpoint(endpoint string) ClientOption {
	return clientOptionFunc(func(o *clientOptions) { o.endpoint = endpoint })
}

// WithRaiseOnError makes Query fail with a *GraphQLError whenever the
// response carries a non-empty errors list. The RaiseOnError query option
// overrides this behavior on a per-call basis.
func WithRaiseOnError() ClientOption {
	return clientOptionFunc(func(o *clientOptions) { o.raiseOnError = true })
}

// WithHTTPClient overrides the HTTP client used for requests, for example to
// tune timeouts or to route through a recording transport in tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return clientOptionFunc(func(o *clientOptions) { o.httpClient = httpClient })
}

func WithLogger(logger *zap.Logger) ClientOption {
	return clientOptionFunc(func(o *clientOptions) { o.logger = logger })
}

func (o *clientOptions) newClient(token string) (*client, error) {
	logger := o.logger
	if logger == nil {
		logger = zlog
	}

	if o.endpoint == "" {
		o.endpoint = DefaultEndpoint
	}

	logger.Debug("about to create new client with options", zap.Object("options", o))

	endpointURL, err := url.Parse(o.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL %q: %w", o.endpoint, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient()
	}

	return &client{
		endpoint:     endpointURL.String(),
		headers:      sessionHeaders(bearerToken(token)),
		httpClient:   httpClient,
		raiseOnError: o.raiseOnError,
		logger:       logger,
	}, nil
}

type clientOptionFunc func(o *clientOptions)

func (f clientOptionFunc) apply(o *clientOptions) {
	f(o)
}
