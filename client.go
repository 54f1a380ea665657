package ghgql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Client is a lightweight GitHub GraphQL API client.
//
// The underlying HTTP session holds pooled connections that must be released
// when the caller is done, pair construction with a deferred close:
//
//     client, err := ghgql.NewClient(token)
//     if err != nil {
//         return err
//     }
//     defer client.Close()
type Client interface {
	// Query executes the GraphQL document against the configured endpoint
	// and returns the decoded response.
	Query(ctx context.Context, document string, opts ...QueryOption) (Result, error)

	// QueryFromFile reads the GraphQL document from the given file, expected
	// to be UTF-8 encoded, then behaves exactly like Query. File read errors
	// are surfaced unchanged behind the wrap, check them with errors.Is
	// against os.ErrNotExist and friends.
	QueryFromFile(ctx context.Context, filename string, opts ...QueryOption) (Result, error)

	// Headers returns a copy of the headers attached to every outgoing
	// request, useful to verify auth wiring without issuing a request.
	Headers() http.Header

	// Close releases the pooled connections held by the session. It is safe
	// to call more than once, queries issued after Close fail with
	// ErrClientClosed.
	Close() error
}

func NewClient(token string, opts ...ClientOption) (Client, error) {
	zlog.Info("creating new client", zap.Object("token", bearerToken(token)))

	options := &clientOptions{}
	for _, opt := range opts {
		opt.apply(options)
	}

	return options.newClient(token)
}

// compile time check to ensure that *client struct implements Client interface
var _ Client = (*client)(nil)

type client struct {
	endpoint     string
	headers      http.Header
	httpClient   *http.Client
	raiseOnError bool
	logger       *zap.Logger
	closed       atomic.Bool
}

// queryPayload is the GraphQL-over-HTTP request body. A nil variables
// mapping serializes as JSON null, which the API treats as "no variables".
type queryPayload struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func (c *client) Query(ctx context.Context, document string, opts ...QueryOption) (Result, error) {
	options := queryOptions{}
	for _, opt := range opts {
		opt.apply(&options)
	}

	if c.closed.Load() {
		return Result{}, ErrClientClosed
	}

	body, err := json.Marshal(queryPayload{Query: document, Variables: options.variables})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return Result{}, fmt.Errorf("new request: %w", err)
	}

	for key, values := range c.headers {
		request.Header[key] = values
	}

	if traceEnabled {
		c.logger.Debug("sending graphql query", zap.String("endpoint", c.endpoint), zap.Int("body_bytes", len(body)))
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Result{}, fmt.Errorf("http request: %w", err)
	}

	if response.StatusCode >= 400 {
		answer, err := consumeBodyToString(response)
		if err != nil {
			return Result{}, err
		}

		return Result{}, &TransportError{StatusCode: response.StatusCode, Status: response.Status, Body: answer}
	}

	mapping := map[string]interface{}{}
	if err := consumeBodyAsJSON(response, &mapping); err != nil {
		return Result{}, err
	}

	result := NewResult(mapping)

	raise := c.raiseOnError
	if options.raiseOnError != nil {
		raise = *options.raiseOnError
	}

	if raise {
		if errs, ok := result.Errors().([]interface{}); ok && len(errs) > 0 {
			return Result{}, &GraphQLError{Message: firstErrorMessage(errs), Errors: errs}
		}
	}

	return result, nil
}

func (c *client) QueryFromFile(ctx context.Context, filename string, opts ...QueryOption) (Result, error) {
	document, err := ioutil.ReadFile(filename)
	if err != nil {
		return Result{}, fmt.Errorf("read query file %q: %w", filename, err)
	}

	return c.Query(ctx, string(document), opts...)
}

func (c *client) Headers() http.Header {
	return c.headers.Clone()
}

func (c *client) Close() error {
	if !c.closed.CAS(false, true) {
		return nil
	}

	c.logger.Debug("closing client, releasing idle connections")
	c.httpClient.CloseIdleConnections()
	return nil
}

func consumeBodyAsJSON(response *http.Response, v interface{}) error {
	defer response.Body.Close()

	decoder := json.NewDecoder(response.Body)
	if err := decoder.Decode(v); err != nil {
		return &MalformedResponseError{Err: err}
	}

	return nil
}

func consumeBodyToString(response *http.Response) (string, error) {
	defer response.Body.Close()
	out, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("http read body: %w", err)
	}

	return string(out), nil
}
