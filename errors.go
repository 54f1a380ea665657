package ghgql

import (
	"errors"
	"fmt"
)

var (
	// ErrResponseErrors is returned by Result.Get when the response carries
	// GraphQL errors. A response with errors cannot be meaningfully traversed
	// for data, inspect Result.Errors first. This short-circuit applies even
	// when a default value was supplied.
	ErrResponseErrors = errors.New("response contains graphql errors")

	// ErrNoData is returned by Result.Get when the response has no data and
	// no default value was supplied.
	ErrNoData = errors.New("response contains no data")

	// ErrClientClosed is returned when a query is attempted on a closed client.
	ErrClientClosed = errors.New("client is closed")
)

// InvalidPathError is returned by Result.Get when the path expression
// contains an empty segment, like "a..b" or a leading/trailing dot.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: path must not contain empty segments", e.Path)
}

// PathNotFoundError is returned by Result.Get when a path segment cannot be
// resolved against the response data and no default value was supplied.
type PathNotFoundError struct {
	Path    string
	Segment string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %q not found: segment %q cannot be resolved", e.Path, e.Segment)
}

// TransportError is returned when the endpoint answers with a non-success
// HTTP status code. The response body is carried as-is for diagnosis.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("http request failure (code %d): %s", e.StatusCode, e.Body)
}

// MalformedResponseError is returned when the response body cannot be
// decoded as JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("http read body as JSON: %s", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// GraphQLError is returned by Query when raise-on-error behavior is enabled
// and the response carries a non-empty errors list. Message holds the first
// error's message, the full errors list is kept for inspection.
type GraphQLError struct {
	Message string
	Errors  []interface{}
}

func (e *GraphQLError) Error() string {
	return e.Message
}

// firstErrorMessage digs out the message of the first error entry, falling
// back to a generic message when it is absent.
func firstErrorMessage(errs []interface{}) string {
	if len(errs) > 0 {
		if entry, ok := errs[0].(map[string]interface{}); ok {
			if message, ok := entry["message"].(string); ok && message != "" {
				return message
			}
		}
	}

	return "GraphQL Error"
}
