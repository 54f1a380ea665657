package ghgql

import (
	"encoding/json"
	"strings"
)

// Result wraps the decoded JSON mapping of a GraphQL response. It owns the
// mapping and never mutates it, so a Result is safe to share across
// goroutines once constructed.
type Result struct {
	response map[string]interface{}
}

// NewResult wraps an already decoded GraphQL response mapping.
func NewResult(response map[string]interface{}) Result {
	return Result{response: response}
}

// Raw returns the wrapped response mapping.
func (r Result) Raw() map[string]interface{} {
	return r.response
}

// Data returns the value under the "data" key, nil when absent or null.
func (r Result) Data() interface{} {
	return r.response["data"]
}

// Errors returns the value under the "errors" key, an ordered list of
// GraphQL error objects passed through unmodified. It returns nil when the
// key is absent or null, never an error.
func (r Result) Errors() interface{} {
	return r.response["errors"]
}

// GetOption customizes a single Get call.
type GetOption interface {
	apply(o *getOptions)
}

// WithDefault makes Get return the given value instead of failing when the
// response has no data or when the path cannot be resolved. It does not
// soften ErrResponseErrors or an invalid path expression.
func WithDefault(value interface{}) GetOption {
	return getOptionFunc(func(o *getOptions) {
		o.defaultValue = value
		o.hasDefault = true
	})
}

type getOptions struct {
	defaultValue interface{}
	hasDefault   bool
}

type getOptionFunc func(o *getOptions)

func (f getOptionFunc) apply(o *getOptions) {
	f(o)
}

// Get resolves a dotted path expression against the response data, so that
//
//     value, err := result.Get("status.item.id")
//
// is roughly equivalent to indexing result.Data() with "status", "item" and
// "id" in turn, plus defined behavior when a key does not exist.
//
// Fields whose value is a JSON document encoded as a string are decoded
// transparently before descending into them, the literal string "null" being
// left alone.
func (r Result) Get(path string, opts ...GetOption) (interface{}, error) {
	options := getOptions{}
	for _, opt := range opts {
		opt.apply(&options)
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, &InvalidPathError{Path: path}
		}
	}

	if r.Errors() != nil {
		return nil, ErrResponseErrors
	}

	cursor := r.Data()
	if cursor == nil {
		if options.hasDefault {
			return options.defaultValue, nil
		}

		return nil, ErrNoData
	}

	for _, segment := range segments {
		if embedded, ok := cursor.(string); ok && embedded != "null" {
			// A failed decode leaves the cursor as the string itself, the
			// segment lookup below then misses like on any other scalar.
			var decoded interface{}
			if err := json.Unmarshal([]byte(embedded), &decoded); err == nil {
				cursor = decoded
			}
		}

		mapping, ok := cursor.(map[string]interface{})
		if !ok {
			return missingSegment(path, segment, options)
		}

		value, found := mapping[segment]
		if !found {
			return missingSegment(path, segment, options)
		}

		cursor = value
	}

	return cursor, nil
}

func missingSegment(path string, segment string, options getOptions) (interface{}, error) {
	if options.hasDefault {
		return options.defaultValue, nil
	}

	return nil, &PathNotFoundError{Path: path, Segment: segment}
}
