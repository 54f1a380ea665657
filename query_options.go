package ghgql

// QueryOption customizes a single Query or QueryFromFile call.
type QueryOption interface {
	apply(o *queryOptions)
}

// Variables option to pass the variables applied to the query, multiple
// occurrences merge.
type Variables map[string]interface{}

func (v Variables) apply(o *queryOptions) {
	if o.variables == nil {
		o.variables = map[string]interface{}{}
	}

	for key, value := range v {
		o.variables[key] = value
	}
}

// RaiseOnError overrides the client-level raise-on-error behavior for a
// single call.
func RaiseOnError(enabled bool) QueryOption {
	return queryOptionFunc(func(o *queryOptions) { o.raiseOnError = &enabled })
}

type queryOptions struct {
	variables    map[string]interface{}
	raiseOnError *bool
}

type queryOptionFunc func(o *queryOptions)

func (f queryOptionFunc) apply(o *queryOptions) {
	f(o)
}
