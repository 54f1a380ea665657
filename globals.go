package ghgql

import (
	"context"
	"fmt"
	"net/http"
)

var globalClient Client

// RegisterGlobal creates a client with the given token and options and
// installs it as the package-level instance used by Query, QueryFromFile and
// Headers.
func RegisterGlobal(token string, opts ...ClientOption) (err error) {
	globalClient, err = NewClient(token, opts...)
	return
}

func Query(ctx context.Context, document string, opts ...QueryOption) (Result, error) {
	return getGlobalClient("Query").Query(ctx, document, opts...)
}

func QueryFromFile(ctx context.Context, filename string, opts ...QueryOption) (Result, error) {
	return getGlobalClient("QueryFromFile").QueryFromFile(ctx, filename, opts...)
}

func Headers() http.Header {
	return getGlobalClient("Headers").Headers()
}

// CloseGlobal closes the package-level client and unregisters it.
func CloseGlobal() error {
	if globalClient == nil {
		return nil
	}

	err := globalClient.Close()
	globalClient = nil
	return err
}

func getGlobalClient(from string) Client {
	if globalClient == nil {
		panic(fmt.Errorf("execution of %s requires the global client instance to be set but it was not, ensure you call 'ghgql.RegisterGlobal' prior %s", from, from))
	}

	return globalClient
}
