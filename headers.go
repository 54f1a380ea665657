package ghgql

import (
	"net/http"

	"go.uber.org/zap/zapcore"
)

// globalIDHeader opts the session into the new GraphQL global ID format, see
// https://github.blog/2021-11-16-graphql-global-id-migration-update/
const globalIDHeader = "X-Github-Next-Global-ID"

// bearerToken is a personal access token for the GraphQL API. It marshals
// redacted so that a token never ends up in log output.
type bearerToken string

func (t bearerToken) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	if t == "" {
		encoder.AddString("token", "<unset>")
		return nil
	}

	encoder.AddString("token", "<set>")
	return nil
}

// sessionHeaders builds the headers attached to every request of a session.
func sessionHeaders(token bearerToken) http.Header {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+string(token))
	headers.Set(globalIDHeader, "1")
	headers.Set("Content-Type", "application/json")

	return headers
}
