package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	ghgql "github.com/ghgql/client-go"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/streamingfast/cli"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

var cmd = &cobra.Command{
	Use:   "ghgql <file> [<variables>]",
	Short: "Query the GitHub GraphQL API.",
	Args:  cobra.RangeArgs(1, 2),
	Long: cobraDescription(`
		Query the GitHub GraphQL API using the given <file> and <variables> (if present).

		The script expects that GITHUB_TOKEN environment variable is set to a valid GitHub
		personal access token, unless the '--token' flag is used.

		The script reads the file in argument, must be a valid GraphQL document, adds the
		<variables> argument to the request body (as-is, no transformation is done, so it
		must be valid JSON, either inline or a filename pointing to a JSON document) and
		posts the query to the endpoint.

		If the response has a '.data' field, the script extracts the content from it and
		returns it as valid JSON to the caller. The '.errors' field, when present, is
		printed to standard error.
	`),
	Example: cobraExamples(
		`ghgql viewer_login.graphql`,
		`ghgql repository_issues.graphql '{"owner":"golang","name":"go"}'`,
		`ghgql repository_issues.graphql variables_file.json`,
	),
	SilenceErrors: false,
	SilenceUsage:  true,
	RunE:          ghgqlE,
}

var flagToken *string
var flagEndpoint *string
var flagRaiseOnError *bool
var flagRaw *bool

var zlog = zap.NewNop()
var tracer = logging.ApplicationLogger("ghgql", "github.com/ghgql/client-go/cmd/ghgql", &zlog)

func main() {
	flagToken = cmd.PersistentFlags().StringP("token", "t", "", "The GitHub personal access token used as bearer auth, if empty, checks environment variable GITHUB_TOKEN")
	flagEndpoint = cmd.PersistentFlags().String("endpoint", "", "Override the GraphQL endpoint queried by the client")
	flagRaiseOnError = cmd.PersistentFlags().BoolP("raise-on-error", "e", false, "Exit with an error when the response carries GraphQL errors instead of printing them to stderr")
	flagRaw = cmd.PersistentFlags().BoolP("raw", "r", false, "Output GraphQL response as JSON untouched meaning you do get the 'data' and 'errors' fields")

	cmd.Execute()
}

func ghgqlE(cmd *cobra.Command, args []string) error {
	config := newConfig(cmd, args)
	zlog.Info("performing graphql operation", zap.Reflect("config", config))

	options := []ghgql.ClientOption{
		ghgql.WithLogger(zlog),
	}

	if config.Endpoint != "" {
		options = append(options, ghgql.WithEndpoint(config.Endpoint))
	}

	if config.RaiseOnError {
		options = append(options, ghgql.WithRaiseOnError())
	}

	client, err := ghgql.NewClient(config.token, options...)
	cli.NoError(err, "unable to create ghgql client")
	defer client.Close()

	var queryOptions []ghgql.QueryOption
	if config.Variables != "" {
		content := []byte(config.Variables)
		if cli.FileExists(config.Variables) {
			content, err = ioutil.ReadFile(config.Variables)
			cli.NoError(err, "unable to read variables file %q", config.Variables)
		}

		var variables ghgql.Variables
		err := json.Unmarshal(content, &variables)
		if err != nil {
			return fmt.Errorf("unable to unmarshal variables: %w", err)
		}

		queryOptions = append(queryOptions, variables)
	}

	result, err := client.Query(cmd.Context(), config.Document, queryOptions...)
	if err != nil {
		return fmt.Errorf("unable to perform GraphQL query: %w", err)
	}

	if *flagRaw {
		out, err := json.Marshal(result.Raw())
		if err != nil {
			return fmt.Errorf("unable to marshal response to JSON: %w", err)
		}

		fmt.Println(string(out))
		return nil
	}

	if errs := result.Errors(); errs != nil {
		errOut, err := json.Marshal(errs)
		if err != nil {
			return fmt.Errorf("unable to marshal errors to JSON: %w", err)
		}

		fmt.Fprintln(os.Stderr, string(errOut))
	}

	out, err := json.Marshal(result.Data())
	if err != nil {
		return fmt.Errorf("unable to marshal data to JSON: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

func readGraphQLDocument(cmd *cobra.Command, filename string) string {
	from := ""
	var reader io.Reader
	var err error

	if filename == "-" {
		from = "standard input"

		fi, err := os.Stdin.Stat()
		noError(err, "unable to stat stdin")
		ensure((fi.Mode()&os.ModeCharDevice) != 0, "request document to be read from stdin but it's not readable")

		reader = os.Stdin
	} else if cli.FileExists(filename) {
		from = fmt.Sprintf("filename %q", filename)
		reader, err = os.Open(filename)
		noError(err, "unable to open file %q", filename)
		defer reader.(*os.File).Close()
	} else {
		from = "inline document"
		// We assume it's directly a GraphQL document
		reader = bytes.NewBufferString(filename)
	}

	document, err := ioutil.ReadAll(reader)
	noError(err, "unable to read GraphQL document from %s", from)

	return string(document)
}

type config struct {
	token        string
	Endpoint     string
	File         string
	Variables    string
	RaiseOnError bool
	Document     string
}

func newConfig(cmd *cobra.Command, args []string) *config {
	out := &config{}

	out.File = args[0]
	if len(args) == 2 {
		out.Variables = args[1]
	}

	out.token = *flagToken
	if out.token == "" {
		out.token = os.Getenv("GITHUB_TOKEN")
	}

	out.Endpoint = *flagEndpoint
	if out.Endpoint == "" {
		out.Endpoint = os.Getenv("GITHUB_GRAPHQL_ENDPOINT")
	}

	out.RaiseOnError = *flagRaiseOnError

	out.Document = readGraphQLDocument(cmd, out.File)
	return out
}

func ensure(condition bool, message string, args ...interface{}) {
	if !condition {
		noError(fmt.Errorf(message, args...), "invalid arguments")
	}
}

func noError(err error, message string, args ...interface{}) {
	if err != nil {
		quit(message+": "+err.Error(), args...)
	}
}

func quit(message string, args ...interface{}) {
	fmt.Printf(message+"\n", args...)
	os.Exit(1)
}

func cobraDescription(in string) string {
	return dedent.Dedent(strings.Trim(in, "\n"))
}

func cobraExamples(in ...string) string {
	for i, line := range in {
		in[i] = "  " + line
	}

	return strings.Join(in, "\n")
}
