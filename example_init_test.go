package ghgql_test

import (
	"github.com/streamingfast/logging"
)

func init() {
	logging.TestingOverride()
}
