package ghgql

import "github.com/dfuse-io/logging"

var traceEnabled = logging.IsTraceEnabled("ghgql", "github.com/ghgql/client-go")
var zlog = logging.NewNopLogger("ghgql", "github.com/ghgql/client-go")
