package querykit

import "errors"

// ErrNoExecutor is returned by Execute when the builder was created
// without an Executor. This is a configuration problem, not a query
// failure: construct the builder with WithExecutor, or call Build and
// run the SQL yourself.
var ErrNoExecutor = errors.New("querykit: no executor configured for query execution")

// IsNoExecutorErr returns true if err is or wraps ErrNoExecutor.
func IsNoExecutorErr(err error) bool {
	return errors.Is(err, ErrNoExecutor)
}
