// Package sqlite opens the engine behind a dataset: a pool of
// modernc.org/sqlite connections to a single database file.
package sqlite

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"aslevy.com/sqlite-dataset/internal/sql"
)

const DriverName = "sqlite"

const DefaultBusyTimeout = 5 * time.Second

// Options control the per-connection pragmas applied by the driver.
type Options struct {
	BusyTimeout time.Duration
	ForeignKeys bool
}

func DefaultOptions() Options {
	return Options{
		BusyTimeout: DefaultBusyTimeout,
		ForeignKeys: true,
	}
}

// DSN returns the data source name for path. The pragmas are passed as
// _pragma query parameters so that the driver applies them to every new
// connection in the pool, not only the first. They are appended to any query
// already present in path, such as a "file:" URI.
func DSN(path string, o Options) string {
	params := url.Values{}
	if o.BusyTimeout > 0 {
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", o.BusyTimeout.Milliseconds()))
	}
	if o.ForeignKeys {
		params.Add("_pragma", "foreign_keys(1)")
	}
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// Open returns the engine for the database file at path. The file is not
// opened or created until the first connection is requested.
func Open(path string, o Options) (*sql.DB, error) {
	return sql.Open(DriverName, DSN(path, o))
}
