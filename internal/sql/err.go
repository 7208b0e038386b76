package sql

import (
	"errors"
	"fmt"
	"strings"
)

func newErrFailedQuery(err error, verb, query string, args ...any) error {
	var failed ErrFailedQuery
	if errors.As(err, &failed) {
		// Don't wrap errors that are already ErrFailedQuery.
		return err
	}
	return ErrFailedQuery{
		Err:   err,
		Verb:  verb,
		Query: query,
		Args:  args,
	}
}

// ErrFailedQuery is returned by all query methods in this package when the
// underlying driver fails.
type ErrFailedQuery struct {
	Err   error
	Verb  string
	Query string
	Args  []any
}

func (err ErrFailedQuery) Unwrap() error { return err.Err }
func (err ErrFailedQuery) Error() string {
	format := `
failed to %s: %v

query:
%s
`[1:] // skip leading newline
	msg := fmt.Sprintf(format, err.Verb, err.Err, strings.TrimSpace(err.Query))
	if len(err.Args) == 0 {
		return msg
	}
	return msg + fmt.Sprintf("\nargs: %v\n", err.Args)
}
