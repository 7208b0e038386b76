package outfmt

import (
	"errors"
	"io"
	"log"

	"aslevy.com/sqlite-dataset/internal/ioutil"
	"aslevy.com/sqlite-dataset/internal/pager"
)

// Output returns w wrapped with the pager and the -fmt formatter. It must
// be closed to flush all output.
func Output(w io.Writer) io.WriteCloser {
	return Formatter(pagerOutput(w))
}

// RawOutput is like Output but never uses the term renderer. It is used
// for output which is already colored, such as highlighted SQL.
func RawOutput(w io.Writer) io.WriteCloser {
	return pagerOutput(w)
}

func pagerOutput(w io.Writer) io.WriteCloser {
	pgr, err := pager.Pager(w)
	if err != nil {
		log.Println("failed to use pager:", err)
	}
	return ioutil.WriteCloserFunc(pgr, func() error {
		err := pgr.Close()
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			// The user quit the pager early.
			return nil
		}
		return err
	})
}
