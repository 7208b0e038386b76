package outfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	delim     = "```"
	sqlLang   = "sql"
	formatter = "terminal16m"
)

// WriteSQL writes the SQL statements to w according to the -fmt mode:
// as is for text, inside a code block for markdown, and syntax highlighted
// for term.
//
// With -fmt=term w should not be wrapped by the term renderer, see
// RawOutput.
func WriteSQL(w io.Writer, stmts ...string) error {
	src := strings.Join(stmts, "\n\n") + "\n"
	switch Format {
	case Markdown:
		_, err := fmt.Fprintf(w, "%s%s\n%s%s\n", delim, sqlLang, src, delim)
		return err
	case Term:
		if err := quick.Highlight(w, src, sqlLang, formatter, SyntaxStyle); err != nil {
			return fmt.Errorf("outfmt: highlight: %w", err)
		}
		return nil
	default:
		_, err := io.WriteString(w, src)
		return err
	}
}
