package outfmt

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"aslevy.com/sqlite-dataset/internal/flagvar"
	"aslevy.com/sqlite-dataset/internal/ioutil"
)

const formatEnvVar = "SQLITE_DATASET_FORMAT"

var (
	Format, _    = ParseMode(os.Getenv(formatEnvVar))
	GlamourStyle = "auto"
	SyntaxStyle  = "monokai"
	MaxWidth     = DefaultMaxWidth
)

// AddFlags binds the output flags to fs. The flags keep their current values
// so they may be added to more than one FlagSet.
func AddFlags(fs *flag.FlagSet) {
	fs.Var(flagvar.Parse(&Format, ParseMode), "fmt", fmt.Sprintf("format of output: %v", Modes()))
	fs.Var(flagvar.Value(&GlamourStyle), "theme-term", "color theme to use with -fmt=term")
	fs.Var(flagvar.Value(&SyntaxStyle), "theme-syntax", "color theme for SQL syntax highlighting with -fmt=term")
	fs.Var(flagvar.Value(&MaxWidth), "max-width", "truncate table cells wider than this, 0 disables truncation")
}

func IsRichMarkdown() bool {
	switch Format {
	case Markdown, Term:
		return true
	}
	return false
}

// Formatter returns out wrapped with a term renderer if -fmt=term. All
// rendering happens on Close.
func Formatter(out io.WriteCloser) io.WriteCloser {
	if Format != Term {
		return out
	}

	styleOpt := glamour.WithAutoStyle()
	if GlamourStyle != "auto" {
		styleOpt = glamour.WithStylePath(GlamourStyle)
	}

	rdr, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithPreservedNewLines(),
		glamour.WithColorProfile(termenv.TrueColor),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		log.Printf("failed to use output format %s: %v", Format, err)
		return out
	}
	rdr.AnsiOptions.Styles.CodeBlock.Theme = SyntaxStyle

	return ioutil.WriteCloserFunc(rdr, func() error {
		// Close the renderer after writing all input. This triggers
		// the final conversion to the output format.
		if err := rdr.Close(); err != nil {
			return fmt.Errorf("outfmt: render: %w", err)
		}
		if _, err := io.Copy(out, rdr); err != nil {
			return fmt.Errorf("outfmt: copy: %w", err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("outfmt: close: %w", err)
		}
		return nil
	})
}
