package outfmt

import (
	"fmt"
	"strings"
)

const Default Mode = Text

// Mode is an output format mode.
type Mode = string

const (
	// Text is the default output format. Tables are drawn with ASCII
	// borders and SQL is printed as is.
	Text Mode = "text"
	// Markdown renders tables as markdown tables and SQL inside "```sql"
	// code blocks.
	Markdown Mode = "markdown"
	// Term renders the markdown output with ANSI color codes. SQL is syntax
	// highlighted.
	Term Mode = "term"
)

var allModes = []string{Text, Markdown, Term}

func Modes() string { return strings.Join(allModes, "|") }

func ParseMode(val string) (Mode, error) {
	val = strings.ToLower(strings.TrimSpace(val))
	switch val {
	case "":
		return Default, nil
	case "md":
		return Markdown, nil
	case "txt":
		return Text, nil
	case Text, Markdown, Term:
		return val, nil
	default:
		// Use the first format with the val as its prefix to allow
		// partially typed format modes.
		for _, mode := range allModes {
			if strings.HasPrefix(mode, val) {
				return mode, nil
			}
		}
		return Default, fmt.Errorf("invalid format mode %q, supported modes: %v", val, allModes)
	}
}
