package flags

import (
	"flag"
	"strings"
)

// Parse adds the global flags to fs and parses args, including flags
// appearing after or between non-flag arguments. The non-flag arguments are
// returned.
//
// A "--" argument ends flag parsing. All following arguments are returned as
// is.
func Parse(fs *flag.FlagSet, args ...string) ([]string, error) {
	AddGlobal(fs)
	return parse(fs, args...)
}

// ParseGlobal parses only the global flags up to the first non-flag argument,
// which is taken to be the command name. It returns the command and its
// arguments.
func ParseGlobal(fs *flag.FlagSet, args ...string) (cmd string, cmdArgs []string, _ error) {
	AddGlobal(fs)
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	if fs.NArg() == 0 {
		return "", nil, nil
	}
	return fs.Arg(0), fs.Args()[1:], nil
}

// parse calls fs.Parse(args) recursively until all -flag arguments have been
// parsed, including those appearing after non-flag arguments. The non-flag
// arguments are returned.
func parse(fs *flag.FlagSet, args ...string) ([]string, error) {
	// Parse everything up to the first non-flag argument.
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if n := len(args) - fs.NArg(); n > 0 && args[n-1] == "--" {
		return fs.Args(), nil
	}

	// Collect the non-flag arguments up to the next flag argument, then
	// recurse to parse the next set of arguments as flags again.
	args = make([]string, 0, fs.NArg())
	for i, arg := range fs.Args() {
		if strings.HasPrefix(arg, "-") && arg != "-" {
			rest, err := parse(fs, fs.Args()[i:]...)
			return append(args, rest...), err
		}
		args = append(args, arg)
	}

	// We have parsed all flags and collected all non-flag arguments.
	return args, nil
}
