// Command sqlite-dataset creates, fills and inspects SQLite dataset files.
//
// Usage:
//
//	sqlite-dataset [flags] <command> <db> [args]
//
// Commands:
//
//	create <db> -schema schema.yaml | -table name -col name:TYPE[:pk|notnull] ...
//	tables <db>
//	schema <db> [-yaml] [table...]
//	insert <db> <table> [file.jsonl ...]
//	head   <db> <table> [-n 5]
//	read   <db> <table> [-cols a,b] [-limit n] [-chunk n]
//
// The output format is selected with -fmt or $SQLITE_DATASET_FORMAT. Output to
// a terminal is paged with $SQLITE_DATASET_PAGER, $PAGER, or less.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	dataset "aslevy.com/sqlite-dataset"
	"aslevy.com/sqlite-dataset/internal/dlog"
	"aslevy.com/sqlite-dataset/internal/flags"
)

const name = "sqlite-dataset"

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix(name + ": ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		log.Print(err)
		os.Exit(1)
	}
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error
}

var commands = []command{
	{"create", "<db> -schema schema.yaml | -table name -col name:TYPE ...", runCreate},
	{"tables", "<db>", runTables},
	{"schema", "<db> [-yaml] [table...]", runSchema},
	{"insert", "<db> <table> [file.jsonl ...]", runInsert},
	{"head", "<db> <table> [-n 5]", runHead},
	{"read", "<db> <table> [-cols a,b] [-limit n] [-chunk n]", runRead},
}

// env is what a command may use besides its arguments.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (e *env) flagSet(cmd command) *flag.FlagSet {
	fs := flag.NewFlagSet(name+" "+cmd.name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s %s %s\n", name, cmd.name, cmd.usage)
		fs.PrintDefaults()
	}
	return fs
}

// options returns the dataset options selected by the global flags.
func (e *env) options() []dataset.Option {
	opts := []dataset.Option{
		dataset.WithBusyTimeout(flags.BusyTimeout),
		dataset.WithWarnLogger(log.New(e.stderr, name+": warning: ", 0)),
	}
	if flags.JournalMode != "" {
		opts = append(opts, dataset.WithJournalMode(flags.JournalMode))
	}
	if flags.Progress {
		opts = append(opts, dataset.WithProgressBarOutput(e.stderr))
	}
	return opts
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }
	cmdName, cmdArgs, err := flags.ParseGlobal(fs, args...)
	if err != nil {
		return err
	}
	if cmdName == "" {
		fs.Usage()
		return errUsage
	}
	dlog.Printf("command %q args %q", cmdName, cmdArgs)

	for _, cmd := range commands {
		if cmd.name == cmdName {
			return cmd.run(ctx, e, e.flagSet(cmd), cmdArgs)
		}
	}
	fmt.Fprintf(stderr, "%s: unknown command %q\n", name, cmdName)
	fs.Usage()
	return errUsage
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "usage: %s [flags] <command> <db> [args]\n\ncommands:\n", name)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-7s%s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

// parseArgs parses all flags of fs, interleaved with the positional
// arguments, and checks that at least n positional arguments remain.
func parseArgs(fs *flag.FlagSet, args []string, n int) ([]string, error) {
	pos, err := flags.Parse(fs, args...)
	if err != nil {
		return nil, err
	}
	if len(pos) < n {
		fmt.Fprintf(fs.Output(), "%s: missing arguments: got %q\n", fs.Name(), strings.Join(pos, " "))
		fs.Usage()
		return nil, errUsage
	}
	return pos, nil
}
