// Package dlog provides a simple debug logging facility that mirrors the
// stdlib log package API, but writes exclusively to os.Stderr.
//
// By default the debug logger is disabled until Enable is called, or the
// SQLITE_DATASET_DEBUG environment variable is set to a non-empty value. There
// is no way to disable the debug logger once it has been enabled.
//
// Child loggers created before the parent is enabled are enabled along with
// it, so packages may create their loggers at init time.
//
// NOTICE: All functions in this package are safe to call concurrently with
// each other EXCEPT for Enable and SetOutput.
package dlog

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"aslevy.com/sqlite-dataset/internal/flagvar"
)

const EnvVar = "SQLITE_DATASET_DEBUG"

var defaultLogger = func() *logger {
	l := newLogger(os.Stderr, "debug", log.Lshortfile)
	if os.Getenv(EnvVar) != "" {
		l.Enable()
	}
	return l
}()

func Default() Logger { return defaultLogger }

// SetOutput overrides the output for the top level print functions to w. By
// default the output is os.Stderr.
//
// This function must be called prior to calling Enable for it to take effect.
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

// Enable debug logging for the default logger and all of its children.
//
// Calling Enable multiple times has no effect.
func Enable()                        { defaultLogger.Enable() }
func EnableFlag() flag.Value         { return defaultLogger.EnableFlag() }
func Enabled() bool                  { return defaultLogger.Enabled() }
func Print(v ...any)                 { defaultLogger.Output(2, fmt.Sprint(v...)) }
func Printf(format string, v ...any) { defaultLogger.Output(2, fmt.Sprintf(format, v...)) }
func Println(v ...any)               { defaultLogger.Output(2, fmt.Sprintln(v...)) }
func Dump(v ...any)                  { defaultLogger.Dump(v...) }
func Child(prefix string) Logger     { return defaultLogger.Child(prefix) }

// Output writes s with the file and line of the caller calldepth frames above
// the caller of Output.
func Output(calldepth int, s string) { defaultLogger.Output(calldepth+2, s) }

// Logger is a simple debug logger API. It will not produce output until Enable
// is first called.
type Logger interface {
	// Enable the logger and its children so that they produce output
	// instead of discarding it.
	//
	// There is no way to disable the logger once enabled.
	Enable()
	EnableFlag() flag.Value
	Enabled() bool

	// Child returns a new Logger with the same settings as the parent with
	// the specified prefix appended to the parent logger's prefix.
	Child(prefix string) Logger

	// Print, Printf, Println, Output and SetOutput are the same as the
	// log.Logger methods by the same name.
	Print(...any)
	Printf(string, ...any)
	Println(...any)
	Output(calldepth int, s string) error
	SetOutput(io.Writer)

	// Dump prints the spew representation of the arguments.
	Dump(...any)
}

type logger struct {
	*log.Logger
	mu       sync.Mutex
	output   io.Writer
	enable   sync.Once
	enabled  bool
	children []*logger
}

// New returns a new Logger that does not write to output until after
// Logger.Enable is first called.
func New(output io.Writer, prefix string, flag int) Logger { return newLogger(output, prefix, flag) }
func newLogger(output io.Writer, prefix string, flag int) *logger {
	return &logger{
		output: output,
		Logger: log.New(io.Discard, prefix+": ", flag),
	}
}

func (l *logger) Child(child string) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	prefix := strings.TrimSuffix(l.Prefix(), ": ")
	if child != "" {
		prefix += "/" + child
	}
	c := newLogger(l.output, prefix, l.Flags())
	if l.enabled {
		c.Enable()
	}
	l.children = append(l.children, c)
	return c
}

func (l *logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled {
		panic("cannot set output after logger has been enabled")
	}
	l.output = w
	for _, c := range l.children {
		c.SetOutput(w)
	}
}

func (l *logger) Enable() {
	l.enable.Do(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.Logger.SetOutput(l.output)
		l.enabled = true
		for _, c := range l.children {
			c.Enable()
		}
	})
}

func (l *logger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *logger) Output(calldepth int, s string) error {
	return l.Logger.Output(calldepth+1, s)
}

// Print, Printf and Println are redefined so the reported caller is the
// caller of these methods rather than this file.
func (l *logger) Print(v ...any)                 { l.Logger.Output(2, fmt.Sprint(v...)) }
func (l *logger) Printf(format string, v ...any) { l.Logger.Output(2, fmt.Sprintf(format, v...)) }
func (l *logger) Println(v ...any)               { l.Logger.Output(2, fmt.Sprintln(v...)) }

func (l *logger) Dump(v ...any) {
	if !l.Enabled() {
		return
	}
	spew.Fdump(l.Writer(), v...)
}

func (l *logger) EnableFlag() flag.Value {
	return flagvar.Do(l.Enable)
}
