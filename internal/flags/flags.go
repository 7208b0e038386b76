// Package flags contains the flag definitions shared by all sqlite-dataset
// commands. The flags are bound to global variables in their respective
// packages.
//
// Additionally this package provides improved argument parsing. See Parse.
package flags

import (
	"flag"

	"aslevy.com/sqlite-dataset/internal/dlog"
	"aslevy.com/sqlite-dataset/internal/flagvar"
	"aslevy.com/sqlite-dataset/internal/outfmt"
	"aslevy.com/sqlite-dataset/internal/pager"
	"aslevy.com/sqlite-dataset/internal/sqlite"
)

var (
	// Progress shows a progress bar while inserting records.
	Progress bool
	// BusyTimeout applies to every connection to the dataset.
	BusyTimeout = sqlite.DefaultBusyTimeout
	// JournalMode is set on the dataset when it is created.
	JournalMode sqlite.JournalMode
)

// AddGlobal adds the flags accepted by every command to fs. It may be called
// for more than one FlagSet.
func AddGlobal(fs *flag.FlagSet) {
	fs.Var(dlog.EnableFlag(), "debug", "enable debug logging")
	fs.Var(flagvar.Value(&Progress), "progress", "show a progress bar while inserting")
	fs.Var(flagvar.Value(&BusyTimeout), "busy-timeout", "how long to wait on a locked database, e.g. 5s")
	fs.Var(flagvar.Parse(&JournalMode, sqlite.ParseJournalMode), "journal", "journal mode to set on create: delete|wal|memory|off")

	pager.AddFlags(fs)
	outfmt.AddFlags(fs)
}

