package sqlite

import (
	"context"
	"fmt"
	"strings"

	"aslevy.com/sqlite-dataset/internal/sql"
)

const (
	PragmaBusyTimeout = "busy_timeout"
	PragmaForeignKeys = "foreign_keys"
	PragmaJournalMode = "journal_mode"
	PragmaUserVersion = "user_version"
)

type JournalMode = string

const (
	JournalDelete JournalMode = "delete"
	JournalWAL    JournalMode = "wal"
	JournalMemory JournalMode = "memory"
	JournalOff    JournalMode = "off"
)

func ParseJournalMode(s string) (JournalMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return JournalDelete, nil
	case JournalDelete, JournalWAL, JournalMemory, JournalOff:
		return s, nil
	}
	return JournalDelete, fmt.Errorf("invalid journal mode: %q", s)
}

// SetJournalMode sets the journal mode of the database file. The WAL mode is
// persistent, the others only apply to the connection they are set on.
func SetJournalMode(ctx context.Context, db sql.Querier, mode JournalMode) error {
	var got string
	if err := db.QueryRowContext(ctx, fmt.Sprintf(`PRAGMA %s=%s;`, PragmaJournalMode, mode)).Scan(&got); err != nil {
		return fmt.Errorf("failed to set %s: %w", PragmaJournalMode, err)
	}
	if !strings.EqualFold(got, mode) {
		return fmt.Errorf("failed to set %s: got %q, want %q", PragmaJournalMode, got, mode)
	}
	return nil
}

func GetPragma(ctx context.Context, db sql.Querier, key string, val any) error {
	query := fmt.Sprintf(`PRAGMA %s;`, key)
	if err := db.QueryRowContext(ctx, query).Scan(val); err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	return nil
}

func SetPragma(ctx context.Context, db sql.Querier, key string, val any) error {
	query := fmt.Sprintf(`PRAGMA %s=%v;`, key, val)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
