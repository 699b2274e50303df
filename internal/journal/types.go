package journal

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("journal: disabled")

// Config configures the tick journal.
//
// Driver values:
//   - "sqlite": SQLite database file
//
// If Driver is empty or "none", the journal is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Entry records one emitted clock event.
// Keep it compact and schema-stable.
type Entry struct {
	At   time.Time // absolute instant of the emission
	Kind string    // second | minute | hour | timezoneChange
	Zone string    // active timezone identifier
	Wall string    // wall-clock rendering of At in Zone
}
