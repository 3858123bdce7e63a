// Package obslog is the tree's structured-logging ambient stack. The
// teacher repo this module descends from only logs with
// fmt.Fprintf(os.Stderr, ...) (the errPrintf helper in the shared lineage's
// common.go) — adequate for a two-file sample, not for a complete repo.
// This package upgrades that to github.com/rs/zerolog, grounded on
// other_examples/934c441c_optakt-flow-dps__ledger-forest-trie-trie.go.go,
// which logs the same kind of structural storage-engine events (split,
// merge, collapse) through a package-level zerolog.Logger.
package obslog

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger, in the same shape as the
// forest/trie engine's `var Logger zerolog.Logger`. SetOutput replaces it
// with one writing to another destination at another level.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetOutput redirects the package logger to w at the given level — used by
// tests to capture or silence it.
func SetOutput(w io.Writer, level zerolog.Level) {
	Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// OpID mints a correlation id for one tree operation (Insert and Remove tag
// their structural-event logs with it), the way a request-scoped trace id threads through
// a server's structured logs. google/uuid is adopted from
// SimonWaldherr-tinySQL's go.mod — the only complete example repo in the
// pack that depends on it.
func OpID() string {
	return uuid.NewString()
}
