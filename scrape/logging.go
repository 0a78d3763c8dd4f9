package scrape

import "log/slog"

// discard swallows log output for components constructed without a logger.
var discard = slog.New(slog.DiscardHandler)

// logOrDiscard returns logger, or the discard logger when it is nil. A nil
// Logger on any component in this package means "don't log", never a panic.
func logOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return discard
	}
	return logger
}
