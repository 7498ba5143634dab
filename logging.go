package filterexpr

import "go.uber.org/zap"

// nopLogger is the default logger for every Filter/OrderBy call that
// doesn't pass WithLogger. Logging here is strictly a compile-time/cache
// diagnostic: nothing on the per-record Predicate evaluation path ever
// logs, so a caller that never configures a logger pays nothing for it
// beyond the one nil check zap.NewNop() already optimizes away.
func nopLogger() *zap.Logger {
	return zap.NewNop()
}
