// Package logging sets up the process-wide structured logger used by both
// binaries in this repo.
package logging

import (
	"log/slog"
	"os"
)

// InitDefault installs a JSON slog logger tagged with nodeID as the
// process default. The level comes from LOG_LEVEL ("debug", "INFO",
// "Warn", ...); anything slog.Level can't parse, including an unset
// env var, falls back to info.
func InitDefault(nodeID string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With("node_id", nodeID)
	slog.SetDefault(logger)
}
