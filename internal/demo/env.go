package demo

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Host environment overrides.
const (
	EnvSeed = "JUICE_SEED"
	EnvLog  = "JUICE_LOG"
)

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// SeedFromEnv returns JUICE_SEED when it parses as a uint32, otherwise a
// seed taken from the clock.
func SeedFromEnv(log *slog.Logger) uint32 {
	seed := uint32(time.Now().UnixNano())
	if s := os.Getenv(EnvSeed); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			log.Warn("ignoring bad seed", "env", EnvSeed, "value", s)
		} else {
			seed = uint32(v)
		}
	}
	return seed
}

// NewLogger returns a text logger on w at info level, or debug when
// JUICE_LOG=debug.
func NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(getEnvDefault(EnvLog, "info")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
