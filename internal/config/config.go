// Package config loads the probe's environment-variable configuration,
// optionally seeding os.Environ from a .env file before reading.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the probe's runtime configuration, read once at bootstrap.
type Config struct {
	// Enabled gates the entire probe; when false, Bootstrap is a no-op.
	Enabled bool
	// Port is the WebSocket listen port.
	Port int
	// Mode holds the MODE value, "full" by default. Nothing reads it:
	// the transport serves the qt.*, cu.* and chr.* catalogs whatever its
	// value, so it does not narrow which surfaces attach.
	Mode string
	// InjectChildren holds the INJECT_CHILDREN value, true by default.
	// Nothing reads it: the registry always tracks pre-existing objects at
	// install time, and no child-process injection is performed.
	InjectChildren bool
}

const (
	defaultPort = 9222
	defaultMode = "full"
)

// Load reads ENABLED/PORT/MODE/INJECT_CHILDREN from the environment,
// first attempting to seed it from a .env file in the working directory
// (silently ignored if absent — godotenv.Load's own behavior).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Enabled:        boolEnv("ENABLED", true),
		Port:           intEnv("PORT", defaultPort),
		Mode:           stringEnv("MODE", defaultMode),
		InjectChildren: boolEnv("INJECT_CHILDREN", true),
	}
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
