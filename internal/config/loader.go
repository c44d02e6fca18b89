package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	httpPort string

	bufferSize      int
	writeBufferSize int
	headerSize      int
	maxBodySize     int64
	idleTimeout     time.Duration

	serverName string

	logLevel       string
	logDevelopment bool

	healthEnabled bool
	healthPort    string

	pprofEnabled bool
	pprofPort    string

	warnings []string
}

func parse() (*config, error) {
	cfg := &config{
		httpPort:       getenv("HTTP_PORT", "8080"),
		serverName:     getenv("SERVER_NAME", "Pistache"),
		logLevel:       getenv("LOG_LEVEL", "info"),
		logDevelopment: getenvBool("LOG_DEVELOPMENT", false),
		healthEnabled:  getenvBool("HEALTH_ENABLED", false),
		healthPort:     getenv("HEALTH_PORT", "50051"),
		pprofEnabled:   getenvBool("PPROF_ENABLED", false),
		pprofPort:      getenv("PPROF_PORT", "6060"),
	}

	if err := validatePort("HTTP_PORT", cfg.httpPort); err != nil {
		return nil, err
	}
	if cfg.healthEnabled {
		if err := validatePort("HEALTH_PORT", cfg.healthPort); err != nil {
			return nil, err
		}
	}

	cfg.bufferSize = cfg.parseSize("BUFFER_SIZE", 32768, 4096, 1048576)
	cfg.writeBufferSize = cfg.parseSize("WRITE_BUFFER_SIZE", 8192, 512, 1048576)
	cfg.headerSize = cfg.parseSize("HEADER_SIZE", 8192, 1024, 1048576)
	cfg.maxBodySize = int64(cfg.parseSize("MAX_BODY_SIZE", 1048576, 0, 1<<30))

	idle, err := parseDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.idleTimeout = idle

	return cfg, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

func validatePort(key, raw string) error {
	if _, err := strconv.ParseUint(raw, 10, 16); err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return nil
}

// parseSize reads an integer setting, falling back to def when the value is
// malformed or outside [lo, hi].
func (c *config) parseSize(key string, def, lo, hi int) int {
	raw := getenv(key, strconv.Itoa(def))
	size, err := strconv.Atoi(raw)
	if err != nil || size < lo || size > hi {
		c.warnings = append(c.warnings, fmt.Sprintf("invalid %s %q, falling back to %d", key, raw, def))
		return def
	}
	return size
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: negative duration", key, raw)
	}
	return d, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}
