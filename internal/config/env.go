package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const EnvPrefix = "CW_"

// Resolve loads the config file (explicit path, else $CW_CONFIG) and then
// applies CW_* overrides on top of it.
func Resolve(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvPrefix + "CONFIG"))
	}
	var cfg Config
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(&cfg, EnvPrefix); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from environment variables, e.g.
// CW_THREADS=4, CW_FORMAT=ndjson, CW_EXCLUDE=**/*.log,vendor/**.
func ApplyEnv(cfg *Config, prefix string) error {
	if v, ok := os.LookupEnv(prefix + "THREADS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return fmt.Errorf("environment variable %sTHREADS must be a positive integer", prefix)
		}
		cfg.Threads = &n
	}
	if v, ok := os.LookupEnv(prefix + "FORMAT"); ok {
		cfg.Format = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(prefix + "EXCLUDE"); ok {
		cfg.Exclude = splitCSV(v)
	}
	if v, ok := os.LookupEnv(prefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	return nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
