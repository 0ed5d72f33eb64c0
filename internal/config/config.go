package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metrics mirrors the metric flags; it is only consulted when none of the
// flags were given.
type Metrics struct {
	Lines         bool `yaml:"lines"`
	Words         bool `yaml:"words"`
	Bytes         bool `yaml:"bytes"`
	Chars         bool `yaml:"chars"`
	MaxLineLength bool `yaml:"max_line_length"`
}

type Config struct {
	Threads  *int     `yaml:"threads"`
	Format   string   `yaml:"format"`
	Exclude  []string `yaml:"exclude"`
	LogLevel string   `yaml:"log_level"`
	Defaults *Metrics `yaml:"defaults"`
}

func Load(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	expanded, err := expandEnv(string(b))
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Threads != nil && *cfg.Threads < 1 {
		return cfg, fmt.Errorf("config %s: threads must be at least 1", path)
	}
	return cfg, nil
}

var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func expandEnv(src string) (string, error) {
	var out strings.Builder
	last := 0
	for _, idx := range envExpr.FindAllStringSubmatchIndex(src, -1) {
		out.WriteString(src[last:idx[0]])
		name := src[idx[2]:idx[3]]
		hasDefault := idx[4] >= 0 && idx[5] >= 0
		defVal := ""
		if hasDefault && idx[6] >= 0 && idx[7] >= 0 {
			defVal = src[idx[6]:idx[7]]
		}
		if v, ok := os.LookupEnv(name); ok {
			out.WriteString(v)
		} else if hasDefault {
			out.WriteString(defVal)
		} else {
			return "", fmt.Errorf("config references unset environment variable %s", name)
		}
		last = idx[1]
	}
	out.WriteString(src[last:])
	return out.String(), nil
}
