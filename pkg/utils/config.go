package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SourceSample   = "sample"
	SourceSQLite   = "sqlite"
	SourceJSON     = "json"
	SourceHTTP     = "http"
	SourceExplorer = "explorer"
)

// ServerConfig is read from EXPLORER_* environment variables. SOURCE is a
// comma-separated list; several sources are merged in order.
type ServerConfig struct {
	HTTPAddr  string        `env:"HTTP_ADDR" envDefault:":8080"`
	FeedAddr  string        `env:"FEED_ADDR" envDefault:":7070"`
	Sources   []string      `env:"SOURCE" envSeparator:"," envDefault:"sample"`
	DBPath    string        `env:"DB_PATH"`
	JSONPath  string        `env:"JSON_PATH" envDefault:"data/features.json"`
	RemoteURL string        `env:"REMOTE_URL"`
	LoadDelay time.Duration `env:"LOAD_DELAY" envDefault:"1s"`
	GinMode   string        `env:"GIN_MODE" envDefault:"release"`
}

func LoadServerConfig() (ServerConfig, error) {
	return parseServerConfig(env.Options{Prefix: "EXPLORER_"})
}

func parseServerConfig(opts env.Options) (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	for i, src := range cfg.Sources {
		src = strings.ToLower(strings.TrimSpace(src))
		switch src {
		case SourceSample, SourceSQLite, SourceJSON:
		case SourceHTTP, SourceExplorer:
			if cfg.RemoteURL == "" {
				return cfg, fmt.Errorf("source %q needs REMOTE_URL", src)
			}
		default:
			return cfg, fmt.Errorf("unknown source %q", src)
		}
		cfg.Sources[i] = src
	}
	return cfg, nil
}
