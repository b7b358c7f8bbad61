package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/AsagiriBeta/PackMerger/internal/config"
)

// Config holds the web service settings.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string `mapstructure:"listen_addr"`

	// MaxUploadBytes caps the size of a single upload request.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// SessionTTL is how long upload sessions and outputs are kept.
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Paths are the data directories.
	Paths config.Paths `mapstructure:"-"`
}

// LoadConfig reads the service configuration. Defaults can be overridden
// by the optional config file under the data root and by PACKMERGER_*
// environment variables (e.g. PACKMERGER_LISTEN_ADDR).
func LoadConfig() (*Config, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	v := viper.New()
	v.SetDefault("listen_addr", ":5001")
	v.SetDefault("max_upload_bytes", int64(500*1024*1024))
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("shutdown_timeout", "10s")

	v.SetConfigFile(paths.Config)
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; only a parse failure is fatal.
		if _, ok := err.(viper.ConfigParseError); ok {
			return nil, fmt.Errorf("failed to parse config file %s: %w", paths.Config, err)
		}
	}

	v.SetEnvPrefix("PACKMERGER")
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Paths = *paths
	return cfg, nil
}
