// Package config loads cwkit configuration from embedded defaults
// layered with the optional user configuration file.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cloudai-x/cwkit/pkg/errors"
)

// Config holds the resolved cwkit settings.
type Config struct {
	// DefaultBundle is the locator installed when none is given.
	DefaultBundle string

	// FetchTimeout bounds the wall-clock duration of a fetch.
	FetchTimeout time.Duration

	// RemoteTemplate is expanded with the owner/name locator to form
	// the clone URL.
	RemoteTemplate string

	// Target is the install target directory.
	Target string
}

// Load returns the configuration from embedded defaults, overridden by
// the user configuration file at userConfigPath if it exists.
func Load(userConfigPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults always load.
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config overrides, when present.
	if userConfigPath != "" {
		if _, err := os.Stat(userConfigPath); err == nil {
			if err := k.Load(file.Provider(userConfigPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", userConfigPath)
			}
		}
	}

	cfg := &Config{
		DefaultBundle:  k.String("fetch.default_bundle"),
		FetchTimeout:   time.Duration(k.Int("fetch.timeout_seconds")) * time.Second,
		RemoteTemplate: k.String("fetch.remote_template"),
		Target:         k.String("install.target"),
	}

	if cfg.FetchTimeout <= 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "fetch.timeout_seconds must be positive, got %v", k.Int("fetch.timeout_seconds"))
	}

	return cfg, nil
}
