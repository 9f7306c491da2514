package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/pipeline"
)

// Config is the on-disk configuration. Every field is optional; command-line
// flags take precedence over it.
//
//	[render]
//	policy = "polyline"
//	formats = ["svg", "png"]
//	width = 1920
//	height = 1080
//
//	[render.animation]
//	delay = "30ms"
//
//	[server]
//	addr = ":9000"
//	redis = "redis://localhost:6379/0"
type Config struct {
	Render pipeline.Options `toml:"render"`
	Server ServerConfig     `toml:"server"`
}

// ServerConfig holds the settings of the serve command.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Redis string `toml:"redis"`
}

// configPath returns the default config location under XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file yields the zero Config; a missing explicit file is an
// error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
