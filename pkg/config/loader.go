package config

import (
	"errors"
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "SIGHTVIEW"

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file.
// Values already set in config are kept unless the file or the
// environment sets them. Environment variables use the SIGHTVIEW_ prefix
// and the upper-cased key path separated with _, e.g.
// SIGHTVIEW_DISPLAY_BACKEND. A missing file is not an error.
func LoadConfig(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs", "../../configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.sightview")
		}
	}
	err := fig.Load(config, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return LoadConfigEnv(config)
	}
	return err
}

func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}
