package internal

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/korneil/launchif/internal/launch"
	"github.com/korneil/launchif/internal/watcher"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Workspace string          `yaml:"workspace"`
	ConfigDir string          `yaml:"config_dir"`
	File      string          `yaml:"file"`
	Template  launch.Template `yaml:"template"`
	Watch     watcher.Config  `yaml:"watch"`

	// process names reported by status as running debug servers
	Servers []string `yaml:"servers"`
}

// LoadConfig decodes defaults and then the file at path on top of them.
// A missing file leaves the defaults in place.
func LoadConfig(defaults []byte, path string) (cfg Config, err error) {
	if err = yaml.Unmarshal(defaults, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse default config")
	}
	if path != "" {
		f, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, errors.Wrapf(err, "read %s", path)
		default:
			if err = yaml.Unmarshal(f, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "parse %s", path)
			}
		}
	}

	if err = cfg.Template.Validate(); err != nil {
		return cfg, errors.Wrap(err, "template")
	}
	return cfg, nil
}
