package internal

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/korneil/launchif/internal/launch"
	"gopkg.in/yaml.v3"
)

// ReadRequest loads a form submission saved as YAML.
func ReadRequest(path string) (in launch.Input, err error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return in, errors.Wrapf(err, "read %s", path)
	}
	if err = yaml.Unmarshal(f, &in); err != nil {
		return in, errors.Wrapf(err, "parse %s", path)
	}
	return in, nil
}
