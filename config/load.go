package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Load reads a site config from a YAML file and validates it.
func Load(filename string) (SiteConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return SiteConfig{}, errors.WithStack(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return SiteConfig{}, errors.Wrapf(err, "site config %s", filename)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML site config. Unknown keys are rejected.
func Parse(data []byte) (SiteConfig, error) {
	var cfg SiteConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return SiteConfig{}, errors.WithStack(err)
	}
	if err := Validate(cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}
