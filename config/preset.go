package config

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Preset is one entry of the presets list. In YAML it is written either as a
// bare name or as a [name, options] pair.
type Preset struct {
	Name    string
	Options PresetOptions
}

func (p *Preset) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		p.Name = name
		return nil
	}

	var pair []interface{}
	if err := unmarshal(&pair); err != nil {
		return errors.Wrap(err, "preset must be a name or a [name, options] pair")
	}
	if len(pair) == 0 || len(pair) > 2 {
		return errors.Errorf("preset must have 1 or 2 elements, got %d", len(pair))
	}

	n, ok := pair[0].(string)
	if !ok {
		return errors.Errorf("preset name must be a string, got %T", pair[0])
	}
	p.Name = n

	if len(pair) == 2 && pair[1] != nil {
		raw, err := yaml.Marshal(pair[1])
		if err != nil {
			return errors.WithStack(err)
		}
		if err := yaml.UnmarshalStrict(raw, &p.Options); err != nil {
			return errors.Wrap(err, fmt.Sprintf("options of preset %q", n))
		}
	}

	return nil
}

func (p Preset) MarshalYAML() (interface{}, error) {
	return []interface{}{p.Name, p.Options}, nil
}
