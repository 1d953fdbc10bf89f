// Package preset loads conversion option presets from YAML files.
package preset

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/mikkopa/mso-rew-converter/internal/mso"
	"github.com/mikkopa/mso-rew-converter/internal/rew"
)

// Preset mirrors the conversion configuration surface in YAML form. Absent
// fields leave the corresponding option untouched when applied.
type Preset struct {
	QType         string   `yaml:"q_type"`
	IncludedTypes []string `yaml:"included_types"`
	ExcludedTypes []string `yaml:"excluded_types"`
	CombineShared *bool    `yaml:"combine_shared"`
	EqualiserName string   `yaml:"equaliser_name"`
}

// Load reads and parses a preset file.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return p, nil
}

// Apply overlays the preset's set fields onto opts and returns the result.
func (p Preset) Apply(opts rew.Options) rew.Options {
	if p.QType != "" {
		opts.QType = mso.QType(p.QType)
	}
	if p.IncludedTypes != nil {
		opts.IncludedTypes = p.IncludedTypes
	}
	if p.ExcludedTypes != nil {
		opts.ExcludedTypes = p.ExcludedTypes
	}
	if p.CombineShared != nil {
		opts.CombineShared = *p.CombineShared
	}
	if p.EqualiserName != "" {
		opts.EqualiserName = p.EqualiserName
	}
	return opts
}
