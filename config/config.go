// Package config loads the small set of knobs cmd/bptreedemo needs to stand
// up a tree: key/value widths and the fan-out of each node kind. Kept
// separate from main so the demo's flag parsing and its settings schema
// don't entangle.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the demo's on-disk settings file.
type Config struct {
	TreeName        string `yaml:"tree_name"`
	KeySize         int    `yaml:"key_size"`
	ValueSize       int    `yaml:"value_size"`
	LeafMaxSize     int    `yaml:"leaf_max_size"`
	InternalMaxSize int    `yaml:"internal_max_size"`
}

// Default returns the settings the demo uses when no config file is given.
// ValueSize matches rid.Size (the demo's value type is a heap RID) rather
// than importing the rid package just for one constant.
func Default() Config {
	return Config{
		TreeName:        "demo",
		KeySize:         8,
		ValueSize:       6,
		LeafMaxSize:     64,
		InternalMaxSize: 64,
	}
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}
