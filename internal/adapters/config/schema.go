package config

import (
	"gopkg.in/yaml.v3"
)

// File represents the structure of the pysync.yaml configuration file.
type File struct {
	Lockfile    string      `yaml:"lockfile"`
	Environment string      `yaml:"environment"`
	Platform    string      `yaml:"platform"`
	Prefix      string      `yaml:"prefix"`
	Python      string      `yaml:"python"`
	CacheDir    string      `yaml:"cache_dir"`
	LinkMode    string      `yaml:"link_mode"`
	Concurrency Concurrency `yaml:"concurrency"`
	Refresh     Refresh     `yaml:"refresh"`
}

// Concurrency limits parallel work.
type Concurrency struct {
	Downloads int `yaml:"downloads"`
}

// Refresh accepts either the scalar `all` or a list of package names.
type Refresh struct {
	All      bool
	Packages []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Refresh) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return node.Decode(&r.Packages)
	}

	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	switch value {
	case "all", "true":
		r.All = true
	case "", "false", "none":
	default:
		r.Packages = []string{value}
	}
	return nil
}
