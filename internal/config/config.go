// Package config loads szip's optional defaults file, grounded on
// SPEC_FULL.md's ambient-stack addition of github.com/BurntSushi/toml
// (present in the pack via rclone-rclone, ethereum-go-ethereum,
// dolthub-dolt and grafana-k6's go.mod files).
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults holds the subset of szip's flags a config file can set. Flag
// values passed on the command line always override these.
type Defaults struct {
	Force bool `toml:"force"`
	Keep  bool `toml:"keep"`
	Raw   bool `toml:"raw"`
}

// DefaultPath returns the config file szip reads when --config isn't
// given: ~/.config/szip/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "szip", "config.toml")
}

// Load parses the TOML file at path. A missing file is not an error: it
// just yields zero-valued Defaults, since the config file is optional.
func Load(path string) (Defaults, error) {
	var d Defaults
	if path == "" {
		return d, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return d, nil
	}
	_, err := toml.DecodeFile(path, &d)
	return d, err
}
