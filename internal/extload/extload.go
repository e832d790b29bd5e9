// Package extload loads out-of-tree extension plugins named on
// AVALON_EXTENSION_PATH before the CLI app is built, so a loaded
// extension's registered flags appear in --help like any built-in one.
package extload

import (
	"fmt"
	"os"
	"plugin"
	"strings"
)

// EnvVar is the colon-separated list of plugin (.so) paths to load at
// startup, each expected to call public/extension registration functions
// from its own init().
const EnvVar = "AVALON_EXTENSION_PATH"

// Load opens every plugin named on AVALON_EXTENSION_PATH. Opening a Go
// plugin runs its init() functions as a side effect, which is the only
// thing Load relies on — it does not look up any symbol.
func Load() error {
	raw := os.Getenv(EnvVar)
	if raw == "" {
		return nil
	}
	for _, path := range strings.Split(raw, ":") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if _, err := plugin.Open(path); err != nil {
			return fmt.Errorf("extload: %s: %w", path, err)
		}
	}
	return nil
}
