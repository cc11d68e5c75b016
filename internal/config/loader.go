package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search paths.
const FileName = "rooftops.yaml"

// Load loads the rooftops configuration.
// Search order: customPath -> ~/.rooftops/configs/rooftops.yaml -> ./configs/rooftops.yaml -> embedded default.
// Files are decoded on top of the built-in defaults, so a file may override
// only the keys it cares about. A file that exists on a search path but does
// not parse is an error, never a silent fallback. Load does not validate; callers do that
// before starting the tick loop.
func Load(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory.
	// A missing file falls through; a broken one is an error.
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		cfg, found, err := loadFile(path)
		if err != nil {
			return RunnerConfig{}, err
		}
		if found {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRooftopsYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultRunnerConfig. Unknown keys are rejected
// so typos do not silently fall back to defaults.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// A document without content decodes to io.EOF; keep the defaults.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// loadFile reads and parses path. found is false when there is no file.
func loadFile(path string) (cfg RunnerConfig, found bool, err error) {
	if path == "" {
		return RunnerConfig{}, false, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return RunnerConfig{}, false, nil
	}
	if err != nil {
		return RunnerConfig{}, false, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err = Parse(data)
	if err != nil {
		return RunnerConfig{}, false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, true, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rooftops", "configs", filename)
}
