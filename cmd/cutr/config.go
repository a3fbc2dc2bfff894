package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "cutr.toml"

type fileConfig struct {
	Cut    cutConfig    `toml:"cut"`
	Output outputConfig `toml:"output"`
	Trace  traceConfig  `toml:"trace"`
}

type cutConfig struct {
	Delimiter     string `toml:"delimiter"`
	OnlyDelimited bool   `toml:"only_delimited"`
	Normalize     bool   `toml:"normalize"`
}

type outputConfig struct {
	Color      string `toml:"color"`
	DiagFormat string `toml:"diag_format"`
	PathMode   string `toml:"path_mode"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// loadedConfig is a decoded config file. A zero value stands for "no file".
type loadedConfig struct {
	Path   string
	Values fileConfig
	meta   toml.MetaData
}

// has reports whether the file set the key explicitly.
func (c *loadedConfig) has(key ...string) bool {
	return c != nil && c.Path != "" && c.meta.IsDefined(key...)
}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads explicit when set, otherwise the nearest cutr.toml
// above startDir. Missing discovery is not an error.
func loadConfig(explicit, startDir string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfigFile(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &loadedConfig{}, nil
		}
		path = found
	}
	return decodeConfigFile(path)
}

func decodeConfigFile(path string) (*loadedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg fileConfig
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &loadedConfig{Path: path, Values: cfg, meta: meta}, nil
}
