// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

const (
	// EnvFile overrides the location of the configuration file.
	EnvFile = "GRAPHDIFF_CFG_FILE"

	fileName = "graphdiff.yaml"
)

// ErrNotFound is returned by getters for keys absent from the configuration.
var ErrNotFound = errors.New("config key not found")

// Type is the loaded configuration.
//
// Namespace, when set, is tried as a prefix before the bare key, so a
// command can read diff.output before falling back to output.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]any
}

// Config is the process-wide configuration, loaded lazily by the getters.
var Config Type

// Load reads the configuration file and installs it as Config.
func Load() (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("reading config: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}
	return Config, nil
}

// File resolves the configuration file path. GRAPHDIFF_CFG_FILE wins over the
// user configuration directory, and the file it names must exist.
func File() (string, error) {
	if path := os.Getenv(EnvFile); path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("config file not found at %s path: %s", EnvFile, path)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvFile, path)
		}
		log.Debugf("using config file from %s: %s", EnvFile, path)
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		log.Debugf("using config file: %s", path)
		return path, nil
	}

	return "", errors.New("no config file found in standard locations")
}

// GetString returns the string at key, or the default when the key is absent.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		return fallback(err, defaultValue)
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("config %s: value is not a string", key)
	}
	return s, nil
}

// GetInt returns the integer at key, or the default when the key is absent.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		return fallback(err, defaultValue)
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i, nil
		}
	}
	return 0, fmt.Errorf("config %s: value is not an int", key)
}

// GetBool returns the boolean at key, or the default when the key is absent.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := lookup(key)
	if err != nil {
		return fallback(err, defaultValue)
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
	}
	return false, fmt.Errorf("config %s: value is not a bool", key)
}

// GetStringSlice returns the list of strings at key, or the default when the
// key is absent. A scalar string is read as a one-element list.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		return fallback(err, defaultValue)
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("config %s: element %d is not a string", key, i)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("config %s: value is not a list", key)
}

func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return Config.get(key)
}

func fallback[T any](err error, defaultValue []T) (T, error) {
	var zero T
	if len(defaultValue) == 1 {
		return defaultValue[0], nil
	}
	return zero, err
}

// get walks the dotted key, trying the namespaced form first.
func (cfg *Type) get(key string) (any, error) {
	candidates := []string{key}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + key, key}
	}

	for _, candidate := range candidates {
		var current any = cfg.Data
		found := true
		for _, part := range strings.Split(candidate, ".") {
			m, ok := current.(map[string]any)
			if !ok {
				found = false
				break
			}
			if current, ok = m[part]; !ok {
				found = false
				break
			}
		}
		if found {
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(candidates, ", "))
}
