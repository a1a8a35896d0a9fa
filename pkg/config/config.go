package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	v1 "github.com/debdig/debdig/pkg/api/v1"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// Read loads a configuration file. The format is picked by file
// extension: .toml is decoded as TOML, anything else goes through
// the YAML-or-JSON decoder.
func Read(path string) (v1.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return v1.Config{}, err
	}
	defer f.Close()

	cfg := v1.Config{MaxDepth: 1}
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
			return v1.Config{}, fmt.Errorf("decoding toml config: %w", err)
		}
	default:
		if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&cfg); err != nil {
			return v1.Config{}, fmt.Errorf("decoding config: %w", err)
		}
	}
	return cfg, nil
}

// Validate checks the configuration before any acquisition begins.
// All failures are collected rather than stopping at the first.
func Validate(cfg v1.Config) error {
	var errs []error

	if cfg.PackageName == "" {
		errs = append(errs, errors.New("package name must not be empty"))
	}

	switch {
	case cfg.RepositoryURL == "":
		errs = append(errs, errors.New("repository url must not be empty"))
	case !strings.HasPrefix(cfg.RepositoryURL, "http://") &&
		!strings.HasPrefix(cfg.RepositoryURL, "https://") &&
		!strings.HasPrefix(cfg.RepositoryURL, "/"):
		errs = append(errs, errors.New("repository url must be an http(s) url or an absolute path"))
	}

	switch cfg.WorkingMode {
	case v1.ModeLocal, v1.ModeRemote, v1.ModeTest:
	default:
		errs = append(errs, fmt.Errorf("working mode must be one of: local, remote, test (got %q)", cfg.WorkingMode))
	}

	if cfg.WorkingMode == v1.ModeRemote {
		if cfg.Distribution == "" || cfg.Component == "" || cfg.Architecture == "" {
			errs = append(errs, errors.New("remote mode requires distribution, component and architecture"))
		}
	}

	if cfg.MaxDepth < 1 || cfg.MaxDepth > 20 {
		errs = append(errs, fmt.Errorf("max depth must be between 1 and 20 (got %d)", cfg.MaxDepth))
	}

	return errors.Join(errs...)
}
