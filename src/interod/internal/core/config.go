package core

import (
	"fmt"
	"os"
	"path/filepath"

	uberconfig "go.uber.org/config"
	"go.uber.org/fx"
)

// ConfigModule provides the layered YAML configuration provider.
var ConfigModule = fx.Options(
	fx.Provide(NewConfig),
)

// Config wraps the provider so consumers depend on a single named type.
type Config struct {
	provider uberconfig.Provider
}

// Get returns the value at the given dotted path.
func (c Config) Get(path string) uberconfig.Value {
	return c.provider.Get(path)
}

// Name identifies this provider.
func (c Config) Name() string {
	return "config"
}

// NewConfig assembles the provider from the file list in meta.yaml. Files
// named there but absent on disk are skipped, so deployments may layer
// overrides without shipping every file.
func NewConfig() (uberconfig.Provider, error) {
	configDir := getConfigDir()

	metaProvider, err := uberconfig.NewYAML(
		uberconfig.File(filepath.Join(configDir, "meta.yaml")),
		uberconfig.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load meta configuration: %w", err)
	}

	var configFiles []string
	if err := metaProvider.Get("files").Populate(&configFiles); err != nil {
		return nil, fmt.Errorf("failed to read files list from meta.yaml: %w", err)
	}

	var options []uberconfig.YAMLOption
	for _, file := range configFiles {
		fullPath := filepath.Join(configDir, file)
		if _, err := os.Stat(fullPath); err == nil {
			options = append(options, uberconfig.File(fullPath))
		}
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no configuration files found in %s", configDir)
	}
	options = append(options, uberconfig.Expand(os.LookupEnv))

	provider, err := uberconfig.NewYAML(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return Config{provider: provider}, nil
}

func getConfigDir() string {
	if configDir := os.Getenv("INTEROD_CONFIG_DIR"); configDir != "" {
		return configDir
	}
	// Assumes the binary is run from the workspace root.
	return "src/interod/config"
}
