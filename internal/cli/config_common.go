package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/vvka-141/babynames/internal/config"
	"github.com/vvka-141/babynames/pkg/babynames"
)

// loadProjectConfig loads .env into the environment and reads babynames.yaml.
// Returns an empty config if babynames.yaml does not exist.
func loadProjectConfig(sourcePath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(sourcePath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, babynames.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

// resolveTimeout returns the flag value if set, then babynames.yaml, then the default.
func resolveTimeout(flagTimeout time.Duration, flagChanged bool, projectCfg *config.ProjectConfig) (time.Duration, error) {
	if flagChanged {
		return flagTimeout, nil
	}
	fromFile, err := projectCfg.TimeoutDuration()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", babynames.ErrInvalidConfig, err)
	}
	if fromFile > 0 {
		return fromFile, nil
	}
	return babynames.DefaultTimeout, nil
}

// resolvePath returns the flag value if set, otherwise the babynames.yaml value
// interpreted relative to the source root.
func resolvePath(flagValue, configValue, sourcePath string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue == "" || filepath.IsAbs(configValue) {
		return configValue
	}
	return filepath.Join(sourcePath, configValue)
}
