package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sitecheck/sitecheck/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".sitecheck.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .sitecheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .sitecheck.yaml from projectPath.
// Returns DefaultConfig if the file does not exist. Keys omitted from the
// file keep their default values.
func (l *YAMLLoader) Load(projectPath string) (domain.SiteConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.SiteConfig{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.SiteConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.SiteConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
