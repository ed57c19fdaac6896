package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "reflex.yaml"

// Load loads the reflex presets.
// Search order: customPath -> ~/.philo/configs/reflex.yaml -> ./configs/reflex.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable. The result's Source
// names where the presets came from.
func Load(customPath string) (ReflexConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return ReflexConfig{}, err
		}
		if err := cfg.Validate(); err != nil {
			return ReflexConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(configFile), filepath.Join("configs", configFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultReflexYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultReflexConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = SourceEmbedded
	return cfg, nil
}

// Parse decodes presets from YAML. Variants missing from data keep their
// built-in values; fields missing from a variant keep the built-in values
// of the variant with the same name.
func Parse(data []byte) (ReflexConfig, error) {
	cfg := DefaultReflexConfig()
	cfg.Source = ""
	var overlay struct {
		Variants map[string]yaml.Node `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return ReflexConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	for name, node := range overlay.Variants {
		vc := cfg.Variants[name]
		if err := node.Decode(&vc); err != nil {
			return ReflexConfig{}, fmt.Errorf("failed to parse variant %q: %w", name, err)
		}
		cfg.Variants[name] = vc
	}
	return cfg, nil
}

func loadFile(path string) (ReflexConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReflexConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return ReflexConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".philo", "configs", filename)
}
