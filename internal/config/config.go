// Package config loads sdlocale tool configuration from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog/log"
)

// File is the sdlocale configuration file structure.
type File struct {
	// Root is the default locale data tree root.
	Root string `json:"root,omitempty"`
	// DefaultProvider selects the preview TTS provider.
	DefaultProvider string `json:"defaultProvider,omitempty"`
	// Providers holds per-provider settings.
	Providers map[string]Provider `json:"providers,omitempty"`
}

// Provider holds per-provider preview settings.
type Provider struct {
	Voice  string  `json:"voice,omitempty"`
	Region string  `json:"region,omitempty"`
	Format string  `json:"format,omitempty"`
	Speed  float64 `json:"speed,omitempty"`
	Engine string  `json:"engine,omitempty"`
}

// Loader resolves configuration files with project-over-global priority.
type Loader struct {
	projectPath string
	globalPath  string
}

// NewLoader creates a config loader.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		projectPath: ".sdlocale.json",
		globalPath:  filepath.Join(homeDir, ".config", "sdlocale", "config.json"),
	}
}

// Load loads configuration with priority:
// 1. Project-local config (./.sdlocale.json)
// 2. Global config (~/.config/sdlocale/config.json)
// Returns nil if no config file is found.
func (l *Loader) Load(workDir string) (*File, error) {
	projectPath := filepath.Join(workDir, l.projectPath)
	if cfg, err := l.loadFromFile(projectPath); err == nil {
		log.Debug().Str("path", projectPath).Msg("Loaded project config")
		return cfg, nil
	}

	if cfg, err := l.loadFromFile(l.globalPath); err == nil {
		log.Debug().Str("path", l.globalPath).Msg("Loaded global config")
		return cfg, nil
	}

	log.Debug().Msg("No config file found")
	return nil, nil
}

func (l *Loader) loadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := expandEnvVars(string(data))

	var cfg File
	if err := json.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(input, func(match string) string {
		name := match[2 : len(match)-1]
		if value, exists := os.LookupEnv(name); exists {
			return value
		}
		log.Debug().Msg("Referenced environment variable not set in config")
		return ""
	})
}

// ProviderConfig returns the settings for a provider, or nil.
func (f *File) ProviderConfig(name string) *Provider {
	if f == nil || f.Providers == nil {
		return nil
	}
	if p, ok := f.Providers[name]; ok {
		return &p
	}
	return nil
}

// EffectiveProvider returns the provider to use: the explicit choice, the
// configured default, or gcp.
func (f *File) EffectiveProvider(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if f != nil && f.DefaultProvider != "" {
		return f.DefaultProvider
	}
	return "gcp"
}

// EffectiveRoot returns the locale tree root: the explicit choice, the
// configured root, or "locale".
func (f *File) EffectiveRoot(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if f != nil && f.Root != "" {
		return f.Root
	}
	return "locale"
}
