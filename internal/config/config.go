// Package config loads roleci settings.
//
// Settings are resolved with Viper, highest priority first:
//  1. Environment variables with the ROLECI_ prefix (ROLECI_ROLES_DIR, ...)
//  2. The config file named by --config or ROLECI_CONFIG
//  3. [DefaultSettings]
//
// No config file is read unless one is named explicitly, so a bare
// invocation depends only on the working directory.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "ROLECI"

// Settings controls where roleci reads roles and writes workflows
type Settings struct {
	// Root is the repository root the other paths are relative to.
	Root string `mapstructure:"root"`

	// RolesDir holds one subdirectory per role.
	RolesDir string `mapstructure:"roles_dir"`

	// WorkflowsDir receives the generated <role>-ci.yml files. It must exist.
	WorkflowsDir string `mapstructure:"workflows_dir"`

	// RolesFile optionally names a YAML file of role overrides.
	RolesFile string `mapstructure:"roles_file"`

	// Branch is the branch the generated triggers listen on.
	Branch string `mapstructure:"branch"`

	// BaseBranch is the ref used by change detection.
	BaseBranch string `mapstructure:"base_branch"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// DefaultSettings returns settings for a repository laid out as
// roles/<role>/ with workflows under .github/workflows.
func DefaultSettings() *Settings {
	return &Settings{
		Root:         ".",
		RolesDir:     "roles",
		WorkflowsDir: filepath.Join(".github", "workflows"),
		Branch:       "main",
		BaseBranch:   "main",
	}
}

// RolesPath returns RolesDir resolved against Root
func (s *Settings) RolesPath() string {
	return s.resolve(s.RolesDir)
}

// WorkflowsPath returns WorkflowsDir resolved against Root
func (s *Settings) WorkflowsPath() string {
	return s.resolve(s.WorkflowsDir)
}

// RolesFilePath returns RolesFile resolved against Root, or "" when unset
func (s *Settings) RolesFilePath() string {
	if s.RolesFile == "" {
		return ""
	}
	return s.resolve(s.RolesFile)
}

func (s *Settings) resolve(path string) string {
	if filepath.IsAbs(path) || s.Root == "" {
		return path
	}
	return filepath.Join(s.Root, path)
}

// Loader handles Viper-based settings loading
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and environment bindings in place
func NewLoader() *Loader {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("roles_dir", defaults.RolesDir)
	v.SetDefault("workflows_dir", defaults.WorkflowsDir)
	v.SetDefault("roles_file", defaults.RolesFile)
	v.SetDefault("branch", defaults.Branch)
	v.SetDefault("base_branch", defaults.BaseBranch)
	v.SetDefault("debug", defaults.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("config")

	return &Loader{v: v}
}

// Viper exposes the underlying instance so command flags can be bound to it
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load resolves settings. configPath may be empty, in which case ROLECI_CONFIG
// is consulted and, failing that, no file is read.
func (l *Loader) Load(configPath string) (*Settings, error) {
	if configPath == "" {
		configPath = l.v.GetString("config")
	}

	if configPath != "" {
		l.v.SetConfigFile(configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	var settings Settings
	if err := l.v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &settings, nil
}
