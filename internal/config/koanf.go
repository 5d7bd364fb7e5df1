// Package config provides internal configuration loading and processing.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vocal-dev/vocal/internal/xdg"
	"github.com/vocal-dev/vocal/pkg/config"
)

var (
	// ErrInvalidPermissions is returned when config file has insecure permissions.
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

const (
	// EnvPrefix prefixes every environment variable read as configuration.
	EnvPrefix = "VOCAL_"

	// ProjectConfigDir is the directory name for project configuration.
	ProjectConfigDir = ".vocal"

	// ProjectConfigFile is the primary project configuration file name.
	ProjectConfigFile = "config.toml"

	// ProjectConfigFileAlt is the alternative project configuration file name.
	ProjectConfigFileAlt = "vocal.toml"
)

// Flag names understood by Load.
const (
	FlagDebug    = "debug"
	FlagTrace    = "trace"
	FlagStateDir = "state-dir"
	FlagConfig   = "config"
)

// KoanfLoader handles configuration loading from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables (VOCAL_*)
// 3. Project Config (.vocal/config.toml or vocal.toml)
// 4. Global Config ($XDG_CONFIG_HOME/vocal/config.toml, or --config)
// 5. Defaults
type KoanfLoader struct {
	k        *koanf.Koanf
	paths    xdg.PathResolver
	workDir  string
	tomlOpts koanf.UnmarshalConf
}

// NewKoanfLoader creates a new KoanfLoader using the real XDG paths and the
// current working directory.
func NewKoanfLoader() (*KoanfLoader, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return newLoader(xdg.DefaultResolver(), workDir), nil
}

// NewKoanfLoaderWithDirs creates a new KoanfLoader with custom directories (for testing).
func NewKoanfLoaderWithDirs(homeDir, workDir string) *KoanfLoader {
	return newLoader(xdg.ResolverFor(homeDir), workDir)
}

func newLoader(paths xdg.PathResolver, workDir string) *KoanfLoader {
	return &KoanfLoader{
		k:       koanf.New("."),
		paths:   paths,
		workDir: workDir,
		tomlOpts: koanf.UnmarshalConf{
			Tag:       "koanf",
			FlatPaths: false,
		},
	}
}

// Load loads configuration from all sources with precedence and validates it.
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	cfg, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// LoadWithoutValidation loads configuration without running validation.
// Defaults → Global TOML → Project TOML → Env Vars → CLI Flags
func (l *KoanfLoader) LoadWithoutValidation(flags map[string]any) (*config.Config, error) {
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	globalPath := l.GlobalConfigPath()
	explicit := false

	if path, ok := flags[FlagConfig].(string); ok && path != "" {
		globalPath = xdg.ExpandPathSilent(path)
		explicit = true
	}

	if err := l.loadTOMLFile(globalPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(err, "failed to load global config")
		}
	}

	if projectPath := l.findProjectConfig(); projectPath != "" {
		if err := l.loadTOMLFile(projectPath); err != nil {
			return nil, errors.Wrap(err, "failed to load project config")
		}
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: l.envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if flagConfig := l.flagsToConfig(flags); len(flagConfig) > 0 {
		if err := l.k.Load(confmap.Provider(flagConfig, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg config.Config

	opts := l.tomlOpts
	opts.DecoderConfig = CustomDecoderConfig()
	opts.DecoderConfig.Result = &cfg

	if err := l.k.UnmarshalWithConf("", &cfg, opts); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// loadTOMLFile loads a TOML configuration file with security checks.
func (l *KoanfLoader) loadTOMLFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0o002 != 0 {
		return errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	return l.k.Load(file.Provider(path), tomlparser.Parser())
}

// envTransform maps environment variable names to config paths. The first
// underscore separates the section from the key:
// VOCAL_AUDIT_MAX_SIZE → audit.max_size
func (*KoanfLoader) envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	section, field, found := strings.Cut(key, "_")
	if !found {
		return "", nil
	}

	return section + "." + field, value
}

// flagsToConfig converts CLI flags to koanf paths. Only flags that were
// set are present in the map.
func (*KoanfLoader) flagsToConfig(flags map[string]any) map[string]any {
	result := make(map[string]any)

	if v, ok := flags[FlagDebug]; ok {
		result["log.debug"] = v
	}

	if v, ok := flags[FlagTrace]; ok {
		result["log.trace"] = v
	}

	if v, ok := flags[FlagStateDir].(string); ok && v != "" {
		result["state.dir"] = v
	}

	return result
}

// GlobalConfigPath returns the path to the global configuration file.
func (l *KoanfLoader) GlobalConfigPath() string {
	return l.paths.GlobalConfigFile()
}

// ProjectConfigPaths returns the paths to check for project configuration.
func (l *KoanfLoader) ProjectConfigPaths() []string {
	return []string{
		filepath.Join(l.workDir, ProjectConfigDir, ProjectConfigFile),
		filepath.Join(l.workDir, ProjectConfigFileAlt),
	}
}

func (l *KoanfLoader) findProjectConfig() string {
	for _, path := range l.ProjectConfigPaths() {
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// FindProjectConfigPath returns the path to the project config file if one exists.
func (l *KoanfLoader) FindProjectConfigPath() string {
	return l.findProjectConfig()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
