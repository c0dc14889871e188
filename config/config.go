package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingRequired indicates a required key resolved to an empty value.
var ErrMissingRequired = errors.New("input required and not supplied")

// ResolverConfig configures the hierarchical config resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// With "INPUT_", key "auth-token" maps to INPUT_AUTH-TOKEN.
	EnvPrefix string

	// GlobalConfigDir is the name of the directory under ~/.config/
	// where the global config is stored.
	GlobalConfigDir string

	// GlobalConfigFile is the filename for global config.
	// Defaults to "config.yaml" if empty.
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in the git root.
	LocalConfigName string

	// ConfigFile is an explicit config file. Unlike the global and local
	// files it must exist.
	ConfigFile string

	// DotenvFile is a dotenv file whose values are consulted before the
	// process environment. It must exist when set.
	DotenvFile string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidKeys lists keys accepted from config files.
	// If nil, all keys are valid.
	ValidKeys []string

	// GitRootFinder finds the git root directory.
	// If nil, uses a simple git root detection.
	GitRootFinder func(startDir string) (string, error)

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(key string) string

	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// Resolver handles hierarchical configuration resolution.
type Resolver struct {
	config     ResolverConfig
	globalPath string
	localPath  string
	gitRoot    string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a new configuration resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	resolver := newResolver(cfg)

	finder := cfg.GitRootFinder
	if finder == nil {
		finder = func(dir string) (string, error) { return findGitRoot(dir), nil }
	}
	if root, err := finder("."); err == nil && root != "" {
		resolver.gitRoot = root
		if cfg.LocalConfigName != "" {
			resolver.localPath = filepath.Join(root, cfg.LocalConfigName)
		}
	}

	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			resolver.globalPath = filepath.Join(
				home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile(),
			)
		}
	}

	return resolver
}

// NewResolverWithPaths creates a resolver with explicit global and local paths.
// This is useful for testing or when paths are known ahead of time.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath string) *Resolver {
	resolver := newResolver(cfg)
	resolver.globalPath = globalPath
	resolver.localPath = localPath
	return resolver
}

func newResolver(cfg ResolverConfig) *Resolver {
	if cfg.Getenv == nil {
		cfg.Getenv = os.Getenv
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Resolver{config: cfg}
}

// warn records a warning and logs it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	r.config.Logger.Warn(msg)
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// GetInput implements input.Source.
func (c *Resolved) GetInput(name string) string {
	return c.values[name]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Required returns the trimmed value for key or ErrMissingRequired.
func (c *Resolved) Required(key string) (string, error) {
	value := strings.TrimSpace(c.values[key])
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequired, key)
	}
	return value, nil
}

// Bool parses the value for key using YAML 1.2 core schema booleans
// ("true"/"false", case-insensitive). Empty values are false.
func (c *Resolved) Bool(key string) (bool, error) {
	value := strings.TrimSpace(c.values[key])
	switch strings.ToLower(value) {
	case "":
		return false, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("input %s: %q is not a boolean (want true or false)", key, value)
	}
}

// Int64 parses the value for key. Empty values are 0.
func (c *Resolved) Int64(key string) (int64, error) {
	value := strings.TrimSpace(c.values[key])
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("input %s: %w", key, err)
	}
	return n, nil
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all configuration keys, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > file > local > global > defaults.
func (r *Resolver) Resolve() (*Resolved, error) {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	getenv, err := r.Getenv()
	if err != nil {
		return nil, err
	}

	r.applyDefaults(cfg)
	r.applyFile(cfg, r.globalPath, SourceGlobal, false)
	r.applyFile(cfg, r.localPath, SourceLocal, false)
	if r.config.ConfigFile != "" {
		if err := r.applyFile(cfg, r.config.ConfigFile, SourceFile, true); err != nil {
			return nil, err
		}
	}
	r.applyEnv(cfg, getenv)

	return cfg, nil
}

// ResolveWithFlags resolves config and applies flag overrides.
// Empty flag values are ignored.
func (r *Resolver) ResolveWithFlags(flags map[string]string) (*Resolved, error) {
	cfg, err := r.Resolve()
	if err != nil {
		return nil, err
	}

	for key, value := range flags {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceFlag
		}
	}

	return cfg, nil
}

// Getenv returns the lookup function resolution uses, including the
// dotenv overlay when one is configured.
func (r *Resolver) Getenv() (func(string) string, error) {
	if r.config.DotenvFile == "" {
		return r.config.Getenv, nil
	}
	dotenv, err := godotenv.Read(r.config.DotenvFile)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", r.config.DotenvFile, err)
	}
	return overlay(dotenv, r.config.Getenv), nil
}

func (r *Resolver) applyDefaults(cfg *Resolved) {
	for key, value := range r.config.Defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}
}

// applyFile merges a YAML file. Missing files are an error only when required.
func (r *Resolver) applyFile(cfg *Resolved, path string, source Source, required bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if required {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		if required {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return nil
	}

	for key, value := range parsed {
		if len(r.config.ValidKeys) > 0 && !slices.Contains(r.config.ValidKeys, key) {
			r.warn(fmt.Sprintf("ignoring unknown key %q in %s", key, path))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = source
		}
	}
	return nil
}

func (r *Resolver) applyEnv(cfg *Resolved, getenv func(string) string) {
	if r.config.EnvPrefix == "" {
		return
	}

	allKeys := make(map[string]bool)
	for k := range r.config.Defaults {
		allKeys[k] = true
	}
	for _, k := range r.config.ValidKeys {
		allKeys[k] = true
	}
	for k := range cfg.values {
		allKeys[k] = true
	}

	for key := range allKeys {
		for _, envKey := range EnvKeys(r.config.EnvPrefix, key) {
			if value := getenv(envKey); value != "" {
				cfg.values[key] = value
				cfg.sources[key] = SourceEnv
				break
			}
		}
	}
}

// EnvKeys returns the environment variable names checked for key, in order:
// the runner's form (hyphens kept) and the underscore form.
func EnvKeys(prefix, key string) []string {
	runner := prefix + strings.ToUpper(strings.ReplaceAll(key, " ", "_"))
	underscore := strings.ReplaceAll(runner, "-", "_")
	if underscore == runner {
		return []string{runner}
	}
	return []string{runner, underscore}
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// Helper functions

func overlay(values map[string]string, fallback func(string) string) func(string) string {
	return func(key string) string {
		if v, ok := values[key]; ok {
			return v
		}
		return fallback(key)
	}
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s := toString(item); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, "\n")
	default:
		return ""
	}
}

// findGitRoot finds the git root by looking for .git directory.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached root
		}
		dir = parent
	}

	return ""
}
