// Package config provides the configuration loader for recache.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads recache.yaml from cwd or the nearest parent that has one.
// Without a configuration file the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	configPath, ok := findConfiguration(cwd)
	if !ok {
		if l.Logger != nil {
			l.Logger.Debug(fmt.Sprintf("no %s found, using defaults", domain.ConfigFileName))
		}
		return domain.DefaultConfig(cwd), nil
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return l.resolve(configPath, &file)
}

// DiscoverRoot walks up from cwd to the directory containing recache.yaml.
// When there is none, cwd itself is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	if configPath, ok := findConfiguration(cwd); ok {
		return filepath.Dir(configPath), nil
	}
	return cwd, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) resolve(configPath string, file *File) (*domain.Config, error) {
	cfg := domain.DefaultConfig(resolveRoot(configPath, file.Root))

	policy, err := domain.ParsePolicy(file.Policy)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg.Policy = policy

	if file.Oracle != "" {
		oracle, err := domain.ParseOracleKind(file.Oracle)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		cfg.Oracle = oracle
	}

	if cfg.Entries, err = resolveEntries(cfg.Root, file.Entries); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := resolveWatch(cfg, &file.Watch); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg.Log = domain.LogConfig{
		JSON:  file.Log.JSON,
		Level: domain.ParseLogLevel(file.Log.Level),
	}

	return cfg, nil
}

// resolveEntries expands entry globs relative to root. A literal path is kept even when it
// does not exist yet so the build reports it.
func resolveEntries(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, zerr.With(domain.ErrInvalidGlob, "pattern", pattern)
		}

		abs := resolvePath(root, pattern)
		matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidGlob.Error()), "pattern", pattern)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			matches = []string{abs}
		}
		for _, m := range matches {
			seen[filepath.Clean(m)] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, nil
	}
	entries := make([]string, 0, len(seen))
	for e := range seen {
		entries = append(entries, e)
	}
	slices.Sort(entries)
	return entries, nil
}

func resolveWatch(cfg *domain.Config, dto *WatchDTO) error {
	if len(dto.Roots) > 0 {
		cfg.Watch.Roots = make([]string, 0, len(dto.Roots))
		for _, r := range dto.Roots {
			cfg.Watch.Roots = append(cfg.Watch.Roots, resolvePath(cfg.Root, r))
		}
	}

	if dto.Debounce != "" {
		d, err := time.ParseDuration(dto.Debounce)
		if err != nil || d < 0 {
			return zerr.With(domain.ErrInvalidDebounce, "debounce", dto.Debounce)
		}
		cfg.Watch.Debounce = d
	}

	for _, pattern := range dto.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return zerr.With(domain.ErrInvalidGlob, "pattern", pattern)
		}
		if !slices.Contains(cfg.Watch.Ignore, pattern) {
			cfg.Watch.Ignore = append(cfg.Watch.Ignore, pattern)
		}
	}

	return nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	return resolvePath(configDir, configuredRoot)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
