// Package app implements the application layer for recache.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/recache/internal/adapters/includes"
	"go.trai.ch/recache/internal/adapters/telemetry"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.trai.ch/zerr"
)

// ProjectFactory creates the document project for a resolved configuration.
type ProjectFactory interface {
	New(cfg *domain.Config) (*includes.Project, error)
}

// LogConfigurer is implemented by loggers whose format and level can change at runtime.
type LogConfigurer interface {
	Configure(cfg domain.LogConfig)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	projects     ProjectFactory
	watcher      ports.Watcher
	summary      *telemetry.Summary
}

// New creates a new App instance. summary may be nil.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	projects ProjectFactory,
	watcher ports.Watcher,
	summary *telemetry.Summary,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		projects:     projects,
		watcher:      watcher,
		summary:      summary,
	}
}

// Options configures a single command invocation.
type Options struct {
	// Dir is the working directory; targets resolve against it. Empty means ".".
	Dir string
	// Policy overrides the configured cache policy when set.
	Policy string
	// Output, when set, receives the expanded text of every entry.
	Output string
	// JSON forces JSON log output.
	JSON bool
	// Verbose enables debug logging.
	Verbose bool
}

// session is the state of one command: its configuration, project and entries.
type session struct {
	cfg     *domain.Config
	project *includes.Project
	entries []domain.Key
}

func (a *App) open(targets []string, opts Options) (*session, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Policy != "" {
		if cfg.Policy, err = domain.ParsePolicy(opts.Policy); err != nil {
			return nil, err
		}
	}
	if opts.JSON {
		cfg.Log.JSON = true
	}
	if opts.Verbose {
		cfg.Log.Level = domain.LogLevelDebug
	}
	if c, ok := a.logger.(LogConfigurer); ok {
		c.Configure(cfg.Log)
	}

	entries, err := resolveTargets(dir, targets, cfg)
	if err != nil {
		return nil, err
	}

	project, err := a.projects.New(cfg)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, project: project, entries: entries}, nil
}

// resolveTargets turns command line targets into keys, falling back to the configured entries.
func resolveTargets(dir string, targets []string, cfg *domain.Config) ([]domain.Key, error) {
	if len(targets) == 0 {
		if len(cfg.Entries) == 0 {
			return nil, zerr.With(domain.ErrNoEntries, "config", filepath.Join(cfg.Root, domain.ConfigFileName))
		}
		return cfg.Keys(), nil
	}

	keys := make([]domain.Key, 0, len(targets))
	for _, t := range targets {
		path := t
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve target"), "target", t)
		}
		keys = append(keys, domain.NewKey(abs))
	}
	return keys, nil
}

// Build loads every target, or every configured entry when no target is given.
func (a *App) Build(ctx context.Context, targets []string, opts Options) error {
	s, err := a.open(targets, opts)
	if err != nil {
		return err
	}

	if errs := a.buildEntries(ctx, s, opts.Output, nil); len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrBuildFailed}, errs...)...)
	}
	return nil
}

// buildEntries loads each entry of s, logging what happened to it.
// When previous holds the artifacts of an earlier generation, replaced members are reported.
func (a *App) buildEntries(
	ctx context.Context,
	s *session,
	output string,
	previous map[domain.Key]*includes.Document,
) []error {
	var errs []error
	for _, key := range s.entries {
		rel := relTo(s.cfg.Root, key.String())

		doc, fromCache, err := s.project.Builder.Load(ctx, key)
		if err != nil {
			err = zerr.With(err, "entry", rel)
			a.logger.Error(err)
			errs = append(errs, err)
			continue
		}
		a.logger.Info(fmt.Sprintf("%s %s", domain.OutcomeOf(fromCache, nil), rel))

		if old, ok := previous[key]; ok && !fromCache {
			a.reportMembers(rel, old, doc)
		}

		if output != "" {
			if err := writeOutput(output, rel, doc); err != nil {
				a.logger.Error(err)
				errs = append(errs, err)
			}
		}
	}

	if a.summary != nil {
		stats := a.summary.Reset()
		a.logger.Debug(fmt.Sprintf("%d builds, %d failed in %s",
			stats.Built, stats.Failed, stats.Duration.Round(time.Millisecond)))
	}
	return errs
}

func (a *App) reportMembers(rel string, old, cur *includes.Document) {
	diff := domain.DiffArtifacts(old, cur)
	if diff.Empty() {
		return
	}

	var parts []string
	if len(diff.Replaced) > 0 {
		parts = append(parts, "replaced "+strings.Join(diff.Replaced, ", "))
	}
	if len(diff.Added) > 0 {
		parts = append(parts, "added "+strings.Join(diff.Added, ", "))
	}
	if len(diff.Removed) > 0 {
		parts = append(parts, "removed "+strings.Join(diff.Removed, ", "))
	}
	a.logger.Info(fmt.Sprintf("%s: %s", rel, strings.Join(parts, "; ")))
}

func writeOutput(dir, rel string, doc *includes.Document) error {
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		rel = filepath.Base(doc.Path)
	}
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", path)
	}
	// #nosec G306 -- outputs are regular documents
	if err := os.WriteFile(path, []byte(doc.Text), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write output"), "path", path)
	}
	return nil
}

// relTo returns path relative to root, or path itself when it lies elsewhere.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return path
	}
	return filepath.ToSlash(rel)
}
