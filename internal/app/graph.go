package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/depgraph"
	"go.trai.ch/recache/internal/ui/output"
	"go.trai.ch/recache/internal/ui/style"
)

// Graph builds the targets and writes the resulting dependency graph to w.
// The graph is written even when some entries fail.
func (a *App) Graph(ctx context.Context, w io.Writer, targets []string, opts Options) error {
	s, err := a.open(targets, opts)
	if err != nil {
		return err
	}

	errs := a.buildEntries(ctx, s, "", nil)

	ws := s.project.Workspace
	keys := make(map[domain.Key]struct{})
	for _, k := range ws.Graph().Keys() {
		keys[k] = struct{}{}
	}
	for _, k := range ws.Built() {
		keys[k] = struct{}{}
	}

	if err := RenderGraph(w, ws.Graph(), domain.SortKeys(slices.Collect(maps.Keys(keys))), s.cfg.Root); err != nil {
		return err
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrBuildFailed}, errs...)...)
	}
	return nil
}

// RenderGraph writes one block per key: the key, its dependencies ("->", with the
// multiplicity when above one) and its dependents ("<-"). Paths are shown relative to root.
// Colors are only used when w is a terminal.
func RenderGraph(w io.Writer, g *depgraph.Graph, keys []domain.Key, root string) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ProfileFor(w))
	heading := r.NewStyle().Bold(true).Foreground(style.Iris)
	muted := r.NewStyle().Foreground(style.Slate)

	for _, key := range keys {
		if _, err := fmt.Fprintln(w, heading.Render(relTo(root, key.String()))); err != nil {
			return err
		}
		for _, dep := range g.Dependencies(key) {
			line := fmt.Sprintf("  %s %s", muted.Render(style.Arrow), relTo(root, dep.String()))
			if n := g.Multiplicity(key, dep); n > 1 {
				line += " " + muted.Render(fmt.Sprintf("x%d", n))
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		for _, dependent := range g.Dependents(key) {
			line := fmt.Sprintf("  %s %s", muted.Render(style.Back), relTo(root, dependent.String()))
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
