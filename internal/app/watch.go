package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/recache/internal/adapters/fs"
	"go.trai.ch/recache/internal/adapters/includes"
	"go.trai.ch/recache/internal/adapters/watcher"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch builds the targets, then rebuilds them whenever a watched file changes.
// It returns when ctx is done.
func (a *App) Watch(ctx context.Context, targets []string, opts Options) error {
	s, err := a.open(targets, opts)
	if err != nil {
		return err
	}

	a.buildEntries(ctx, s, opts.Output, nil)

	if err := a.watcher.Start(ctx, s.cfg.Watch.Roots); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}
	a.logger.Info(fmt.Sprintf("watching %s", strings.Join(relAll(s.cfg.Root, s.cfg.Watch.Roots), ", ")))

	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan []domain.Key)

	debouncer := watcher.NewDebouncer(s.cfg.Watch.Debounce, func(keys []domain.Key) {
		select {
		case batches <- keys:
		case <-gctx.Done():
		}
	})

	g.Go(func() error {
		for ev := range a.watcher.Events() {
			if fs.MatchPath(s.cfg.Watch.Ignore, relTo(s.cfg.Root, ev.Path)) {
				continue
			}
			a.logger.Debug(fmt.Sprintf("%s %s", ev.Operation, relTo(s.cfg.Root, ev.Path)))
			debouncer.Add(domain.NewKey(ev.Path))
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case keys := <-batches:
				a.rebuild(gctx, s, opts.Output, keys)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	return g.Wait()
}

// rebuild invalidates every changed key and builds the entries again.
func (a *App) rebuild(ctx context.Context, s *session, output string, changed []domain.Key) {
	ws := s.project.Workspace

	seen := make(map[domain.Key]struct{})
	for _, key := range changed {
		for _, k := range ws.Invalidate(key) {
			seen[k] = struct{}{}
		}
	}
	if len(seen) == 0 {
		a.logger.Debug(fmt.Sprintf("no built document affected by %s", strings.Join(relKeys(s.cfg.Root, changed), ", ")))
	} else {
		marked := make([]domain.Key, 0, len(seen))
		for k := range seen {
			marked = append(marked, k)
		}
		a.logger.Info(fmt.Sprintf("invalidated %s", strings.Join(relKeys(s.cfg.Root, domain.SortKeys(marked)), ", ")))
	}

	previous := make(map[domain.Key]*includes.Document, len(s.entries))
	for _, key := range s.entries {
		if doc, ok := ws.Artifact(key); ok {
			previous[key] = doc
		}
	}

	// Only the reported paths count as changed during a watch rebuild.
	restore := ws.Detector().Inhibit()
	defer restore()
	a.buildEntries(ctx, s, output, previous)
}

func relKeys(root string, keys []domain.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, relTo(root, k.String()))
	}
	return out
}

func relAll(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel := relTo(root, p)
		if rel == "." {
			rel = "./"
		}
		out = append(out, rel)
	}
	return out
}
