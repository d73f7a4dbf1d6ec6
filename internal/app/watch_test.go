package app_test

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/app"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.uber.org/mock/gomock"
)

// eventSource feeds a mock watcher from a channel the test controls.
type eventSource struct {
	events chan ports.WatchEvent
	once   sync.Once
}

func newEventSource() *eventSource {
	return &eventSource{events: make(chan ports.WatchEvent)}
}

func (s *eventSource) Seq() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range s.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (s *eventSource) Close() error {
	s.once.Do(func() { close(s.events) })
	return nil
}

func TestApp_Watch_RebuildsOnChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, "index.md")
		writeDoc(t, f.root, "index.md", "@include part.md\n@include other.md\n")
		part := writeDoc(t, f.root, "part.md", "v1\n")
		writeDoc(t, f.root, "other.md", "other\n")

		src := newEventSource()
		f.watcher.EXPECT().Start(gomock.Any(), []string{f.root}).Return(nil)
		f.watcher.EXPECT().Events().Return(src.Seq())
		f.watcher.EXPECT().Stop().DoAndReturn(src.Close)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- f.app.Watch(ctx, nil, app.Options{Dir: f.root}) }()
		synctest.Wait()

		writeDoc(t, f.root, "part.md", "v2\n")
		src.events <- ports.WatchEvent{Path: part, Operation: ports.OpWrite}
		src.events <- ports.WatchEvent{Path: filepath.Join(f.root, "node_modules", "x.js"), Operation: ports.OpCreate}

		time.Sleep(2 * domain.DefaultDebounce)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)

		assert.Equal(t, []string{
			"built index.md",
			"watching ./",
			"invalidated index.md, part.md",
			"built index.md",
			"index.md: replaced part.md",
		}, f.logs.Lines())
	})
}

func TestApp_Watch_UnknownChangeRebuildsNothing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, "index.md")
		writeDoc(t, f.root, "index.md", "index\n")
		stray := writeDoc(t, f.root, "stray.md", "stray\n")

		src := newEventSource()
		f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
		f.watcher.EXPECT().Events().Return(src.Seq())
		f.watcher.EXPECT().Stop().DoAndReturn(src.Close)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- f.app.Watch(ctx, nil, app.Options{Dir: f.root}) }()
		synctest.Wait()

		src.events <- ports.WatchEvent{Path: stray, Operation: ports.OpWrite}
		time.Sleep(2 * domain.DefaultDebounce)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)

		assert.Equal(t, []string{"built index.md", "watching ./", "cached index.md"}, f.logs.Lines())
	})
}

func TestApp_Watch_OnlyReportedChangesRebuild(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, "index.md")
		writeDoc(t, f.root, "index.md", "@include part.md\n")
		writeDoc(t, f.root, "part.md", "v1\n")
		stray := writeDoc(t, f.root, "stray.md", "stray\n")

		src := newEventSource()
		f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
		f.watcher.EXPECT().Events().Return(src.Seq())
		f.watcher.EXPECT().Stop().DoAndReturn(src.Close)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- f.app.Watch(ctx, nil, app.Options{Dir: f.root}) }()
		synctest.Wait()

		// part.md changes on disk but only stray.md is reported.
		writeDoc(t, f.root, "part.md", "v2\n")
		src.events <- ports.WatchEvent{Path: stray, Operation: ports.OpWrite}
		time.Sleep(2 * domain.DefaultDebounce)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)

		assert.Equal(t, []string{"built index.md", "watching ./", "cached index.md"}, f.logs.Lines())
	})
}

func TestApp_Watch_StartFailure(t *testing.T) {
	f := newFixture(t, "index.md")
	writeDoc(t, f.root, "index.md", "index\n")

	f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("too many open files"))

	err := f.app.Watch(t.Context(), nil, app.Options{Dir: f.root})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWatcherStartFailed.Error())
}
