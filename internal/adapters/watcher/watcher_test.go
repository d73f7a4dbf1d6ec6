package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/adapters/watcher"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.trai.ch/recache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestConvertOp(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want ports.WatchOp
		ok   bool
	}{
		{name: "write", op: fsnotify.Write, want: ports.OpWrite, ok: true},
		{name: "create", op: fsnotify.Create, want: ports.OpCreate, ok: true},
		{name: "remove", op: fsnotify.Remove, want: ports.OpRemove, ok: true},
		{name: "rename", op: fsnotify.Rename, want: ports.OpRename, ok: true},
		{name: "write wins over create", op: fsnotify.Create | fsnotify.Write, want: ports.OpWrite, ok: true},
		{name: "chmod is dropped", op: fsnotify.Chmod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := watcher.ConvertOp(tt.op)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDirectories_SkipsVendoredTrees(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"docs/api", ".git/objects", "node_modules/pkg", "src"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), domain.DirPerm))
	}

	got := watcher.Directories(root)

	assert.Equal(t, []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "docs", "api"),
		filepath.Join(root, "src"),
	}, got)
}

func TestWatcher_Start_MissingRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, err := watcher.NewWatcher(mocks.NewMockLogger(ctrl))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	err = w.Start(t.Context(), []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWatcherStartFailed.Error())
}

func TestWatcher_DeliversWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	path := filepath.Join(root, "index.md")
	require.NoError(t, os.WriteFile(path, []byte("v1"), domain.FilePerm))

	w, err := watcher.NewWatcher(mocks.NewMockLogger(ctrl))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	require.NoError(t, w.Start(ctx, []string{root}))

	received := make(chan ports.WatchEvent, 16)
	go func() {
		for ev := range w.Events() {
			received <- ev
		}
		close(received)
	}()

	require.NoError(t, os.WriteFile(path, []byte("v2"), domain.FilePerm))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-received:
			require.True(t, ok, "event stream closed before the write was seen")
			if ev.Path == path {
				require.NoError(t, w.Stop())
				require.NoError(t, w.Stop())
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for write event")
		}
	}
}
