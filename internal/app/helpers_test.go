package app_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/adapters/fs"
	"go.trai.ch/recache/internal/adapters/includes"
	"go.trai.ch/recache/internal/app"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// logRecorder keeps the info and error lines logged through a mock logger.
type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *logRecorder) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *logRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func recordingLogger(ctrl *gomock.Controller) (*mocks.MockLogger, *logRecorder) {
	rec := &logRecorder{}
	m := mocks.NewMockLogger(ctrl)
	m.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.EXPECT().Info(gomock.Any()).Do(func(msg string) { rec.add(msg) }).AnyTimes()
	m.EXPECT().Warn(gomock.Any()).Do(func(msg string) { rec.add("warn: " + msg) }).AnyTimes()
	m.EXPECT().Error(gomock.Any()).Do(func(err error) { rec.add("error: " + err.Error()) }).AnyTimes()
	return m, rec
}

func writeDoc(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

type fixture struct {
	root    string
	cfg     *domain.Config
	app     *app.App
	loader  *mocks.MockConfigLoader
	watcher *mocks.MockWatcher
	logs    *logRecorder
}

// newFixture creates an app over a temporary workspace using the content oracle.
func newFixture(t *testing.T, entries ...string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	cfg := domain.DefaultConfig(root)
	cfg.Oracle = domain.OracleContent
	for _, e := range entries {
		cfg.Entries = append(cfg.Entries, filepath.Join(root, e))
	}

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(cfg, nil).AnyTimes()

	log, rec := recordingLogger(ctrl)
	w := mocks.NewMockWatcher(ctrl)
	projects := includes.NewFactory(fs.NewOracleFactory(fs.NewWalker()), nil, nil)

	return &fixture{
		root:    root,
		cfg:     cfg,
		app:     app.New(loader, log, projects, w, nil),
		loader:  loader,
		watcher: w,
		logs:    rec,
	}
}
