package logger_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/adapters/logger"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("built docs/index.md") },
			goldenName: "info_basic",
		},
		{
			name:       "multiline info",
			log:        func(l *logger.Logger) { l.Info("line1\nline2") },
			goldenName: "info_multiline",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("no entries configured") },
			goldenName: "warn_basic",
		},
		{
			name:       "debug filtered at info level",
			log:        func(l *logger.Logger) { l.Debug("load a: cached") },
			goldenName: "debug_filtered",
		},
		{
			name: "debug enabled",
			log: func(l *logger.Logger) {
				l.SetLevel(domain.LogLevelDebug)
				l.Debug("load a: cached")
			},
			goldenName: "debug_enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(
					errors.New("no such file or directory"),
					"failed to read document",
				),
				"failed to build docs/index.md",
			),
			goldenName: "error_chain_zerr",
		},
		{
			name: "zerr metadata",
			err: zerr.With(
				zerr.With(domain.ErrCircularDependency, "key", "a"),
				"chain", "a -> b -> a",
			),
			goldenName: "error_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Configure(domain.LogConfig{JSON: true, Level: domain.LogLevelInfo})

	lg.Info("built")
	lg.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"msg":"built"`)
	assert.Contains(t, out, `"error":"boom"`)

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("pretty again")
	assert.Equal(t, "pretty again\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	err := zerr.Wrap(zerr.With(errors.New("root cause"), "path", "a.txt"), "outer")
	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 3)
	assert.Equal(t, "outer", entries[0])
	assert.Equal(t, " (path=a.txt)", entries[1])
	assert.Equal(t, "root cause", entries[2])

	assert.Equal(t, "Error: only", logger.FormatErrorEntries([]string{"only"}))
}
