package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/recache/internal/adapters/fs"
	"go.trai.ch/recache/internal/adapters/includes"
	"go.trai.ch/recache/internal/app"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"recache": func() int {
			return run(context.Background(), os.Args[1:], os.Stderr, graftProvider)
		},
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

func newComponents(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, log *mocks.MockLogger) ComponentProvider {
	application := app.New(
		loader,
		log,
		includes.NewFactory(fs.NewOracleFactory(fs.NewWalker()), nil, nil),
		mocks.NewMockWatcher(ctrl),
		nil,
	)
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}
}

func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := newComponents(ctrl, mocks.NewMockConfigLoader(ctrl), mocks.NewMockLogger(ctrl))

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ExecutionErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)

	loader.EXPECT().Load(".").Return(nil, domain.ErrConfigReadFailed)
	log.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), newComponents(ctrl, loader, log))
	assert.Equal(t, 1, exitCode)
}

func TestRun_BuildFailureIsNotLoggedTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)

	root := t.TempDir()
	cfg := domain.DefaultConfig(root)
	cfg.Entries = []string{root + "/missing.md"}
	loader.EXPECT().Load(".").Return(cfg, nil)

	// One error for the entry itself, none for the aggregate.
	log.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), newComponents(ctrl, loader, log))
	assert.Equal(t, 1, exitCode)
}
