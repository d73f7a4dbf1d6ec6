package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports/mocks"
	"go.trai.ch/recache/internal/engine/cache"
	"go.uber.org/mock/gomock"
)

// artifact is what the test build function produces. gen counts the builds of key so far.
type artifact struct {
	key domain.Key
	gen int
}

// world is a scripted build environment: which keys each key consumes, which builds fail
// and what the oracle currently reads for each key.
type world struct {
	deps   map[domain.Key][]domain.Key
	fail   map[domain.Key]error
	stamps map[domain.Key]domain.Stamp
	builds map[domain.Key]int
}

func newWorld() *world {
	return &world{
		deps:   make(map[domain.Key][]domain.Key),
		fail:   make(map[domain.Key]error),
		stamps: make(map[domain.Key]domain.Stamp),
		builds: make(map[domain.Key]int),
	}
}

func (w *world) workspace(t *testing.T, policy domain.Policy, opts ...cache.Option) *cache.Workspace[*artifact] {
	t.Helper()
	ctrl := gomock.NewController(t)
	oracle := mocks.NewMockChangeOracle(ctrl)
	oracle.EXPECT().Observe(gomock.Any()).DoAndReturn(func(k domain.Key) domain.Stamp {
		return w.stamps[k]
	}).AnyTimes()

	ws, err := cache.NewWorkspace[*artifact](policy, oracle, opts...)
	require.NoError(t, err)
	return ws
}

// builder returns a build function that loads and links every scripted dependency
// through engine before producing its artifact.
func (w *world) builder(engine cache.Engine[*artifact]) cache.BuildFunc[*artifact] {
	var build cache.BuildFunc[*artifact]
	build = func(ctx context.Context, key domain.Key) (*artifact, error) {
		w.builds[key]++
		for _, dep := range w.deps[key] {
			if _, _, err := engine.Load(ctx, build, dep); err != nil {
				return nil, err
			}
			if err := engine.AddEdge(key, dep); err != nil {
				return nil, err
			}
		}
		if err := w.fail[key]; err != nil {
			return nil, err
		}
		return &artifact{key: key, gen: w.builds[key]}, nil
	}
	return build
}

func load(t *testing.T, ws *cache.Workspace[*artifact], build cache.BuildFunc[*artifact], key domain.Key) (*artifact, bool) {
	t.Helper()
	a, fromCache, err := ws.Load(context.Background(), build, key)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a, fromCache
}
