package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/adapters/fs"
	"go.trai.ch/recache/internal/core/domain"
)

func TestStatOracle(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.txt")
	writeFile(t, path, "one")
	key := domain.NewKey(path)
	oracle := fs.NewStatOracle()

	first := oracle.Observe(key)
	assert.False(t, first.IsBlank())
	assert.Equal(t, first, oracle.Observe(key))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.NotEqual(t, first, oracle.Observe(key))

	require.NoError(t, os.Remove(path))
	assert.Equal(t, domain.BlankStamp, oracle.Observe(key))
}

func TestContentOracle_File(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.txt")
	writeFile(t, path, "one")
	key := domain.NewKey(path)
	oracle := fs.NewContentOracle(fs.NewWalker(), nil)

	first := oracle.Observe(key)
	assert.Regexp(t, `^x:[0-9a-f]{16}$`, string(first))

	// Touching without changing content keeps the stamp.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.Equal(t, first, oracle.Observe(key))

	writeFile(t, path, "two")
	assert.NotEqual(t, first, oracle.Observe(key))

	assert.Equal(t, domain.BlankStamp, oracle.Observe(domain.NewKey(filepath.Join(tmpDir, "missing"))))
}

func TestContentOracle_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "pkg", "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "pkg", "b.txt"), "b")
	key := domain.NewKey(filepath.Join(tmpDir, "pkg"))
	oracle := fs.NewContentOracle(fs.NewWalker(), nil)

	first := oracle.Observe(key)
	assert.False(t, first.IsBlank())

	writeFile(t, filepath.Join(tmpDir, "pkg", "c.txt"), "c")
	second := oracle.Observe(key)
	assert.NotEqual(t, first, second)

	writeFile(t, filepath.Join(tmpDir, "pkg", "a.txt"), "changed")
	assert.NotEqual(t, second, oracle.Observe(key))
}

func TestComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.txt")
	b := filepath.Join(tmpDir, "b.txt")
	writeFile(t, a, "same")
	writeFile(t, b, "same")

	ha, err := fs.ComputeFileHash(a)
	require.NoError(t, err)
	hb, err := fs.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	_, err = fs.ComputeFileHash(filepath.Join(tmpDir, "missing"))
	assert.ErrorContains(t, err, "failed to open file")
}

func TestOracleFactory(t *testing.T) {
	factory := fs.NewOracleFactory(fs.NewWalker())

	o, err := factory.New(domain.OracleMtime)
	require.NoError(t, err)
	assert.IsType(t, &fs.StatOracle{}, o)

	o, err = factory.New(domain.OracleContent)
	require.NoError(t, err)
	assert.IsType(t, &fs.ContentOracle{}, o)

	_, err = factory.New("inode")
	assert.ErrorContains(t, err, domain.ErrInvalidOracle.Error())
}
