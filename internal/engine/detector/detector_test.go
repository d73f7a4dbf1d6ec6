package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports/mocks"
	"go.trai.ch/recache/internal/engine/detector"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*detector.Detector, *mocks.MockChangeOracle) {
	t.Helper()
	ctrl := gomock.NewController(t)
	oracle := mocks.NewMockChangeOracle(ctrl)
	return detector.New(oracle), oracle
}

func TestDetector_UnknownKeyIsChanged(t *testing.T) {
	d, _ := setup(t)
	key := domain.NewKey("a.txt")

	assert.True(t, d.IsChanged(key, domain.BlankStamp))
	assert.True(t, d.IsChanged(key, "m:1"))

	_, ok := d.Baseline(key)
	assert.False(t, ok)
}

func TestDetector_RecordAndCompare(t *testing.T) {
	d, oracle := setup(t)
	key := domain.NewKey("a.txt")

	oracle.EXPECT().Observe(key).Return(domain.Stamp("m:1"))
	stamp := d.Observe(key)
	d.Record(key, stamp)

	assert.False(t, d.IsChanged(key, "m:1"))
	assert.True(t, d.IsChanged(key, "m:2"))

	oracle.EXPECT().Observe(key).Return(domain.Stamp("m:2"))
	assert.True(t, d.Changed(key))

	baseline, ok := d.Baseline(key)
	require.True(t, ok)
	assert.Equal(t, domain.Stamp("m:1"), baseline)
}

func TestDetector_BlankStampBaseline(t *testing.T) {
	d, _ := setup(t)
	key := domain.NewKey("missing.txt")

	d.Record(key, domain.BlankStamp)
	assert.False(t, d.IsChanged(key, domain.BlankStamp))
	assert.True(t, d.IsChanged(key, "m:1"))
}

func TestDetector_Forget(t *testing.T) {
	d, _ := setup(t)
	key := domain.NewKey("a.txt")

	d.Record(key, "m:1")
	d.Forget(key)
	assert.True(t, d.IsChanged(key, "m:1"))
}

func TestDetector_InhibitNeverProbes(t *testing.T) {
	d, oracle := setup(t)
	known := domain.NewKey("known.txt")
	unknown := domain.NewKey("unknown.txt")
	oracle.EXPECT().Observe(gomock.Any()).Times(0)

	d.Record(known, "m:7")

	restore := d.Inhibit()
	assert.True(t, d.Inhibited())
	assert.Equal(t, domain.Stamp("m:7"), d.Observe(known))
	assert.Equal(t, domain.BlankStamp, d.Observe(unknown))
	assert.False(t, d.Changed(known))
	assert.True(t, d.Changed(unknown))

	restore()
	assert.False(t, d.Inhibited())
}

func TestDetector_InhibitNests(t *testing.T) {
	d, oracle := setup(t)
	key := domain.NewKey("a.txt")

	outer := d.Inhibit()
	inner := d.Inhibit()
	inner()
	inner()
	assert.True(t, d.Inhibited(), "restore must be idempotent")

	outer()
	assert.False(t, d.Inhibited())

	oracle.EXPECT().Observe(key).Return(domain.Stamp("m:3"))
	assert.Equal(t, domain.Stamp("m:3"), d.Observe(key))
}
