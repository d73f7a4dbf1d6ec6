package fs

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ChangeOracle  = (*StatOracle)(nil)
	_ ports.ChangeOracle  = (*ContentOracle)(nil)
	_ ports.OracleFactory = (*OracleFactory)(nil)
)

// StatOracle stamps a key with the modification time of the path it names.
type StatOracle struct{}

// NewStatOracle creates a new StatOracle.
func NewStatOracle() *StatOracle {
	return &StatOracle{}
}

// Observe returns the modification time of key, or domain.BlankStamp if it cannot be stat'ed.
func (o *StatOracle) Observe(key domain.Key) domain.Stamp {
	info, err := os.Stat(key.String())
	if err != nil {
		return domain.BlankStamp
	}
	return domain.Stamp("m:" + strconv.FormatInt(info.ModTime().UnixNano(), 10))
}

// ContentOracle stamps a key with an xxhash digest of its contents.
// A directory key is stamped with the digest of every file under it, paths included.
type ContentOracle struct {
	walker  *Walker
	ignores []string
}

// NewContentOracle creates a new ContentOracle. ignores apply when a key names a directory.
func NewContentOracle(walker *Walker, ignores []string) *ContentOracle {
	return &ContentOracle{walker: walker, ignores: ignores}
}

// Observe returns the content digest of key, or domain.BlankStamp if it cannot be read.
func (o *ContentOracle) Observe(key domain.Key) domain.Stamp {
	path := key.String()
	info, err := os.Stat(path)
	if err != nil {
		return domain.BlankStamp
	}

	if !info.IsDir() {
		sum, err := ComputeFileHash(path)
		if err != nil {
			return domain.BlankStamp
		}
		return contentStamp(sum)
	}

	digest := xxhash.New()
	for file := range o.walker.WalkFiles(path, o.ignores) {
		sum, err := ComputeFileHash(file)
		if err != nil {
			return domain.BlankStamp
		}
		_, _ = digest.WriteString(file)
		_, _ = digest.Write([]byte{0})
		_, _ = fmt.Fprintf(digest, "%016x", sum)
	}
	return contentStamp(digest.Sum64())
}

func contentStamp(sum uint64) domain.Stamp {
	return domain.Stamp(fmt.Sprintf("x:%016x", sum))
}

// ComputeFileHash computes the xxhash of a file's content.
func ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// OracleFactory builds the oracle named by configuration.
type OracleFactory struct {
	walker  *Walker
	ignores []string
}

// NewOracleFactory creates a new OracleFactory.
func NewOracleFactory(walker *Walker) *OracleFactory {
	return &OracleFactory{walker: walker, ignores: domain.DefaultIgnore()}
}

// New returns the oracle for kind.
func (f *OracleFactory) New(kind domain.OracleKind) (ports.ChangeOracle, error) {
	switch kind {
	case domain.OracleMtime, "":
		return NewStatOracle(), nil
	case domain.OracleContent:
		return NewContentOracle(f.walker, f.ignores), nil
	default:
		return nil, zerr.With(domain.ErrInvalidOracle, "oracle", string(kind))
	}
}
