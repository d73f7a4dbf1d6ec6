package includes

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/engine/cache"
	"go.trai.ch/zerr"
)

// Builder produces Documents, resolving includes through engine.
type Builder struct {
	engine cache.Engine[*Document]
}

// NewBuilder creates a Builder backed by engine.
func NewBuilder(engine cache.Engine[*Document]) *Builder {
	return &Builder{engine: engine}
}

// Load returns the document for key, building it when the engine says so.
func (b *Builder) Load(ctx context.Context, key domain.Key) (*Document, bool, error) {
	return b.engine.Load(ctx, b.Build, key)
}

// Build reads the file named by key and expands its includes.
// It is the cache.BuildFunc for documents and should only be called through the engine.
func (b *Builder) Build(ctx context.Context, key domain.Key) (*Document, error) {
	path := key.String()

	// #nosec G304 -- keys name documents inside the workspace
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", path)
	}

	doc := &Document{Path: path}
	var out strings.Builder

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	for scanner.Scan() {
		line := scanner.Text()

		target, ok := parseDirective(line)
		if !ok {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		depKey := domain.NewKey(resolve(path, target))
		child, _, err := b.engine.Load(ctx, b.Build, depKey)
		if err != nil {
			return nil, err
		}
		if err := b.engine.AddEdge(key, depKey); err != nil {
			return nil, err
		}

		doc.Includes = append(doc.Includes, Include{Target: target, Document: child})
		out.WriteString(child.Text)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", path)
	}

	doc.Text = out.String()
	doc.Digest = xxhash.Sum64String(doc.Text)
	return doc, nil
}

// parseDirective returns the target of an include line.
func parseDirective(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), domain.IncludeDirective)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	target := strings.TrimSpace(rest)
	return target, target != ""
}

// resolve interprets target relative to the directory of the including file.
func resolve(from, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(from), target)
}
