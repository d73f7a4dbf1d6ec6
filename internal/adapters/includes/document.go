// Package includes builds text documents whose "@include" lines splice in other documents.
// Every included document is loaded through the cache, so editing a partial rebuilds exactly
// the documents that use it.
package includes

import (
	"go.trai.ch/recache/internal/core/domain"
)

var _ domain.Members = (*Document)(nil)

// Document is the artifact produced for one file key.
type Document struct {
	// Path is the absolute path of the source file.
	Path string
	// Text is the source with every include directive replaced by the included text.
	Text string
	// Digest is the xxhash of Text.
	Digest uint64
	// Includes holds the directly included documents in source order.
	Includes []Include
}

// Include is one resolved include directive.
type Include struct {
	// Target is the path as written after the directive.
	Target string
	// Document is the artifact the directive resolved to.
	Document *Document
}

// Members exposes each directly included document by its written target.
func (d *Document) Members() map[string]any {
	members := make(map[string]any, len(d.Includes))
	for _, inc := range d.Includes {
		members[inc.Target] = inc.Document
	}
	return members
}
