package operation

import (
	"context"

	"github.com/walteh/srcpatch/pkg/document"
	"github.com/walteh/srcpatch/pkg/text"
)

// 🎯 Operation is a unit of work the runner executes
type Operation interface {
	// Name identifies the operation in errors
	Name() string

	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 💾 Store loads and stores documents
type Store interface {
	Load(ctx context.Context, path string) (*document.Document, error)
	Store(ctx context.Context, doc *document.Document) error
}

// FileStore is the Store backed by the local filesystem
type FileStore struct{}

func (FileStore) Load(ctx context.Context, path string) (*document.Document, error) {
	return document.Load(ctx, path)
}

func (FileStore) Store(ctx context.Context, doc *document.Document) error {
	return document.Store(ctx, doc)
}

// 📋 Report summarizes what a patch did to one file
type Report struct {
	Path    string
	Steps   []text.Result
	Count   int
	Changed bool
	Written bool
}

// Missed returns the rules that did not match
func (r *Report) Missed() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Outcome == text.NotFound {
			out = append(out, s.Rule)
		}
	}
	return out
}
