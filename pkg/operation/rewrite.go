package operation

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/srcpatch/pkg/log"
	"github.com/walteh/srcpatch/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// skipDirs are never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// 🔧 RewriteOptions configures a RewriteOperation
type RewriteOptions struct {
	Plan   *plan.Plan
	Root   string // overrides Plan.Target
	DryRun bool
	Jobs   int
	Store  Store

	// Diff receives dry run output, defaults to stdout
	Diff io.Writer
}

// 🌲 RewriteOperation applies a tree plan to every selected file under a root
type RewriteOperation struct {
	opts RewriteOptions

	mu      sync.Mutex
	reports []*Report
}

// 🏗️ NewRewriteOperation creates a rewrite operation
func NewRewriteOperation(opts RewriteOptions) *RewriteOperation {
	if opts.Store == nil {
		opts.Store = FileStore{}
	}
	return &RewriteOperation{opts: opts}
}

func (op *RewriteOperation) root() string {
	if op.opts.Root != "" {
		return op.opts.Root
	}
	return op.opts.Plan.Target
}

func (op *RewriteOperation) Name() string {
	return "rewrite " + op.root()
}

// Reports returns one report per visited file, sorted by path
func (op *RewriteOperation) Reports() []*Report {
	op.mu.Lock()
	defer op.mu.Unlock()

	out := append([]*Report(nil), op.reports...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Execute walks the root and patches every selected file concurrently
func (op *RewriteOperation) Execute(ctx context.Context) error {
	if op.opts.Plan == nil {
		return errors.New("plan is required")
	}
	if err := op.opts.Plan.Validate(); err != nil {
		return errors.Errorf("validating plan: %w", err)
	}

	files, err := op.Select(ctx)
	if err != nil {
		return err
	}

	out := log.FromContext(ctx)
	out.Header(fmt.Sprintf("%s on %s", op.opts.Plan.Name, op.root()))
	zerolog.Ctx(ctx).Debug().Str("root", op.root()).Int("files", len(files)).Msg("selected files")

	ops := make([]Operation, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(op.root(), f)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", f, err)
		}
		filePlan, err := op.opts.Plan.ForFile(f, filepath.ToSlash(rel))
		if err != nil {
			return errors.Errorf("rules for %s: %w", f, err)
		}
		ops = append(ops, &trackedPatch{
			parent: op,
			PatchOperation: NewPatchOperation(Options{
				Plan:    filePlan,
				Target:  f,
				Lenient: true,
				DryRun:  op.opts.DryRun,
				Compact: true,
				Store:   op.opts.Store,
				Diff:    op.opts.Diff,
			}),
		})
	}

	if err := NewRunner(zerolog.Ctx(ctx), true, op.opts.Jobs).Run(ctx, ops...); err != nil {
		return err
	}

	changed := 0
	for _, r := range op.Reports() {
		if r.Changed {
			changed++
		}
	}

	if op.opts.DryRun {
		out.Infof("%d of %d files would change", changed, len(files))
		return nil
	}
	out.Infof("%d of %d files updated", changed, len(files))
	out.Success(op.opts.Plan.ConfirmationMessage())
	return nil
}

// Select returns the files under the root matched by the plan's globs
func (op *RewriteOperation) Select(ctx context.Context) ([]string, error) {
	root := op.root()
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := matchAny(op.opts.Plan.Include, rel)
		if err != nil || !ok {
			return err
		}
		excluded, err := matchAny(op.opts.Plan.Exclude, rel)
		if err != nil || excluded {
			return err
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func matchAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Errorf("matching %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// trackedPatch records its report on the parent once it has run
type trackedPatch struct {
	*PatchOperation
	parent *RewriteOperation
}

func (t *trackedPatch) Execute(ctx context.Context) error {
	err := t.PatchOperation.Execute(ctx)
	if r := t.Report(); r != nil {
		t.parent.mu.Lock()
		t.parent.reports = append(t.parent.reports, r)
		t.parent.mu.Unlock()
	}
	return err
}
