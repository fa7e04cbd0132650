package operation

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/srcpatch/pkg/log"
	"github.com/walteh/srcpatch/pkg/plan"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a PatchOperation
type Options struct {
	// Plan holds the rules to apply
	Plan *plan.Plan

	// Target overrides Plan.Target when set
	Target string

	// Lenient overrides Plan.Lenient when true
	Lenient bool

	// DryRun prints a diff instead of writing
	DryRun bool

	// Compact logs one line per changed file instead of one per rule
	Compact bool

	// Store defaults to FileStore
	Store Store

	// Diff receives dry run output, defaults to stdout
	Diff io.Writer
}

// 🩹 PatchOperation applies a plan to a single file
type PatchOperation struct {
	opts   Options
	report *Report
}

// 🏗️ NewPatchOperation creates a patch operation
func NewPatchOperation(opts Options) *PatchOperation {
	if opts.Store == nil {
		opts.Store = FileStore{}
	}
	if opts.Diff == nil {
		opts.Diff = os.Stdout
	}
	return &PatchOperation{opts: opts}
}

func (op *PatchOperation) target() string {
	if op.opts.Target != "" {
		return op.opts.Target
	}
	return op.opts.Plan.Target
}

func (op *PatchOperation) Name() string {
	return "patch " + op.target()
}

// Report returns the result of the last Execute, or nil
func (op *PatchOperation) Report() *Report {
	return op.report
}

// 🏃 Execute loads the file, applies every rule and stores the result.
// Nothing is written when a rule misses in strict mode or when no rule changed the text.
func (op *PatchOperation) Execute(ctx context.Context) error {
	if op.opts.Plan == nil {
		return errors.New("plan is required")
	}

	path := op.target()
	lenient := op.opts.Lenient || op.opts.Plan.Lenient
	zlog := zerolog.Ctx(ctx).With().Str("file", path).Str("plan", op.opts.Plan.Name).Logger()
	out := log.FromContext(ctx)

	doc, err := op.opts.Store.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading document: %w", err)
	}

	if !op.opts.Compact {
		out.StartFile(ctx, log.FileOperation{Path: path, Plan: op.opts.Plan.Name, DryRun: op.opts.DryRun})
	}

	res, err := text.NewReplacer(!lenient).ReplaceText(ctx, strings.NewReader(doc.Text), op.opts.Plan.Rules)

	op.report = &Report{Path: path}
	if res != nil {
		op.report.Steps = res.Steps
		op.report.Count = res.ReplacementCount
	}

	if !op.opts.Compact {
		for _, step := range op.report.Steps {
			out.LogEdit(ctx, log.EditOperation{File: path, Rule: step.Rule, Outcome: step.Outcome, Count: step.Count})
		}
		out.EndFile(ctx)
	}

	if err != nil {
		return errors.Errorf("patching %s: %w", path, err)
	}

	if missed := op.report.Missed(); len(missed) > 0 && !op.opts.Compact {
		out.Warningf("%s: no match for %s", doc.Base(), strings.Join(missed, ", "))
	}

	doc.Text = string(res.ModifiedContent)
	op.report.Changed = doc.Changed()

	if !doc.Changed() {
		zlog.Debug().Msg("no changes")
		if !op.opts.Compact {
			out.Infof("%s is already up to date", doc.Base())
		}
		return nil
	}

	if op.opts.DryRun {
		out.Diff(op.opts.Diff, UnifiedDiff(path, doc.Original(), doc.Text))
		return nil
	}

	if err := op.opts.Store.Store(ctx, doc); err != nil {
		return errors.Errorf("storing document: %w", err)
	}
	op.report.Written = true

	zlog.Debug().Int("replacements", op.report.Count).Msg("document written")
	if op.opts.Compact {
		out.Print("Updated: " + path)
	} else {
		msg := op.opts.Plan.Message
		if msg == "" {
			msg = doc.Base() + " updated successfully"
		}
		out.Success(msg)
	}
	return nil
}
