package opts

import (
	"context"
	"io"

	"github.com/walteh/srcpatch/pkg/config"
	"github.com/walteh/srcpatch/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Console receives human readable output
	Console io.Writer
	Debug   bool
}

// LoadPlan returns the plan stored in file, or the built-in plan called name
// when file is empty
func (o *RootOpts) LoadPlan(ctx context.Context, name, file string) (*plan.Plan, error) {
	if file != "" {
		p, err := config.Load(ctx, file)
		if err != nil {
			return nil, errors.Errorf("loading plan file: %w", err)
		}
		return p, nil
	}

	p, err := plan.Builtin(name)
	if err != nil {
		return nil, errors.Errorf("loading built-in plan: %w", err)
	}
	return p, nil
}
