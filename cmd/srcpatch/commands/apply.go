package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/srcpatch/cmd/srcpatch/opts"
	"github.com/walteh/srcpatch/pkg/operation"
	"github.com/walteh/srcpatch/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		planName string
		planFile string
		target   string
		lenient  bool
		dryRun   bool
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a patch plan to its target",
		Long: `Apply loads a plan and applies its edits in order.
It will:
1. Load the target file (or every matching file for tree plans)
2. Apply each edit, failing on a miss unless --lenient is set
3. Write the result atomically, or print a diff with --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			p, err := opts.LoadPlan(ctx, planName, planFile)
			if err != nil {
				return err
			}

			var op operation.Operation
			if p.IsTree() {
				op = operation.NewRewriteOperation(operation.RewriteOptions{
					Plan:   p,
					Root:   target,
					DryRun: dryRun,
					Jobs:   jobs,
					Diff:   cmd.OutOrStdout(),
				})
			} else {
				op = operation.NewPatchOperation(operation.Options{
					Plan:    p,
					Target:  target,
					Lenient: lenient,
					DryRun:  dryRun,
					Diff:    cmd.OutOrStdout(),
				})
			}

			if err := operation.NewRunner(zerolog.Ctx(ctx), false, 0).Run(ctx, op); err != nil {
				return errors.Errorf("applying %s: %w", p.Name, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&planName, "plan", "p", plan.HomePageName, "built-in plan name")
	cmd.Flags().StringVarP(&planFile, "file", "f", "", "plan file (.yaml, .json, .hcl or .srcpatch)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "override the plan target")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "warn instead of failing when an edit finds nothing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a diff instead of writing")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 8, "files processed at once for tree plans")
	cmd.MarkFlagsMutuallyExclusive("plan", "file")

	return cmd
}
