package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/srcpatch/cmd/srcpatch/opts"
	"github.com/walteh/srcpatch/pkg/operation"
	"github.com/walteh/srcpatch/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// NewRewriteImportsCmd creates the rewrite-imports command
func NewRewriteImportsCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		root     string
		planFile string
		dryRun   bool
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "rewrite-imports",
		Short: "Rewrite relative imports after the features layout move",
		Long: `Rewrite-imports walks a source tree and remaps relative imports.
Shared directories move under shared/, pages and auth move under features/.
Only files whose content changes are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "rewrite-imports").Logger().WithContext(cmd.Context())

			p, err := opts.LoadPlan(ctx, plan.FeaturesLayoutName, planFile)
			if err != nil {
				return err
			}
			if !p.IsTree() {
				return errors.Errorf("plan %s has no include globs", p.Name)
			}

			op := operation.NewRewriteOperation(operation.RewriteOptions{
				Plan:   p,
				Root:   root,
				DryRun: dryRun,
				Jobs:   jobs,
				Diff:   cmd.OutOrStdout(),
			})
			if err := op.Execute(ctx); err != nil {
				return errors.Errorf("rewriting imports: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "source root (defaults to the plan target)")
	cmd.Flags().StringVarP(&planFile, "file", "f", "", "plan file with rewrite rules")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 8, "files processed at once")

	return cmd
}
