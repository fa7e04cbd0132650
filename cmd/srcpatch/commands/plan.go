package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/srcpatch/cmd/srcpatch/opts"
	"github.com/walteh/srcpatch/pkg/plan"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// maxCell is the number of marker runes shown in the plan table
const maxCell = 48

// NewPlanCmd creates the plan command group
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect patch plans",
	}

	cmd.AddCommand(newPlanListCmd(opts), newPlanShowCmd(opts))
	return cmd
}

func newPlanListCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range plan.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newPlanShowCmd(opts *opts.RootOpts) *cobra.Command {
	var planFile string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the edits of a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := plan.HomePageName
			if len(args) == 1 {
				name = args[0]
			}

			p, err := opts.LoadPlan(cmd.Context(), name, planFile)
			if err != nil {
				return err
			}

			table, err := RenderPlan(p)
			if err != nil {
				return errors.Errorf("rendering plan: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&planFile, "file", "f", "", "plan file to show instead of a built-in plan")
	return cmd
}

// RenderPlan renders a plan header and one table row per edit. Variant
// edits follow, numbered a1, b1, ... and tagged with their globs.
func RenderPlan(p *plan.Plan) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s → %s\n", p.Name, p.Target)
	if p.IsTree() {
		fmt.Fprintf(&b, "include: %s\n", strings.Join(p.Include, ", "))
		if len(p.Exclude) > 0 {
			fmt.Fprintf(&b, "exclude: %s\n", strings.Join(p.Exclude, ", "))
		}
	}

	data := pterm.TableData{{"#", "Edit", "Kind", "Match"}}
	for i, r := range p.Rules {
		kind, match := describe(r)
		data = append(data, []string{strconv.Itoa(i + 1), r.Name(), kind, match})
	}
	for v, variant := range p.Variants {
		for i, r := range variant.Rules {
			kind, match := describe(r)
			id := fmt.Sprintf("%c%d", 'a'+v, i+1)
			data = append(data, []string{id, r.Name() + " [" + strings.Join(variant.Match, ", ") + "]", kind, match})
		}
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	b.WriteString("\n")
	return b.String(), nil
}

func describe(r text.Rule) (kind, match string) {
	switch r := r.(type) {
	case *text.InsertRule:
		return "insert", quote(r.Anchor)
	case *text.BlockRule:
		mode := r.Mode
		if mode == "" {
			mode = text.MatchNearest
		}
		return "block/" + string(mode), quote(r.Open) + " … " + quote(r.Close)
	case *text.MoveRule:
		return "move", quote(r.Start) + " … " + quote(r.End) + " after " + quote(r.After)
	case *text.RewriteRule:
		return "rewrite", r.Pattern
	case *text.ImportRule:
		return "import", quote(r.Import)
	default:
		return fmt.Sprintf("%T", r), ""
	}
}

func quote(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCell {
		return strconv.Quote(s)
	}
	return strconv.Quote(string(runes[:maxCell])) + "…"
}
