package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDefectsCommand creates the defects command group.
func NewDefectsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defects",
		Short: "List and resolve open defects",
	}
	cmd.AddCommand(newDefectsListCommand(rootOpts))
	cmd.AddCommand(newDefectsResolveCommand(rootOpts))
	return cmd
}

func newDefectsListCommand(rootOpts *RootOptions) *cobra.Command {
	var area string

	cmd := &cobra.Command{
		Use:           "list <session-id>",
		Short:         "List open defects of a session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				defects, err := a.engine.ListPendingDefects(ctx, args[0], area)
				if err != nil {
					return f.Fail("list defects failed", err)
				}
				if f.Format == "json" {
					return f.Success(defects)
				}
				renderDefects(f.Writer, defects)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "only defects of this area")
	return cmd
}

func newDefectsResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		key        keyFlags
		afterPhoto string
		remark     string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an open defect with an after photo",
		Long: `Resolve an open defect. An after photo is mandatory; the remark is
optional. Resolving twice, or resolving an answer that is not a deficiency,
fails with INVALID_STATE.

Example:
  coachinspect defects resolve --session $S --question Q2 --compartment L1 \
      --after-photo photos/q2-after.jpg --remark "basin replaced"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				answer, err := a.engine.ResolveDefect(ctx, key.key(), afterPhoto, remark)
				if err != nil {
					return f.Fail("resolve defect failed", err)
				}
				if f.Format == "json" {
					return f.Success(answer)
				}
				fmt.Fprintf(f.Writer, "✓ Defect %s resolved\n", answer.Key)
				return nil
			})
		},
	}

	key.register(cmd)
	cmd.Flags().StringVar(&afterPhoto, "after-photo", "", "photo reference of the repaired state (required)")
	cmd.Flags().StringVar(&remark, "remark", "", "resolution remark")

	return cmd
}
