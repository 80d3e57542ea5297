package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewProgressCommand creates the progress command.
func NewProgressCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <session-id> <area-id>",
		Short: "Show the completion snapshot of one area",
		Long: `Show how many required items of an area are fully answered, the
number of open defects and the derived status (PENDING, IN_PROGRESS or
COMPLETED).

Example:
  coachinspect progress 0193e1f4-... lavatory --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				progress, err := a.engine.ComputeAreaProgress(ctx, args[1], args[0])
				if err != nil {
					return f.Fail("compute progress failed", err)
				}
				if f.Format == "json" {
					return f.Success(progress)
				}
				renderAreaProgress(f.Writer, progress)
				return nil
			})
		},
	}
}
